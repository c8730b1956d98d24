package admin

import (
	"fmt"
	"strings"
)

// UserModuleAccess lists the modules a user may use. It is always sent whole,
// so the flags are plain booleans.
type UserModuleAccess struct {
	Calendar                  bool `json:"calendar"`
	Contacts                  bool `json:"contacts"`
	DelegateTask              bool `json:"delegateTask"`
	EditPublicFolders         bool `json:"editPublicFolders"`
	ICal                      bool `json:"ical"`
	Infostore                 bool `json:"infostore"`
	ReadCreateSharedFolders   bool `json:"readCreateSharedFolders"`
	Syncml                    bool `json:"syncml"`
	Tasks                     bool `json:"tasks"`
	Vcard                     bool `json:"vcard"`
	Webdav                    bool `json:"webdav"`
	WebdavXML                 bool `json:"webdavXml"`
	Webmail                   bool `json:"webmail"`
	EditGroup                 bool `json:"editGroup"`
	EditResource              bool `json:"editResource"`
	EditPassword              bool `json:"editPassword"`
	CollectEmailAddresses     bool `json:"collectEmailAddresses"`
	MultipleMailAccounts      bool `json:"multipleMailAccounts"`
	Subscription              bool `json:"subscription"`
	Publication               bool `json:"publication"`
	ActiveSync                bool `json:"activeSync"`
	USM                       bool `json:"usm"`
	OLOX20                    bool `json:"olox20"`
	DeniedPortal              bool `json:"deniedPortal"`
	GlobalAddressBookDisabled bool `json:"globalAddressBookDisabled"`
	PublicFolderEditable      bool `json:"publicFolderEditable"`
}

// NewUserModuleAccess returns the default access set: the groupware modules
// on, administration-style rights off.
func NewUserModuleAccess() *UserModuleAccess {
	return &UserModuleAccess{
		Calendar:                true,
		Contacts:                true,
		DelegateTask:            true,
		ICal:                    true,
		Infostore:               true,
		ReadCreateSharedFolders: true,
		Tasks:                   true,
		Vcard:                   true,
		Webdav:                  true,
		Webmail:                 true,
		EditPassword:            true,
		CollectEmailAddresses:   true,
		MultipleMailAccounts:    true,
		Subscription:            true,
		Publication:             true,
	}
}

func (a *UserModuleAccess) flags() []struct {
	name string
	v    *bool
} {
	return []struct {
		name string
		v    *bool
	}{
		{"calendar", &a.Calendar},
		{"contacts", &a.Contacts},
		{"delegateTask", &a.DelegateTask},
		{"editPublicFolders", &a.EditPublicFolders},
		{"ical", &a.ICal},
		{"infostore", &a.Infostore},
		{"readCreateSharedFolders", &a.ReadCreateSharedFolders},
		{"syncml", &a.Syncml},
		{"tasks", &a.Tasks},
		{"vcard", &a.Vcard},
		{"webdav", &a.Webdav},
		{"webdavXml", &a.WebdavXML},
		{"webmail", &a.Webmail},
		{"editGroup", &a.EditGroup},
		{"editResource", &a.EditResource},
		{"editPassword", &a.EditPassword},
		{"collectEmailAddresses", &a.CollectEmailAddresses},
		{"multipleMailAccounts", &a.MultipleMailAccounts},
		{"subscription", &a.Subscription},
		{"publication", &a.Publication},
		{"activeSync", &a.ActiveSync},
		{"usm", &a.USM},
		{"olox20", &a.OLOX20},
		{"deniedPortal", &a.DeniedPortal},
		{"globalAddressBookDisabled", &a.GlobalAddressBookDisabled},
		{"publicFolderEditable", &a.PublicFolderEditable},
	}
}

// EnableAll grants every module. The negative flags DeniedPortal and
// GlobalAddressBookDisabled are cleared.
func (a *UserModuleAccess) EnableAll() {
	for _, f := range a.flags() {
		*f.v = true
	}
	a.DeniedPortal = false
	a.GlobalAddressBookDisabled = false
}

func (a *UserModuleAccess) DisableAll() {
	for _, f := range a.flags() {
		*f.v = false
	}
	a.DeniedPortal = true
	a.GlobalAddressBookDisabled = true
}

func (a *UserModuleAccess) String() string {
	var on []string
	for _, f := range a.flags() {
		if *f.v {
			on = append(on, f.name)
		}
	}
	return fmt.Sprintf("UserModuleAccess{%s}", strings.Join(on, " "))
}
