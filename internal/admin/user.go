package admin

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// User is a context member with a mailbox and a contact entry.
//
// Language holds a locale such as "de_DE"; Timezone an IANA zone name.
type User struct {
	ID                   optional.Field[int]                          `json:"id,omitzero"`
	Name                 optional.Field[string]                       `json:"name,omitzero"`
	Password             optional.Field[string]                       `json:"password,omitzero"`
	PasswordMech         optional.Field[string]                       `json:"passwordMech,omitzero"`
	PrimaryEmail         optional.Field[string]                       `json:"primaryEmail,omitzero"`
	Email1               optional.Field[string]                       `json:"email1,omitzero"`
	Email2               optional.Field[string]                       `json:"email2,omitzero"`
	Email3               optional.Field[string]                       `json:"email3,omitzero"`
	Aliases              optional.Field[[]string]                     `json:"aliases,omitzero"`
	DisplayName          optional.Field[string]                       `json:"display_name,omitzero"`
	GivenName            optional.Field[string]                       `json:"given_name,omitzero"`
	SurName              optional.Field[string]                       `json:"sur_name,omitzero"`
	Language             optional.Field[string]                       `json:"language,omitzero"`
	Timezone             optional.Field[string]                       `json:"timezone,omitzero"`
	MailEnabled          optional.Field[bool]                         `json:"mailenabled,omitzero"`
	DefaultGroup         optional.Field[*Group]                       `json:"default_group,omitzero"`
	ImapServer           optional.Field[string]                       `json:"imapServer,omitzero"`
	ImapLogin            optional.Field[string]                       `json:"imapLogin,omitzero"`
	SmtpServer           optional.Field[string]                       `json:"smtpServer,omitzero"`
	Company              optional.Field[string]                       `json:"company,omitzero"`
	Department           optional.Field[string]                       `json:"department,omitzero"`
	Position             optional.Field[string]                       `json:"position,omitzero"`
	Birthday             optional.Field[time.Time]                    `json:"birthday,omitzero"`
	Anniversary          optional.Field[time.Time]                    `json:"anniversary,omitzero"`
	TelephoneBusiness1   optional.Field[string]                       `json:"telephone_business1,omitzero"`
	CellularTelephone1   optional.Field[string]                       `json:"cellular_telephone1,omitzero"`
	Note                 optional.Field[string]                       `json:"note,omitzero"`
	GUISpamFilterEnabled optional.Field[bool]                         `json:"gui_spam_filter_enabled,omitzero"`
	UserAttributes       optional.Field[map[string]map[string]string] `json:"userAttributes,omitzero"`

	Extensions Extensions `json:"-"`
}

func NewUser(id int) *User {
	u := &User{}
	u.ID.Set(id)
	return u
}

func (u *User) MandatoryMembers(op Operation) []string {
	switch op {
	case OpCreate:
		return []string{"name", "display_name", "password", "given_name", "sur_name", "primaryEmail", "email1"}
	case OpChange, OpDelete:
		return []string{"id"}
	}
	return nil
}

func (u *User) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(u.ID), true
	case "name":
		return filled(u.Name), true
	case "password":
		return filled(u.Password), true
	case "primaryEmail":
		return filled(u.PrimaryEmail), true
	case "email1":
		return filled(u.Email1), true
	case "display_name":
		return filled(u.DisplayName), true
	case "given_name":
		return filled(u.GivenName), true
	case "sur_name":
		return filled(u.SurName), true
	case "language":
		return filled(u.Language), true
	case "timezone":
		return filled(u.Timezone), true
	}
	return false, false
}

// Locale parses Language, accepting both "de_DE" and "de-DE".
func (u *User) Locale() (language.Tag, error) {
	lang, ok := u.Language.Get()
	if !ok || lang == "" {
		return language.Und, fmt.Errorf("language not set")
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("parse language %q: %w", lang, err)
	}
	return tag, nil
}

// Location loads Timezone.
func (u *User) Location() (*time.Location, error) {
	tz, ok := u.Timezone.Get()
	if !ok || tz == "" {
		return nil, fmt.Errorf("timezone not set")
	}
	return time.LoadLocation(tz)
}

func (u *User) SetUserAttribute(ns, key, value string) {
	setAttribute(&u.UserAttributes, ns, key, value)
}

func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	equalTime := func(a, b time.Time) bool { return a.Equal(b) }
	return optional.Equal(u.ID, o.ID) &&
		optional.Equal(u.Name, o.Name) &&
		optional.Equal(u.Password, o.Password) &&
		optional.Equal(u.PasswordMech, o.PasswordMech) &&
		optional.Equal(u.PrimaryEmail, o.PrimaryEmail) &&
		optional.Equal(u.Email1, o.Email1) &&
		optional.Equal(u.Email2, o.Email2) &&
		optional.Equal(u.Email3, o.Email3) &&
		equalSlices(u.Aliases, o.Aliases) &&
		optional.Equal(u.DisplayName, o.DisplayName) &&
		optional.Equal(u.GivenName, o.GivenName) &&
		optional.Equal(u.SurName, o.SurName) &&
		optional.Equal(u.Language, o.Language) &&
		optional.Equal(u.Timezone, o.Timezone) &&
		optional.Equal(u.MailEnabled, o.MailEnabled) &&
		optional.EqualFunc(u.DefaultGroup, o.DefaultGroup, (*Group).Equal) &&
		optional.Equal(u.ImapServer, o.ImapServer) &&
		optional.Equal(u.ImapLogin, o.ImapLogin) &&
		optional.Equal(u.SmtpServer, o.SmtpServer) &&
		optional.Equal(u.Company, o.Company) &&
		optional.Equal(u.Department, o.Department) &&
		optional.Equal(u.Position, o.Position) &&
		optional.EqualFunc(u.Birthday, o.Birthday, equalTime) &&
		optional.EqualFunc(u.Anniversary, o.Anniversary, equalTime) &&
		optional.Equal(u.TelephoneBusiness1, o.TelephoneBusiness1) &&
		optional.Equal(u.CellularTelephone1, o.CellularTelephone1) &&
		optional.Equal(u.Note, o.Note) &&
		optional.Equal(u.GUISpamFilterEnabled, o.GUISpamFilterEnabled) &&
		equalNested(u.UserAttributes, o.UserAttributes)
}

func (u *User) String() string {
	if u == nil {
		return "<nil>"
	}
	w := newDumper("User")
	dump(w, "id", u.ID)
	dump(w, "name", u.Name)
	w.secret("password", u.Password)
	dump(w, "passwordMech", u.PasswordMech)
	dump(w, "primaryEmail", u.PrimaryEmail)
	dump(w, "email1", u.Email1)
	dump(w, "email2", u.Email2)
	dump(w, "email3", u.Email3)
	dump(w, "aliases", u.Aliases)
	dump(w, "display_name", u.DisplayName)
	dump(w, "given_name", u.GivenName)
	dump(w, "sur_name", u.SurName)
	dump(w, "language", u.Language)
	dump(w, "timezone", u.Timezone)
	dump(w, "mailenabled", u.MailEnabled)
	dump(w, "default_group", u.DefaultGroup)
	dump(w, "imapServer", u.ImapServer)
	dump(w, "imapLogin", u.ImapLogin)
	dump(w, "smtpServer", u.SmtpServer)
	dump(w, "company", u.Company)
	dump(w, "department", u.Department)
	dump(w, "position", u.Position)
	dump(w, "birthday", u.Birthday)
	dump(w, "anniversary", u.Anniversary)
	dump(w, "telephone_business1", u.TelephoneBusiness1)
	dump(w, "cellular_telephone1", u.CellularTelephone1)
	dump(w, "note", u.Note)
	dump(w, "gui_spam_filter_enabled", u.GUISpamFilterEnabled)
	dump(w, "userAttributes", u.UserAttributes)
	if u.Extensions.Len() > 0 {
		w.write("extensions", u.Extensions.String())
	}
	return w.String()
}
