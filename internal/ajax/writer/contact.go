package writer

import (
	"fmt"
	"net/url"
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

type distributionListEntryJSON struct {
	ID          int    `json:"id,omitempty"`
	FolderID    int    `json:"folder_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Mail        string `json:"mail,omitempty"`
	MailField   int    `json:"mail_field"`
}

func distributionList(entries []groupware.DistributionListEntry) []distributionListEntryJSON {
	out := make([]distributionListEntryJSON, len(entries))
	for i, e := range entries {
		out[i] = distributionListEntryJSON{
			ID:          e.EntryID,
			FolderID:    e.FolderID,
			DisplayName: e.DisplayName,
			Mail:        e.EmailAddress,
			MailField:   e.EmailField,
		}
	}
	return out
}

// imageURL points at the contact picture; it needs the contact's id and
// folder.
func imageURL(c *groupware.Contact, env *Env) (any, bool, error) {
	id, ok := c.ObjectID.Get()
	folder, ok2 := c.ParentFolderID.Get()
	if !ok || !ok2 || !c.HasImage() {
		return nil, false, nil
	}
	q := url.Values{}
	q.Set("folder", fmt.Sprint(folder))
	q.Set("id", fmt.Sprint(id))
	if ts, ok := c.ImageLastModified.Get(); ok {
		q.Set("timestamp", fmt.Sprint(ts.UnixMilli()))
	}
	return env.Options.ImageURLPrefix + "?" + q.Encode(), true, nil
}

func contactColumns() []Column[*groupware.Contact] {
	cols := []Column[*groupware.Contact]{
		stringColumn(fields.DisplayName, func(c *groupware.Contact) optional.Field[string] { return c.DisplayName }),
		stringColumn(fields.GivenName, func(c *groupware.Contact) optional.Field[string] { return c.GivenName }),
		stringColumn(fields.SurName, func(c *groupware.Contact) optional.Field[string] { return c.SurName }),
		stringColumn(fields.MiddleName, func(c *groupware.Contact) optional.Field[string] { return c.MiddleName }),
		stringColumn(fields.Suffix, func(c *groupware.Contact) optional.Field[string] { return c.Suffix }),
		stringColumn(fields.ContactTitle, func(c *groupware.Contact) optional.Field[string] { return c.Title }),
		stringColumn(fields.StreetHome, func(c *groupware.Contact) optional.Field[string] { return c.StreetHome }),
		stringColumn(fields.PostalCodeHome, func(c *groupware.Contact) optional.Field[string] { return c.PostalCodeHome }),
		stringColumn(fields.CityHome, func(c *groupware.Contact) optional.Field[string] { return c.CityHome }),
		stringColumn(fields.StateHome, func(c *groupware.Contact) optional.Field[string] { return c.StateHome }),
		stringColumn(fields.CountryHome, func(c *groupware.Contact) optional.Field[string] { return c.CountryHome }),
		stringColumn(fields.MaritalStatus, func(c *groupware.Contact) optional.Field[string] { return c.MaritalStatus }),
		stringColumn(fields.NumberOfChildren, func(c *groupware.Contact) optional.Field[string] { return c.NumberOfChildren }),
		stringColumn(fields.Profession, func(c *groupware.Contact) optional.Field[string] { return c.Profession }),
		stringColumn(fields.Nickname, func(c *groupware.Contact) optional.Field[string] { return c.Nickname }),
		stringColumn(fields.SpouseName, func(c *groupware.Contact) optional.Field[string] { return c.SpouseName }),
		stringColumn(fields.ContactNote, func(c *groupware.Contact) optional.Field[string] { return c.Note }),
		stringColumn(fields.Department, func(c *groupware.Contact) optional.Field[string] { return c.Department }),
		stringColumn(fields.Position, func(c *groupware.Contact) optional.Field[string] { return c.Position }),
		stringColumn(fields.EmployeeType, func(c *groupware.Contact) optional.Field[string] { return c.EmployeeType }),
		stringColumn(fields.RoomNumber, func(c *groupware.Contact) optional.Field[string] { return c.RoomNumber }),
		stringColumn(fields.StreetBusiness, func(c *groupware.Contact) optional.Field[string] { return c.StreetBusiness }),
		stringColumn(fields.PostalCodeBusiness, func(c *groupware.Contact) optional.Field[string] { return c.PostalCodeBusiness }),
		stringColumn(fields.CityBusiness, func(c *groupware.Contact) optional.Field[string] { return c.CityBusiness }),
		stringColumn(fields.StateBusiness, func(c *groupware.Contact) optional.Field[string] { return c.StateBusiness }),
		stringColumn(fields.CountryBusiness, func(c *groupware.Contact) optional.Field[string] { return c.CountryBusiness }),
		stringColumn(fields.NumberOfEmployees, func(c *groupware.Contact) optional.Field[string] { return c.NumberOfEmployees }),
		stringColumn(fields.SalesVolume, func(c *groupware.Contact) optional.Field[string] { return c.SalesVolume }),
		stringColumn(fields.TaxID, func(c *groupware.Contact) optional.Field[string] { return c.TaxID }),
		stringColumn(fields.CommercialRegister, func(c *groupware.Contact) optional.Field[string] { return c.CommercialRegister }),
		stringColumn(fields.BranchSector, func(c *groupware.Contact) optional.Field[string] { return c.BranchSector }),
		stringColumn(fields.BusinessCategory, func(c *groupware.Contact) optional.Field[string] { return c.BusinessCategory }),
		stringColumn(fields.Info, func(c *groupware.Contact) optional.Field[string] { return c.Info }),
		stringColumn(fields.ManagerName, func(c *groupware.Contact) optional.Field[string] { return c.ManagerName }),
		stringColumn(fields.AssistantName, func(c *groupware.Contact) optional.Field[string] { return c.AssistantName }),
		stringColumn(fields.StreetOther, func(c *groupware.Contact) optional.Field[string] { return c.StreetOther }),
		stringColumn(fields.CityOther, func(c *groupware.Contact) optional.Field[string] { return c.CityOther }),
		stringColumn(fields.PostalCodeOther, func(c *groupware.Contact) optional.Field[string] { return c.PostalCodeOther }),
		stringColumn(fields.CountryOther, func(c *groupware.Contact) optional.Field[string] { return c.CountryOther }),
		stringColumn(fields.StateOther, func(c *groupware.Contact) optional.Field[string] { return c.StateOther }),
		stringColumn(fields.TelephoneBusiness1, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneBusiness1 }),
		stringColumn(fields.TelephoneBusiness2, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneBusiness2 }),
		stringColumn(fields.FaxBusiness, func(c *groupware.Contact) optional.Field[string] { return c.FaxBusiness }),
		stringColumn(fields.TelephoneCallback, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneCallback }),
		stringColumn(fields.TelephoneCar, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneCar }),
		stringColumn(fields.TelephoneCompany, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneCompany }),
		stringColumn(fields.TelephoneHome1, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneHome1 }),
		stringColumn(fields.TelephoneHome2, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneHome2 }),
		stringColumn(fields.FaxHome, func(c *groupware.Contact) optional.Field[string] { return c.FaxHome }),
		stringColumn(fields.CellularTelephone1, func(c *groupware.Contact) optional.Field[string] { return c.CellularTelephone1 }),
		stringColumn(fields.CellularTelephone2, func(c *groupware.Contact) optional.Field[string] { return c.CellularTelephone2 }),
		stringColumn(fields.TelephoneOther, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneOther }),
		stringColumn(fields.FaxOther, func(c *groupware.Contact) optional.Field[string] { return c.FaxOther }),
		stringColumn(fields.Email1, func(c *groupware.Contact) optional.Field[string] { return c.Email1 }),
		stringColumn(fields.Email2, func(c *groupware.Contact) optional.Field[string] { return c.Email2 }),
		stringColumn(fields.Email3, func(c *groupware.Contact) optional.Field[string] { return c.Email3 }),
		stringColumn(fields.URL, func(c *groupware.Contact) optional.Field[string] { return c.URL }),
		stringColumn(fields.TelephoneISDN, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneISDN }),
		stringColumn(fields.TelephonePager, func(c *groupware.Contact) optional.Field[string] { return c.TelephonePager }),
		stringColumn(fields.TelephonePrimary, func(c *groupware.Contact) optional.Field[string] { return c.TelephonePrimary }),
		stringColumn(fields.TelephoneRadio, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneRadio }),
		stringColumn(fields.TelephoneTelex, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneTelex }),
		stringColumn(fields.TelephoneTTYTDD, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneTTYTDD }),
		stringColumn(fields.InstantMessenger1, func(c *groupware.Contact) optional.Field[string] { return c.InstantMessenger1 }),
		stringColumn(fields.InstantMessenger2, func(c *groupware.Contact) optional.Field[string] { return c.InstantMessenger2 }),
		stringColumn(fields.TelephoneIP, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneIP }),
		stringColumn(fields.TelephoneAssistant, func(c *groupware.Contact) optional.Field[string] { return c.TelephoneAssistant }),
		stringColumn(fields.Company, func(c *groupware.Contact) optional.Field[string] { return c.Company }),
		stringColumn(fields.FileAs, func(c *groupware.Contact) optional.Field[string] { return c.FileAs }),
		stringColumn(fields.UID, func(c *groupware.Contact) optional.Field[string] { return c.UID }),
		stringColumn(fields.ImageContentType, func(c *groupware.Contact) optional.Field[string] { return c.ImageContentType }),
		rawDateColumn(fields.Birthday, func(c *groupware.Contact) optional.Field[time.Time] { return c.Birthday }),
		rawDateColumn(fields.Anniversary, func(c *groupware.Contact) optional.Field[time.Time] { return c.Anniversary }),
		rawDateColumn(fields.ImageLastModified, func(c *groupware.Contact) optional.Field[time.Time] { return c.ImageLastModified }),
		primitiveColumn(fields.InternalUserID, func(c *groupware.Contact) optional.Field[int] { return c.InternalUserID }),
		primitiveColumn(fields.DefaultAddress, func(c *groupware.Contact) optional.Field[int] { return c.DefaultAddress }),
		primitiveColumn(fields.UseCount, func(c *groupware.Contact) optional.Field[int] { return c.UseCount }),
		primitiveColumn(fields.NumberOfImages, func(c *groupware.Contact) optional.Field[int] { return c.NumberOfImages }),
		primitiveColumn(fields.MarkAsDistributionList, func(c *groupware.Contact) optional.Field[bool] { return c.MarkAsDistribution }),
		listColumn(fields.DistributionList, func(c *groupware.Contact) optional.Field[[]groupware.DistributionListEntry] {
			return c.DistributionList
		}, distributionList),
		{Field: fields.NumberOfDistributionList, Primitive: true, Value: func(c *groupware.Contact, _ *Env) (any, bool, error) {
			return c.NumberOfDistributionLists(), c.DistributionList.IsSet(), nil
		}},
		{Field: fields.Image1URL, Value: imageURL},
	}
	for n := 1; n <= groupware.NumUserfields; n++ {
		cols = append(cols, stringColumn(fields.Userfield(n), func(c *groupware.Contact) optional.Field[string] { return c.Userfields[n-1] }))
	}
	return cols
}

var Contacts = NewTable("contact",
	lift(commonColumns, func(c *groupware.Contact) *groupware.CommonObject { return &c.CommonObject }),
	contactColumns(),
)

type ContactWriter = Writer[*groupware.Contact]

func NewContactWriter(env *Env) *ContactWriter {
	return NewWriter(Contacts, env)
}
