package groupware

import (
	"time"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Email fields a distribution list entry can point at.
const (
	EmailFieldIndependent = 0
	EmailField1           = 1
	EmailField2           = 2
	EmailField3           = 3
)

// NumUserfields is the number of free-form user fields on a contact.
const NumUserfields = 20

// DistributionListEntry is one member of a distribution list. EntryID and
// FolderID reference a contact; they are zero for a bare address.
type DistributionListEntry struct {
	EntryID      int
	FolderID     int
	DisplayName  string
	EmailAddress string
	EmailField   int
}

type Contact struct {
	CommonObject

	DisplayName        optional.Field[string]
	GivenName          optional.Field[string]
	SurName            optional.Field[string]
	MiddleName         optional.Field[string]
	Suffix             optional.Field[string]
	Title              optional.Field[string]
	StreetHome         optional.Field[string]
	PostalCodeHome     optional.Field[string]
	CityHome           optional.Field[string]
	StateHome          optional.Field[string]
	CountryHome        optional.Field[string]
	Birthday           optional.Field[time.Time]
	MaritalStatus      optional.Field[string]
	NumberOfChildren   optional.Field[string]
	Profession         optional.Field[string]
	Nickname           optional.Field[string]
	SpouseName         optional.Field[string]
	Anniversary        optional.Field[time.Time]
	Note               optional.Field[string]
	Department         optional.Field[string]
	Position           optional.Field[string]
	EmployeeType       optional.Field[string]
	RoomNumber         optional.Field[string]
	StreetBusiness     optional.Field[string]
	PostalCodeBusiness optional.Field[string]
	CityBusiness       optional.Field[string]
	StateBusiness      optional.Field[string]
	CountryBusiness    optional.Field[string]
	NumberOfEmployees  optional.Field[string]
	SalesVolume        optional.Field[string]
	TaxID              optional.Field[string]
	CommercialRegister optional.Field[string]
	BranchSector       optional.Field[string]
	BusinessCategory   optional.Field[string]
	Info               optional.Field[string]
	ManagerName        optional.Field[string]
	AssistantName      optional.Field[string]
	StreetOther        optional.Field[string]
	CityOther          optional.Field[string]
	PostalCodeOther    optional.Field[string]
	CountryOther       optional.Field[string]
	StateOther         optional.Field[string]

	TelephoneBusiness1 optional.Field[string]
	TelephoneBusiness2 optional.Field[string]
	FaxBusiness        optional.Field[string]
	TelephoneCallback  optional.Field[string]
	TelephoneCar       optional.Field[string]
	TelephoneCompany   optional.Field[string]
	TelephoneHome1     optional.Field[string]
	TelephoneHome2     optional.Field[string]
	FaxHome            optional.Field[string]
	CellularTelephone1 optional.Field[string]
	CellularTelephone2 optional.Field[string]
	TelephoneOther     optional.Field[string]
	FaxOther           optional.Field[string]
	Email1             optional.Field[string]
	Email2             optional.Field[string]
	Email3             optional.Field[string]
	URL                optional.Field[string]
	TelephoneISDN      optional.Field[string]
	TelephonePager     optional.Field[string]
	TelephonePrimary   optional.Field[string]
	TelephoneRadio     optional.Field[string]
	TelephoneTelex     optional.Field[string]
	TelephoneTTYTDD    optional.Field[string]
	InstantMessenger1  optional.Field[string]
	InstantMessenger2  optional.Field[string]
	TelephoneIP        optional.Field[string]
	TelephoneAssistant optional.Field[string]
	Company            optional.Field[string]
	Userfields         [NumUserfields]optional.Field[string]
	DefaultAddress     optional.Field[int]
	FileAs             optional.Field[string]
	UID                optional.Field[string]
	InternalUserID     optional.Field[int]
	UseCount           optional.Field[int]
	ImageContentType   optional.Field[string]
	ImageLastModified  optional.Field[time.Time]
	Image1             optional.Field[[]byte]
	DistributionList   optional.Field[[]DistributionListEntry]
	MarkAsDistribution optional.Field[bool]
	NumberOfImages     optional.Field[int]
}

// MarkAsDistributionList reports whether c is a distribution list rather
// than a person.
func (c *Contact) MarkAsDistributionList() bool {
	return c.MarkAsDistribution.Value()
}

// SetDistributionList replaces the members and marks c as a list.
func (c *Contact) SetDistributionList(entries []DistributionListEntry) {
	c.DistributionList.Set(entries)
	c.MarkAsDistribution.Set(true)
}

// NumberOfDistributionLists is the member count.
func (c *Contact) NumberOfDistributionLists() int {
	return len(c.DistributionList.Value())
}

// HasImage reports whether c carries a picture.
func (c *Contact) HasImage() bool {
	return len(c.Image1.Value()) > 0 || c.NumberOfImages.Value() > 0
}
