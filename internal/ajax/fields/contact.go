package fields

import "fmt"

// Contact columns.
var (
	DisplayName              = Field{500, "display_name"}
	GivenName                = Field{501, "first_name"}
	SurName                  = Field{502, "last_name"}
	MiddleName               = Field{503, "second_name"}
	Suffix                   = Field{504, "suffix"}
	ContactTitle             = Field{505, "title"}
	StreetHome               = Field{506, "street_home"}
	PostalCodeHome           = Field{507, "postal_code_home"}
	CityHome                 = Field{508, "city_home"}
	StateHome                = Field{509, "state_home"}
	CountryHome              = Field{510, "country_home"}
	Birthday                 = Field{511, "birthday"}
	MaritalStatus            = Field{512, "marital_status"}
	NumberOfChildren         = Field{513, "number_of_children"}
	Profession               = Field{514, "profession"}
	Nickname                 = Field{515, "nickname"}
	SpouseName               = Field{516, "spouse_name"}
	Anniversary              = Field{517, "anniversary"}
	ContactNote              = Field{518, "note"}
	Department               = Field{519, "department"}
	Position                 = Field{520, "position"}
	EmployeeType             = Field{521, "employee_type"}
	RoomNumber               = Field{522, "room_number"}
	StreetBusiness           = Field{523, "street_business"}
	InternalUserID           = Field{524, "user_id"}
	PostalCodeBusiness       = Field{525, "postal_code_business"}
	CityBusiness             = Field{526, "city_business"}
	StateBusiness            = Field{527, "state_business"}
	CountryBusiness          = Field{528, "country_business"}
	NumberOfEmployees        = Field{529, "number_of_employees"}
	SalesVolume              = Field{530, "sales_volume"}
	TaxID                    = Field{531, "tax_id"}
	CommercialRegister       = Field{532, "commercial_register"}
	BranchSector             = Field{533, "branches"}
	BusinessCategory         = Field{534, "business_category"}
	Info                     = Field{535, "info"}
	ManagerName              = Field{536, "manager_name"}
	AssistantName            = Field{537, "assistant_name"}
	StreetOther              = Field{538, "street_other"}
	CityOther                = Field{539, "city_other"}
	PostalCodeOther          = Field{540, "postal_code_other"}
	CountryOther             = Field{541, "country_other"}
	TelephoneBusiness1       = Field{542, "telephone_business1"}
	TelephoneBusiness2       = Field{543, "telephone_business2"}
	FaxBusiness              = Field{544, "fax_business"}
	TelephoneCallback        = Field{545, "telephone_callback"}
	TelephoneCar             = Field{546, "telephone_car"}
	TelephoneCompany         = Field{547, "telephone_company"}
	TelephoneHome1           = Field{548, "telephone_home1"}
	TelephoneHome2           = Field{549, "telephone_home2"}
	FaxHome                  = Field{550, "fax_home"}
	CellularTelephone1       = Field{551, "cellular_telephone1"}
	CellularTelephone2       = Field{552, "cellular_telephone2"}
	TelephoneOther           = Field{553, "telephone_other"}
	FaxOther                 = Field{554, "fax_other"}
	Email1                   = Field{555, "email1"}
	Email2                   = Field{556, "email2"}
	Email3                   = Field{557, "email3"}
	URL                      = Field{558, "url"}
	TelephoneISDN            = Field{559, "telephone_isdn"}
	TelephonePager           = Field{560, "telephone_pager"}
	TelephonePrimary         = Field{561, "telephone_primary"}
	TelephoneRadio           = Field{562, "telephone_radio"}
	TelephoneTelex           = Field{563, "telephone_telex"}
	TelephoneTTYTDD          = Field{564, "telephone_ttytdd"}
	InstantMessenger1        = Field{565, "instant_messenger1"}
	InstantMessenger2        = Field{566, "instant_messenger2"}
	TelephoneIP              = Field{567, "telephone_ip"}
	TelephoneAssistant       = Field{568, "telephone_assistant"}
	Company                  = Field{569, "company"}
	DistributionList         = Field{592, "distribution_list"}
	NumberOfDistributionList = Field{594, "number_of_distribution_list"}
	NumberOfImages           = Field{596, "number_of_images"}
	ImageLastModified        = Field{597, "image_last_modified"}
	StateOther               = Field{598, "state_other"}
	FileAs                   = Field{599, "file_as"}
	ImageContentType         = Field{601, "image1_content_type"}
	MarkAsDistributionList   = Field{602, "mark_as_distributionlist"}
	DefaultAddress           = Field{605, "default_address"}
	Image1URL                = Field{606, "image1_url"}
	UseCount                 = Field{608, "useCount"}
)

// Userfield returns the column of user field n, 1 to 20.
func Userfield(n int) Field {
	return Field{570 + n, fmt.Sprintf("userfield%02d", n)}
}

// Distribution list member keys.
const (
	DistributionListEntryID = "id"
	DistributionListFolder  = "folder_id"
	DistributionListName    = "display_name"
	DistributionListMail    = "mail"
	DistributionListField   = "mail_field"
)
