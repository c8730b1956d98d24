// Package fields defines the column identifiers and JSON keys of the AJAX
// interface. Clients request list columns by ID; detail objects use Key.
package fields

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is a column identifier and its JSON key.
type Field struct {
	ID  int
	Key string
}

func (f Field) String() string {
	return fmt.Sprintf("%d(%s)", f.ID, f.Key)
}

// Data and common object columns.
var (
	ObjectID        = Field{1, "id"}
	CreatedBy       = Field{2, "created_by"}
	ModifiedBy      = Field{3, "modified_by"}
	CreationDate    = Field{4, "creation_date"}
	LastModified    = Field{5, "last_modified"}
	LastModifiedUTC = Field{6, "last_modified_utc"}
	FolderID        = Field{20, "folder_id"}

	Categories          = Field{100, "categories"}
	PrivateFlag         = Field{101, "private_flag"}
	ColorLabel          = Field{102, "color_label"}
	NumberOfAttachments = Field{104, "number_of_attachments"}
)

// Calendar columns, shared by appointments and tasks.
var (
	Title                  = Field{200, "title"}
	StartDate              = Field{201, "start_date"}
	EndDate                = Field{202, "end_date"}
	Note                   = Field{203, "note"}
	Alarm                  = Field{204, "alarm"}
	RecurrenceID           = Field{206, "recurrence_id"}
	RecurrencePosition     = Field{207, "recurrence_position"}
	RecurrenceDatePosition = Field{208, "recurrence_date_position"}
	RecurrenceType         = Field{209, "recurrence_type"}
	ChangeExceptions       = Field{210, "change_exceptions"}
	DeleteExceptions       = Field{211, "delete_exceptions"}
	Days                   = Field{212, "days"}
	DayInMonth             = Field{213, "day_in_month"}
	Month                  = Field{214, "month"}
	Interval               = Field{215, "interval"}
	Until                  = Field{216, "until"}
	Notification           = Field{217, "notification"}
	Participants           = Field{220, "participants"}
	Users                  = Field{221, "users"}
	Occurrences            = Field{222, "occurrences"}
	UID                    = Field{223, "uid"}
	Organizer              = Field{224, "organizer"}
	Sequence               = Field{225, "sequence"}
	Confirmations          = Field{226, "confirmations"}
)

// Task columns.
var (
	Status             = Field{300, "status"}
	PercentCompleted   = Field{301, "percent_completed"}
	ActualCosts        = Field{302, "actual_costs"}
	ActualDuration     = Field{303, "actual_duration"}
	BillingInformation = Field{305, "billing_information"}
	TargetCosts        = Field{307, "target_costs"}
	TargetDuration     = Field{308, "target_duration"}
	Priority           = Field{309, "priority"}
	Currency           = Field{312, "currency"}
	TripMeter          = Field{313, "trip_meter"}
	Companies          = Field{314, "companies"}
	DateCompleted      = Field{315, "date_completed"}
)

// Appointment columns.
var (
	Location = Field{400, "location"}
	FullTime = Field{401, "full_time"}
	ShownAs  = Field{402, "shown_as"}
	Timezone = Field{408, "timezone"}
)

// Participant, user and confirmation member keys.
const (
	ParticipantID       = "id"
	ParticipantType     = "type"
	ParticipantMail     = "mail"
	ParticipantName     = "display_name"
	ParticipantConfirm  = "confirmation"
	ParticipantMessage  = "confirmmessage"
	ConfirmationStatus  = "status"
	ConfirmationMessage = "message"
)

// ParseColumns parses a comma separated list of column ids such as
// "1,20,200".
func ParseColumns(s string) ([]int, error) {
	var cols []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", part, err)
		}
		cols = append(cols, id)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns in %q", s)
	}
	return cols, nil
}
