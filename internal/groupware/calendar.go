package groupware

import (
	"time"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Recurrence types.
const (
	NoRecurrence = 0
	Daily        = 1
	Weekly       = 2
	Monthly      = 3
	Yearly       = 4
)

// Day bits for CalendarObject.Days.
const (
	Sunday    = 1
	Monday    = 2
	Tuesday   = 4
	Wednesday = 8
	Thursday  = 16
	Friday    = 32
	Saturday  = 64

	Weekday = Monday | Tuesday | Wednesday | Thursday | Friday
	Weekend = Saturday | Sunday
	AllDays = Weekday | Weekend
)

// Participant types.
const (
	ParticipantUser          = 1
	ParticipantGroup         = 2
	ParticipantResource      = 3
	ParticipantResourceGroup = 4
	ParticipantExternalUser  = 5
	ParticipantExternalGroup = 6
)

// Confirmation states.
const (
	ConfirmNone      = 0
	ConfirmAccept    = 1
	ConfirmDecline   = 2
	ConfirmTentative = 3
)

// NoID marks participants without an internal id.
const NoID = -1

type Participant struct {
	ID             int
	Type           int
	EmailAddress   string
	DisplayName    string
	Confirm        int
	ConfirmMessage string
}

// UserParticipant is an internal user's view of a calendar object.
type UserParticipant struct {
	ID             int
	DisplayName    string
	Confirm        int
	ConfirmMessage string
}

// ConfirmableParticipant is an external participant that can reply.
type ConfirmableParticipant struct {
	Type         int
	EmailAddress string
	DisplayName  string
	Status       int
	Message      string
}

// CalendarObject holds what appointments and tasks share: title, dates,
// recurrence and participants.
//
// Month is zero based. DayInMonth is the ordinal of Days within the month
// when Days is set; 5 then means "last".
type CalendarObject struct {
	CommonObject

	Title                  optional.Field[string]
	StartDate              optional.Field[time.Time]
	EndDate                optional.Field[time.Time]
	Note                   optional.Field[string]
	RecurrenceID           optional.Field[int]
	RecurrencePosition     optional.Field[int]
	RecurrenceDatePosition optional.Field[time.Time]
	RecurrenceType         optional.Field[int]
	Days                   optional.Field[int]
	DayInMonth             optional.Field[int]
	Month                  optional.Field[int]
	Interval               optional.Field[int]
	Until                  optional.Field[time.Time]
	Occurrences            optional.Field[int]
	ChangeExceptions       optional.Field[[]time.Time]
	DeleteExceptions       optional.Field[[]time.Time]
	Notification           optional.Field[bool]
	Participants           optional.Field[[]Participant]
	Users                  optional.Field[[]UserParticipant]
	Confirmations          optional.Field[[]ConfirmableParticipant]
	UID                    optional.Field[string]
	Organizer              optional.Field[string]
	Sequence               optional.Field[int]

	// RecurrenceMasterStart is the start of the series an occurrence belongs
	// to. Occurrence dates are shifted by the time zone offset in effect at
	// this instant.
	RecurrenceMasterStart optional.Field[time.Time]
}

// IsRecurring reports whether a recurrence other than NoRecurrence is set.
func (c *CalendarObject) IsRecurring() bool {
	t, ok := c.RecurrenceType.Get()
	return ok && t != NoRecurrence
}

// AddParticipant appends p to Participants.
func (c *CalendarObject) AddParticipant(p Participant) {
	c.Participants.Set(append(c.Participants.Value(), p))
}

func (c *CalendarObject) AddConfirmation(p ConfirmableParticipant) {
	c.Confirmations.Set(append(c.Confirmations.Value(), p))
}
