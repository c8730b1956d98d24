package groupware

import "github.com/sonroyaalmerol/groupware/pkg/optional"

// Shown-as values.
const (
	Reserved  = 1
	Temporary = 2
	Absent    = 3
	Free      = 4
)

type Appointment struct {
	CalendarObject

	Location optional.Field[string]
	FullTime optional.Field[bool]
	ShownAs  optional.Field[int]
	// Alarm is the reminder lead time in minutes.
	Alarm    optional.Field[int]
	Timezone optional.Field[string]
}

// Clone returns a copy that can be changed without affecting a. Slices are
// shared.
func (a *Appointment) Clone() *Appointment {
	c := *a
	return &c
}
