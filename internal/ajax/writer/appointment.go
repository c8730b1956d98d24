package writer

import (
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// appointmentDate writes full-time dates unshifted. Other dates are shifted
// by the offset at the appointment's start; occurrences of a series use the
// series start instead.
func appointmentDate(f fields.Field, get func(*groupware.Appointment) optional.Field[time.Time]) Column[*groupware.Appointment] {
	return Column[*groupware.Appointment]{Field: f, Value: func(a *groupware.Appointment, env *Env) (any, bool, error) {
		t, ok := get(a).Get()
		if !ok {
			return nil, false, nil
		}
		if a.FullTime.Value() {
			return t.UnixMilli(), true, nil
		}
		ref := a.StartDate.OrElse(t)
		if a.IsRecurring() || a.RecurrenceID.IsSet() {
			if master, ok := a.RecurrenceMasterStart.Get(); ok {
				ref = master
			}
		}
		return env.localMillis(t, ref), true, nil
	}}
}

var Appointments = NewTable("appointment",
	lift(calendarColumns, func(a *groupware.Appointment) *groupware.CalendarObject { return &a.CalendarObject }),
	[]Column[*groupware.Appointment]{
		appointmentDate(fields.StartDate, func(a *groupware.Appointment) optional.Field[time.Time] { return a.StartDate }),
		appointmentDate(fields.EndDate, func(a *groupware.Appointment) optional.Field[time.Time] { return a.EndDate }),
		stringColumn(fields.Location, func(a *groupware.Appointment) optional.Field[string] { return a.Location }),
		primitiveColumn(fields.FullTime, func(a *groupware.Appointment) optional.Field[bool] { return a.FullTime }),
		primitiveColumn(fields.ShownAs, func(a *groupware.Appointment) optional.Field[int] { return a.ShownAs }),
		primitiveColumn(fields.Alarm, func(a *groupware.Appointment) optional.Field[int] { return a.Alarm }),
		stringColumn(fields.Timezone, func(a *groupware.Appointment) optional.Field[string] { return a.Timezone }),
	},
)

type AppointmentWriter = Writer[*groupware.Appointment]

func NewAppointmentWriter(env *Env) *AppointmentWriter {
	return NewWriter(Appointments, env)
}
