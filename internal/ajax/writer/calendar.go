package writer

import (
	"fmt"
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

type participantJSON struct {
	ID           *int   `json:"id,omitempty"`
	Type         int    `json:"type"`
	Mail         string `json:"mail,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	Confirmation int    `json:"confirmation,omitempty"`
	Message      string `json:"confirmmessage,omitempty"`
}

type userJSON struct {
	ID           int    `json:"id"`
	DisplayName  string `json:"display_name,omitempty"`
	Confirmation int    `json:"confirmation"`
	Message      string `json:"confirmmessage,omitempty"`
}

type confirmationJSON struct {
	Type        int    `json:"type"`
	Mail        string `json:"mail"`
	DisplayName string `json:"display_name,omitempty"`
	Status      int    `json:"status"`
	Message     string `json:"message,omitempty"`
}

func participants(ps []groupware.Participant) []participantJSON {
	out := make([]participantJSON, len(ps))
	for i, p := range ps {
		j := participantJSON{
			Type:         p.Type,
			Mail:         p.EmailAddress,
			DisplayName:  p.DisplayName,
			Confirmation: p.Confirm,
			Message:      p.ConfirmMessage,
		}
		if p.ID != groupware.NoID {
			id := p.ID
			j.ID = &id
		}
		out[i] = j
	}
	return out
}

func users(us []groupware.UserParticipant) []userJSON {
	out := make([]userJSON, len(us))
	for i, u := range us {
		out[i] = userJSON{ID: u.ID, DisplayName: u.DisplayName, Confirmation: u.Confirm, Message: u.ConfirmMessage}
	}
	return out
}

func confirmations(cs []groupware.ConfirmableParticipant) []confirmationJSON {
	out := make([]confirmationJSON, len(cs))
	for i, c := range cs {
		out[i] = confirmationJSON{Type: c.Type, Mail: c.EmailAddress, DisplayName: c.DisplayName, Status: c.Status, Message: c.Message}
	}
	return out
}

// recurrenceType returns the object's recurrence type, NoRecurrence when
// none is set.
func recurrenceType(c *groupware.CalendarObject) (int, error) {
	t := c.RecurrenceType.OrElse(groupware.NoRecurrence)
	switch t {
	case groupware.NoRecurrence, groupware.Daily, groupware.Weekly, groupware.Monthly, groupware.Yearly:
		return t, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownRecurrence, t)
}

// recurrenceColumn is contained only for the recurrence types listed in
// types.
func recurrenceColumn(f fields.Field, get func(*groupware.CalendarObject) optional.Field[int], types ...int) Column[*groupware.CalendarObject] {
	return Column[*groupware.CalendarObject]{Field: f, Primitive: true, Value: func(c *groupware.CalendarObject, _ *Env) (any, bool, error) {
		t, err := recurrenceType(c)
		if err != nil {
			return nil, false, err
		}
		v, ok := get(c).Get()
		for _, want := range types {
			if t == want {
				return v, ok, nil
			}
		}
		return v, false, nil
	}}
}

// listColumn is contained when the slice is set and not null; empty slices
// are written as [].
func listColumn[T, E, J any](f fields.Field, get func(T) optional.Field[[]E], conv func([]E) J) Column[T] {
	return Column[T]{Field: f, Value: func(obj T, _ *Env) (any, bool, error) {
		v, ok := get(obj).Get()
		if !ok {
			return nil, false, nil
		}
		return conv(v), true, nil
	}}
}

var calendarColumns = append(
	lift(commonColumns, func(c *groupware.CalendarObject) *groupware.CommonObject { return &c.CommonObject }),
	stringColumn(fields.Title, func(c *groupware.CalendarObject) optional.Field[string] { return c.Title }),
	stringColumn(fields.Note, func(c *groupware.CalendarObject) optional.Field[string] { return c.Note }),
	primitiveColumn(fields.RecurrenceID, func(c *groupware.CalendarObject) optional.Field[int] { return c.RecurrenceID }),
	primitiveColumn(fields.RecurrencePosition, func(c *groupware.CalendarObject) optional.Field[int] { return c.RecurrencePosition }),
	rawDateColumn(fields.RecurrenceDatePosition, func(c *groupware.CalendarObject) optional.Field[time.Time] { return c.RecurrenceDatePosition }),
	Column[*groupware.CalendarObject]{Field: fields.RecurrenceType, Primitive: true, Value: func(c *groupware.CalendarObject, _ *Env) (any, bool, error) {
		t, err := recurrenceType(c)
		if err != nil {
			return nil, false, err
		}
		return t, c.RecurrenceType.IsSet() && !c.RecurrenceType.IsNull(), nil
	}},
	recurrenceColumn(fields.Days, func(c *groupware.CalendarObject) optional.Field[int] { return c.Days },
		groupware.Weekly, groupware.Monthly, groupware.Yearly),
	Column[*groupware.CalendarObject]{Field: fields.DayInMonth, Primitive: true, Value: func(c *groupware.CalendarObject, _ *Env) (any, bool, error) {
		t, err := recurrenceType(c)
		if err != nil {
			return nil, false, err
		}
		d, ok := c.DayInMonth.Get()
		switch t {
		case groupware.Monthly:
			// 5 is "last" on the wire.
			if d == 5 {
				d = -1
			}
			return d, ok, nil
		case groupware.Yearly:
			return d, ok, nil
		}
		return d, false, nil
	}},
	recurrenceColumn(fields.Month, func(c *groupware.CalendarObject) optional.Field[int] { return c.Month }, groupware.Yearly),
	primitiveColumn(fields.Interval, func(c *groupware.CalendarObject) optional.Field[int] { return c.Interval }),
	rawDateColumn(fields.Until, func(c *groupware.CalendarObject) optional.Field[time.Time] { return c.Until }),
	primitiveColumn(fields.Occurrences, func(c *groupware.CalendarObject) optional.Field[int] { return c.Occurrences }),
	listColumn(fields.ChangeExceptions, func(c *groupware.CalendarObject) optional.Field[[]time.Time] { return c.ChangeExceptions }, rawDates),
	listColumn(fields.DeleteExceptions, func(c *groupware.CalendarObject) optional.Field[[]time.Time] { return c.DeleteExceptions }, rawDates),
	primitiveColumn(fields.Notification, func(c *groupware.CalendarObject) optional.Field[bool] { return c.Notification }),
	listColumn(fields.Participants, func(c *groupware.CalendarObject) optional.Field[[]groupware.Participant] { return c.Participants }, participants),
	listColumn(fields.Users, func(c *groupware.CalendarObject) optional.Field[[]groupware.UserParticipant] { return c.Users }, users),
	listColumn(fields.Confirmations, func(c *groupware.CalendarObject) optional.Field[[]groupware.ConfirmableParticipant] {
		return c.Confirmations
	}, confirmations),
	stringColumn(fields.UID, func(c *groupware.CalendarObject) optional.Field[string] { return c.UID }),
	stringColumn(fields.Organizer, func(c *groupware.CalendarObject) optional.Field[string] { return c.Organizer }),
	primitiveColumn(fields.Sequence, func(c *groupware.CalendarObject) optional.Field[int] { return c.Sequence }),
)
