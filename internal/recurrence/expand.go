package recurrence

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/teambition/rrule-go"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

type Expander struct {
	timeZone *time.Location
	logger   zerolog.Logger
}

// NewExpander returns an expander evaluating rules in tz unless an
// appointment names its own time zone.
func NewExpander(tz *time.Location, logger zerolog.Logger) *Expander {
	if tz == nil {
		tz = time.UTC
	}
	return &Expander{timeZone: tz, logger: logger.With().Str("component", "recurrence").Logger()}
}

// ExpandAll expands every appointment that overlaps [from, until). Series
// that fail to expand are logged and skipped.
func (e *Expander) ExpandAll(appts []*groupware.Appointment, from, until time.Time) []*groupware.Appointment {
	var out []*groupware.Appointment
	for _, a := range appts {
		occ, err := e.Expand(a, from, until)
		if err != nil {
			e.logger.Warn().Err(err).Str("uid", a.UID.Value()).Msg("skipping series")
			continue
		}
		out = append(out, occ...)
	}
	slices.SortStableFunc(out, func(a, b *groupware.Appointment) int {
		return a.StartDate.Value().Compare(b.StartDate.Value())
	})
	return out
}

// Expand returns the occurrences of a that overlap [from, until).
// Occurrences carry their position in the series, the date of that
// position and the series start. Deleted occurrences are left out; a
// non-recurring appointment is returned as is when it overlaps.
func (e *Expander) Expand(a *groupware.Appointment, from, until time.Time) ([]*groupware.Appointment, error) {
	start, ok := a.StartDate.Get()
	if !ok {
		return nil, fmt.Errorf("appointment without start date")
	}
	end := a.EndDate.OrElse(start)
	duration := end.Sub(start)

	if !a.IsRecurring() {
		if overlaps(start, end, from, until) {
			return []*groupware.Appointment{a}, nil
		}
		return nil, nil
	}

	loc := e.location(a)
	opt, err := Option(&a.CalendarObject, start.In(loc))
	if err != nil {
		return nil, err
	}
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("build rule: %w", err)
	}

	deleted := a.DeleteExceptions.Value()
	var out []*groupware.Appointment
	// Positions count from the series start, so walk the series from there.
	for i, t := range rule.Between(start.Add(-time.Nanosecond), until, false) {
		if !overlaps(t, t.Add(duration), from, until) {
			continue
		}
		if isException(t, deleted, a.FullTime.Value()) {
			continue
		}
		occ := a.Clone()
		occ.StartDate.Set(t)
		occ.EndDate.Set(t.Add(duration))
		occ.RecurrencePosition.Set(i + 1)
		occ.RecurrenceDatePosition.Set(datePosition(t))
		occ.RecurrenceMasterStart.Set(start)
		if id, ok := a.ObjectID.Get(); ok {
			occ.RecurrenceID.Set(id)
		}
		out = append(out, occ)
	}
	return out, nil
}

func (e *Expander) location(a *groupware.Appointment) *time.Location {
	if a.FullTime.Value() {
		return time.UTC
	}
	if name, ok := a.Timezone.Get(); ok && name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			return loc
		}
		e.logger.Debug().Err(err).Str("timezone", name).Msg("unknown appointment time zone")
	}
	return e.timeZone
}

func overlaps(start, end, from, until time.Time) bool {
	if end.Equal(start) {
		return !start.Before(from) && start.Before(until)
	}
	return start.Before(until) && end.After(from)
}

// datePosition is the occurrence's date at UTC midnight.
func datePosition(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isException matches delete exceptions by instant, or by date for
// full-time series and exceptions given as dates.
func isException(t time.Time, exceptions []time.Time, fullTime bool) bool {
	for _, ex := range exceptions {
		if ex.Equal(t) {
			return true
		}
		if (fullTime || ex.Equal(datePosition(ex))) && datePosition(t).Equal(datePosition(ex)) {
			return true
		}
	}
	return false
}
