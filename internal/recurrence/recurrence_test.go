package recurrence

import (
	"bytes"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

func TestApply(t *testing.T) {
	start := time.Date(2024, 7, 3, 9, 0, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		rule     string
		typ      int
		days     int
		dim      int
		month    int
		interval int
		count    int
	}{
		{"FREQ=DAILY;INTERVAL=2;COUNT=5", groupware.Daily, 0, 0, 0, 2, 5},
		{"FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR", groupware.Weekly, groupware.Weekday, 0, 0, 1, 0},
		{"FREQ=WEEKLY;BYDAY=MO,FR", groupware.Weekly, groupware.Monday | groupware.Friday, 0, 0, 1, 0},
		{"FREQ=WEEKLY", groupware.Weekly, groupware.Wednesday, 0, 0, 1, 0},
		{"FREQ=MONTHLY;BYDAY=FR;BYSETPOS=-1", groupware.Monthly, groupware.Friday, 5, 0, 1, 0},
		{"FREQ=MONTHLY;BYDAY=-1FR", groupware.Monthly, groupware.Friday, 5, 0, 1, 0},
		{"FREQ=MONTHLY;BYDAY=2TU;INTERVAL=3", groupware.Monthly, groupware.Tuesday, 2, 0, 3, 0},
		{"FREQ=MONTHLY;BYMONTHDAY=15", groupware.Monthly, 0, 15, 0, 1, 0},
		{"FREQ=MONTHLY", groupware.Monthly, 0, 3, 0, 1, 0},
		{"FREQ=YEARLY;BYMONTH=3;BYMONTHDAY=1", groupware.Yearly, 0, 1, 2, 1, 0},
		{"FREQ=YEARLY", groupware.Yearly, 0, 3, 6, 1, 0},
		{"FREQ=YEARLY;BYMONTH=11;BYDAY=4TH", groupware.Yearly, groupware.Thursday, 4, 10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			opt, err := ParseRule(tt.rule)
			require.NoError(t, err)
			var c groupware.CalendarObject
			require.NoError(t, Apply(&c, opt, start))

			assert.Equal(t, tt.typ, c.RecurrenceType.Value())
			assert.Equal(t, tt.days, c.Days.Value())
			assert.Equal(t, tt.dim, c.DayInMonth.Value())
			assert.Equal(t, tt.month, c.Month.Value())
			assert.Equal(t, tt.interval, c.Interval.Value())
			assert.Equal(t, tt.count, c.Occurrences.Value())
		})
	}
}

func TestApplyUntil(t *testing.T) {
	opt, err := ParseRule("FREQ=WEEKLY;UNTIL=20241231T000000Z")
	require.NoError(t, err)
	var c groupware.CalendarObject
	require.NoError(t, Apply(&c, opt, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	until, ok := c.Until.Get()
	require.True(t, ok)
	assert.True(t, until.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.Occurrences.IsSet())
}

func TestApplyUnsupported(t *testing.T) {
	for _, rule := range []string{
		"FREQ=HOURLY",
		"FREQ=MONTHLY;BYDAY=-2FR",
		"FREQ=MONTHLY;BYDAY=FR",
		"FREQ=MONTHLY;BYMONTHDAY=-1",
	} {
		t.Run(rule, func(t *testing.T) {
			opt, err := ParseRule(rule)
			require.NoError(t, err)
			var c groupware.CalendarObject
			assert.ErrorIs(t, Apply(&c, opt, time.Now()), ErrUnsupported)
		})
	}

	_, err := ParseRule("FREQ=SOMETIMES")
	assert.Error(t, err)
}

func TestOption(t *testing.T) {
	var c groupware.CalendarObject
	_, err := Option(&c, time.Now())
	assert.ErrorIs(t, err, ErrNotRecurring)

	c.RecurrenceType.Set(groupware.Monthly)
	c.Days.Set(groupware.Friday)
	c.DayInMonth.Set(5)
	opt, err := Option(&c, time.Now())
	require.NoError(t, err)
	require.Len(t, opt.Byweekday, 1)
	assert.Equal(t, -1, opt.Byweekday[0].N())
	assert.Equal(t, 1, opt.Interval)

	c.RecurrenceType.Set(17)
	_, err = Option(&c, time.Now())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func newExpander(t *testing.T, loc *time.Location) (*Expander, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewExpander(loc, zerolog.New(&logs)), &logs
}

func weekly(t *testing.T, loc *time.Location) *groupware.Appointment {
	t.Helper()
	a := &groupware.Appointment{}
	a.ObjectID.Set(99)
	a.Title.Set("sync")
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, loc) // Monday
	a.StartDate.Set(start)
	a.EndDate.Set(start.Add(time.Hour))
	a.RecurrenceType.Set(groupware.Weekly)
	a.Days.Set(groupware.Monday | groupware.Friday)
	a.Interval.Set(1)
	return a
}

func TestExpandWeekly(t *testing.T) {
	e, _ := newExpander(t, time.UTC)
	a := weekly(t, time.UTC)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	occ, err := e.Expand(a, from, until)
	require.NoError(t, err)
	require.Len(t, occ, 4)
	wantDays := []int{1, 5, 8, 12}
	for i, o := range occ {
		assert.Equal(t, wantDays[i], o.StartDate.Value().Day())
		assert.Equal(t, time.Hour, o.EndDate.Value().Sub(o.StartDate.Value()))
		assert.Equal(t, i+1, o.RecurrencePosition.Value())
		assert.Equal(t, 99, o.RecurrenceID.Value())
		assert.True(t, o.RecurrenceMasterStart.Value().Equal(a.StartDate.Value()))
		assert.Equal(t, time.Date(2024, 1, wantDays[i], 0, 0, 0, 0, time.UTC), o.RecurrenceDatePosition.Value())
	}
	assert.False(t, a.RecurrencePosition.IsSet(), "series must not change")

	t.Run("positions count from series start", func(t *testing.T) {
		occ, err := e.Expand(a, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), until)
		require.NoError(t, err)
		require.Len(t, occ, 2)
		assert.Equal(t, 3, occ[0].RecurrencePosition.Value())
		assert.Equal(t, 4, occ[1].RecurrencePosition.Value())
	})

	t.Run("delete exceptions", func(t *testing.T) {
		a := weekly(t, time.UTC)
		a.DeleteExceptions.Set([]time.Time{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)})
		occ, err := e.Expand(a, from, until)
		require.NoError(t, err)
		require.Len(t, occ, 3)
		assert.Equal(t, []int{1, 3, 4}, []int{
			occ[0].RecurrencePosition.Value(),
			occ[1].RecurrencePosition.Value(),
			occ[2].RecurrencePosition.Value(),
		})
	})
}

func TestExpandKeepsWallClockAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	e, _ := newExpander(t, berlin)

	a := &groupware.Appointment{}
	start := time.Date(2024, 3, 25, 8, 0, 0, 0, time.UTC) // 09:00 CET
	a.StartDate.Set(start)
	a.EndDate.Set(start.Add(30 * time.Minute))
	a.RecurrenceType.Set(groupware.Weekly)
	a.Days.Set(groupware.Monday)

	occ, err := e.Expand(a, start, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, occ, 2)
	assert.True(t, occ[1].StartDate.Value().Equal(time.Date(2024, 4, 1, 7, 0, 0, 0, time.UTC)))
}

func TestExpandMonthlyLast(t *testing.T) {
	e, _ := newExpander(t, time.UTC)
	a := &groupware.Appointment{}
	start := time.Date(2024, 1, 26, 10, 0, 0, 0, time.UTC)
	a.StartDate.Set(start)
	a.RecurrenceType.Set(groupware.Monthly)
	a.Days.Set(groupware.Friday)
	a.DayInMonth.Set(5)
	a.Occurrences.Set(3)

	occ, err := e.Expand(a, start, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, occ, 3)
	var got []string
	for _, o := range occ {
		got = append(got, o.StartDate.Value().Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2024-01-26", "2024-02-23", "2024-03-29"}, got)
}

func TestExpandSingle(t *testing.T) {
	e, _ := newExpander(t, time.UTC)
	a := &groupware.Appointment{}
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a.StartDate.Set(start)
	a.EndDate.Set(start.Add(time.Hour))

	occ, err := e.Expand(a, start.Add(-time.Hour), start.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Same(t, a, occ[0])

	occ, err = e.Expand(a, start.Add(2*time.Hour), start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, occ)

	_, err = e.Expand(&groupware.Appointment{}, start, start)
	assert.Error(t, err)
}

func TestExpandAll(t *testing.T) {
	e, logs := newExpander(t, time.UTC)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	single := &groupware.Appointment{}
	single.StartDate.Set(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))
	broken := &groupware.Appointment{}
	broken.UID.Set("broken")
	broken.StartDate.Set(from)
	broken.RecurrenceType.Set(42)

	out := e.ExpandAll([]*groupware.Appointment{weekly(t, time.UTC), single, broken}, from, until)
	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].StartDate.Value().Day())
	assert.Same(t, single, out[1])
	assert.Equal(t, 5, out[2].StartDate.Value().Day())
	assert.Contains(t, logs.String(), "broken")
}
