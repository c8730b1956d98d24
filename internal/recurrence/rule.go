// Package recurrence converts between RRULEs and the recurrence fields of
// calendar objects and expands series into occurrences.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

var (
	ErrUnsupported  = errors.New("unsupported recurrence")
	ErrNotRecurring = errors.New("not recurring")
)

// lastDayInMonth is the day_in_month value for "last".
const lastDayInMonth = 5

var weekdayBits = []struct {
	day rrule.Weekday
	bit int
}{
	{rrule.SU, groupware.Sunday},
	{rrule.MO, groupware.Monday},
	{rrule.TU, groupware.Tuesday},
	{rrule.WE, groupware.Wednesday},
	{rrule.TH, groupware.Thursday},
	{rrule.FR, groupware.Friday},
	{rrule.SA, groupware.Saturday},
}

func dayBit(d rrule.Weekday) int {
	for _, wb := range weekdayBits {
		if wb.day.Day() == d.Day() {
			return wb.bit
		}
	}
	return 0
}

func timeBit(d time.Weekday) int {
	return 1 << uint(d)
}

// weekdays returns the weekdays in days, each repeated as the n-th
// occurrence when n is not zero.
func weekdays(days, n int) []rrule.Weekday {
	var out []rrule.Weekday
	for _, wb := range weekdayBits {
		if days&wb.bit == 0 {
			continue
		}
		if n != 0 {
			out = append(out, wb.day.Nth(n))
		} else {
			out = append(out, wb.day)
		}
	}
	return out
}

// ParseRule parses an RRULE value such as "FREQ=WEEKLY;BYDAY=MO,FR".
func ParseRule(value string) (*rrule.ROption, error) {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return nil, fmt.Errorf("parse rrule %q: %w", value, err)
	}
	return opt, nil
}

// Apply sets c's recurrence fields from opt. start is the series start; it
// supplies the weekday, day and month a rule leaves implicit.
func Apply(c *groupware.CalendarObject, opt *rrule.ROption, start time.Time) error {
	interval := opt.Interval
	if interval <= 0 {
		interval = 1
	}

	var days int
	nth := 0
	for _, wd := range opt.Byweekday {
		days |= dayBit(wd)
		if wd.N() != 0 {
			nth = wd.N()
		}
	}
	if nth == 0 && len(opt.Bysetpos) > 0 {
		nth = opt.Bysetpos[0]
	}
	if nth < 0 {
		if nth != -1 {
			return fmt.Errorf("%w: position %d", ErrUnsupported, nth)
		}
		nth = lastDayInMonth
	}

	switch opt.Freq {
	case rrule.DAILY:
		if days != 0 {
			c.RecurrenceType.Set(groupware.Weekly)
			c.Days.Set(days)
		} else {
			c.RecurrenceType.Set(groupware.Daily)
		}
	case rrule.WEEKLY:
		if days == 0 {
			days = timeBit(start.Weekday())
		}
		c.RecurrenceType.Set(groupware.Weekly)
		c.Days.Set(days)
	case rrule.MONTHLY, rrule.YEARLY:
		if opt.Freq == rrule.MONTHLY {
			c.RecurrenceType.Set(groupware.Monthly)
		} else {
			c.RecurrenceType.Set(groupware.Yearly)
			month := int(start.Month())
			if len(opt.Bymonth) > 0 {
				month = opt.Bymonth[0]
			}
			c.Month.Set(month - 1)
		}
		switch {
		case days != 0:
			if nth == 0 {
				return fmt.Errorf("%w: weekday without position", ErrUnsupported)
			}
			c.Days.Set(days)
			c.DayInMonth.Set(nth)
		case len(opt.Bymonthday) > 0:
			if opt.Bymonthday[0] < 0 {
				return fmt.Errorf("%w: negative month day", ErrUnsupported)
			}
			c.DayInMonth.Set(opt.Bymonthday[0])
		default:
			c.DayInMonth.Set(start.Day())
		}
	default:
		return fmt.Errorf("%w: frequency %v", ErrUnsupported, opt.Freq)
	}

	c.Interval.Set(interval)
	if opt.Count > 0 {
		c.Occurrences.Set(opt.Count)
	}
	if !opt.Until.IsZero() {
		c.Until.Set(opt.Until)
	}
	return nil
}

// Option builds the rule of c's series starting at start.
func Option(c *groupware.CalendarObject, start time.Time) (*rrule.ROption, error) {
	if !c.IsRecurring() {
		return nil, ErrNotRecurring
	}
	opt := &rrule.ROption{
		Dtstart:  start,
		Interval: c.Interval.OrElse(1),
		Count:    c.Occurrences.Value(),
		Until:    c.Until.Value(),
	}
	days := c.Days.Value()
	dim := c.DayInMonth.Value()
	nth := dim
	if nth == lastDayInMonth {
		nth = -1
	}

	switch t := c.RecurrenceType.Value(); t {
	case groupware.Daily:
		opt.Freq = rrule.DAILY
	case groupware.Weekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = weekdays(days, 0)
	case groupware.Monthly, groupware.Yearly:
		opt.Freq = rrule.MONTHLY
		if t == groupware.Yearly {
			opt.Freq = rrule.YEARLY
			opt.Bymonth = []int{c.Month.Value() + 1}
		}
		if days != 0 {
			opt.Byweekday = weekdays(days, nth)
		} else if dim > 0 {
			opt.Bymonthday = []int{dim}
		}
	default:
		return nil, fmt.Errorf("%w: type %d", ErrUnsupported, t)
	}
	return opt, nil
}
