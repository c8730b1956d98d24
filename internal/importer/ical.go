package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/internal/recurrence"
)

// Calendar is the outcome of an iCalendar import. Results holds one entry per
// VEVENT or VTODO in source order.
type Calendar struct {
	Appointments []*groupware.Appointment
	Tasks        []*groupware.Task
	Results      []*groupware.ImportResult
}

// ICal imports the events and todos of one iCalendar stream into folderID.
// Floating and date-less times are read in loc.
func (im *Importer) ICal(r io.Reader, folderID int, loc *time.Location) (*Calendar, error) {
	if loc == nil {
		loc = time.UTC
	}
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}

	out := &Calendar{}
	masters := map[string]*groupware.Appointment{}
	pos := 0
	for _, comp := range cal.Children {
		switch comp.Name {
		case ical.CompTimezone:
			continue
		case ical.CompEvent:
			pos++
			a, err := im.appointment(comp, folderID, loc)
			if err != nil {
				im.logger.Warn().Err(err).Int("position", pos).Msg("skipping event")
				out.Results = append(out.Results, failed(folderID, pos, codeOf(err), err))
				continue
			}
			uid := a.UID.Value()
			if rid, ok := a.RecurrenceDatePosition.Get(); ok {
				if m, ok := masters[uid]; ok {
					m.ChangeExceptions.Set(append(m.ChangeExceptions.Value(), rid))
				}
			} else {
				masters[uid] = a
			}
			out.Appointments = append(out.Appointments, a)
			out.Results = append(out.Results, succeeded(folderID, uid, a.LastModified.OrElse(im.now())))
		case ical.CompToDo:
			pos++
			t, err := im.task(comp, folderID, loc)
			if err != nil {
				im.logger.Warn().Err(err).Int("position", pos).Msg("skipping todo")
				out.Results = append(out.Results, failed(folderID, pos, codeOf(err), err))
				continue
			}
			out.Tasks = append(out.Tasks, t)
			out.Results = append(out.Results, succeeded(folderID, t.UID.Value(), t.LastModified.OrElse(im.now())))
		default:
			pos++
			err := fmt.Errorf("%w: %s", groupware.ErrUnsupportedComponent, comp.Name)
			out.Results = append(out.Results, failed(folderID, pos, groupware.CodeUnsupported, err))
		}
	}
	return out, nil
}

type parseError struct{ err error }

func (e *parseError) Error() string { return e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

func codeOf(err error) string {
	var pe *parseError
	switch {
	case errors.Is(err, groupware.ErrMissingContent):
		return groupware.CodeMissingContent
	case errors.Is(err, recurrence.ErrUnsupported):
		return groupware.CodeRecurrence
	case errors.As(err, &pe):
		return groupware.CodeParseFailed
	}
	return groupware.CodeImportFailed
}

func (im *Importer) appointment(comp *ical.Component, folderID int, loc *time.Location) (*groupware.Appointment, error) {
	a := &groupware.Appointment{}
	start, allDay, tz, err := dateProp(comp, ical.PropDateTimeStart, loc)
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, fmt.Errorf("%w: DTSTART", groupware.ErrMissingContent)
	}
	end, _, _, err := dateProp(comp, ical.PropDateTimeEnd, loc)
	if err != nil {
		return nil, err
	}
	if end.IsZero() {
		end = start
		if p := comp.Props.Get(ical.PropDuration); p != nil {
			d, err := duration(p)
			if err != nil {
				return nil, &parseError{fmt.Errorf("DURATION: %w", err)}
			}
			end = start.Add(d)
		} else if allDay {
			end = start.AddDate(0, 0, 1)
		}
	}

	a.StartDate.Set(start)
	a.EndDate.Set(end)
	a.FullTime.Set(allDay)
	switch {
	case allDay:
		a.Timezone.Set("UTC")
	case tz != "":
		a.Timezone.Set(tz)
	default:
		a.Timezone.Set(loc.String())
	}

	if err := im.calendarObject(comp, &a.CalendarObject, folderID, start, loc); err != nil {
		return nil, err
	}
	if s := text(comp, ical.PropLocation); s != "" {
		a.Location.Set(s)
	}

	shownAs := groupware.Reserved
	switch {
	case strings.EqualFold(value(comp, ical.PropTransparency), "TRANSPARENT"):
		shownAs = groupware.Free
	case strings.EqualFold(value(comp, ical.PropStatus), "TENTATIVE"):
		shownAs = groupware.Temporary
	}
	a.ShownAs.Set(shownAs)

	if trigger, ok, err := alarm(comp, start, loc); err != nil {
		return nil, err
	} else if ok {
		a.Alarm.Set(int(start.Sub(trigger) / time.Minute))
	}
	return a, nil
}

func (im *Importer) task(comp *ical.Component, folderID int, loc *time.Location) (*groupware.Task, error) {
	t := &groupware.Task{}
	start, _, _, err := dateProp(comp, ical.PropDateTimeStart, loc)
	if err != nil {
		return nil, err
	}
	due, _, _, err := dateProp(comp, ical.PropDue, loc)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() {
		t.StartDate.Set(start)
	}
	if !due.IsZero() {
		t.EndDate.Set(due)
	}
	ref := start
	if ref.IsZero() {
		ref = due
	}
	if err := im.calendarObject(comp, &t.CalendarObject, folderID, ref, loc); err != nil {
		return nil, err
	}

	completed, _, _, err := dateProp(comp, ical.PropCompleted, time.UTC)
	if err != nil {
		return nil, err
	}
	if !completed.IsZero() {
		t.DateCompleted.Set(completed)
	}
	if v := value(comp, ical.PropPercentComplete); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &parseError{fmt.Errorf("PERCENT-COMPLETE: %w", err)}
		}
		t.PercentComplete.Set(n)
	}
	switch strings.ToUpper(value(comp, ical.PropStatus)) {
	case "NEEDS-ACTION":
		t.Status.Set(groupware.TaskNotStarted)
	case "IN-PROCESS":
		t.Status.Set(groupware.TaskInProgress)
	case "COMPLETED":
		t.Status.Set(groupware.TaskDone)
	case "CANCELLED":
		t.Status.Set(groupware.TaskDeferred)
	}
	if v := value(comp, ical.PropPriority); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &parseError{fmt.Errorf("PRIORITY: %w", err)}
		}
		switch {
		case n >= 1 && n <= 4:
			t.Priority.Set(groupware.PriorityHigh)
		case n == 5:
			t.Priority.Set(groupware.PriorityNormal)
		case n >= 6:
			t.Priority.Set(groupware.PriorityLow)
		}
	}

	alarmRef := due
	if alarmRef.IsZero() {
		alarmRef = start
	}
	if trigger, ok, err := alarm(comp, alarmRef, loc); err != nil {
		return nil, err
	} else if ok {
		t.Alarm.Set(trigger)
	}
	return t, nil
}

// calendarObject fills what events and todos share. start is the series
// start used to complete the recurrence rule.
func (im *Importer) calendarObject(comp *ical.Component, c *groupware.CalendarObject, folderID int, start time.Time, loc *time.Location) error {
	c.ParentFolderID.Set(folderID)

	uid := value(comp, ical.PropUID)
	if uid == "" {
		uid = uuid.NewString()
	}
	c.UID.Set(uid)

	if s := text(comp, ical.PropSummary); s != "" {
		c.Title.Set(s)
	}
	if s := text(comp, ical.PropDescription); s != "" {
		c.Note.Set(s)
	}

	var categories []string
	for _, p := range comp.Props[ical.PropCategories] {
		for _, cat := range strings.Split(p.Value, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}
	}
	if len(categories) > 0 {
		c.Categories.Set(strings.Join(categories, ","))
	}

	switch strings.ToUpper(value(comp, ical.PropClass)) {
	case "PRIVATE", "CONFIDENTIAL":
		c.PrivateFlag.Set(true)
	case "PUBLIC":
		c.PrivateFlag.Set(false)
	}

	if v := value(comp, ical.PropSequence); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &parseError{fmt.Errorf("SEQUENCE: %w", err)}
		}
		c.Sequence.Set(n)
	}

	for _, name := range []string{ical.PropCreated, ical.PropLastModified, ical.PropDateTimeStamp} {
		t, _, _, err := dateProp(comp, name, time.UTC)
		if err != nil {
			return err
		}
		if t.IsZero() {
			continue
		}
		if name == ical.PropCreated {
			c.CreationDate.Set(t)
		} else if !c.LastModified.IsSet() {
			c.LastModified.Set(t)
		}
	}

	if p := comp.Props.Get(ical.PropOrganizer); p != nil {
		c.Organizer.Set(mailto(p.Value))
	}
	for _, p := range comp.Props[ical.PropAttendee] {
		email := mailto(p.Value)
		if email == "" {
			continue
		}
		name := p.Params.Get(ical.ParamCommonName)
		status := partStat(p.Params.Get(ical.ParamParticipationStatus))
		c.AddParticipant(groupware.Participant{
			ID:           groupware.NoID,
			Type:         groupware.ParticipantExternalUser,
			EmailAddress: email,
			DisplayName:  name,
			Confirm:      status,
		})
		c.AddConfirmation(groupware.ConfirmableParticipant{
			Type:         groupware.ParticipantExternalUser,
			EmailAddress: email,
			DisplayName:  name,
			Status:       status,
		})
	}

	if p := comp.Props.Get(ical.PropRecurrenceID); p != nil {
		rid, _, _, err := dateProp(comp, ical.PropRecurrenceID, loc)
		if err != nil {
			return err
		}
		c.RecurrenceDatePosition.Set(rid)
	}

	if p := comp.Props.Get(ical.PropRecurrenceRule); p != nil {
		opt, err := recurrence.ParseRule(p.Value)
		if err != nil {
			return fmt.Errorf("%w: %w", recurrence.ErrUnsupported, err)
		}
		if err := recurrence.Apply(c, opt, start); err != nil {
			return err
		}
	}

	var exdates []time.Time
	for _, p := range comp.Props[ical.PropExceptionDates] {
		for _, v := range strings.Split(p.Value, ",") {
			t, err := parseDate(v, p.Params, loc)
			if err != nil {
				return &parseError{fmt.Errorf("EXDATE: %w", err)}
			}
			exdates = append(exdates, t)
		}
	}
	if len(exdates) > 0 {
		c.DeleteExceptions.Set(exdates)
	}
	return nil
}

func partStat(s string) int {
	switch strings.ToUpper(s) {
	case "ACCEPTED":
		return groupware.ConfirmAccept
	case "DECLINED":
		return groupware.ConfirmDecline
	case "TENTATIVE":
		return groupware.ConfirmTentative
	}
	return groupware.ConfirmNone
}

// alarm returns the trigger time of the first VALARM, relative triggers
// counted from ref.
func alarm(comp *ical.Component, ref time.Time, loc *time.Location) (time.Time, bool, error) {
	for _, child := range comp.Children {
		if child.Name != ical.CompAlarm {
			continue
		}
		p := child.Props.Get(ical.PropTrigger)
		if p == nil {
			continue
		}
		if strings.EqualFold(p.Params.Get(ical.ParamValue), "DATE-TIME") {
			t, err := parseDate(p.Value, p.Params, loc)
			if err != nil {
				return time.Time{}, false, &parseError{fmt.Errorf("TRIGGER: %w", err)}
			}
			return t, true, nil
		}
		if ref.IsZero() {
			continue
		}
		d, err := duration(p)
		if err != nil {
			return time.Time{}, false, &parseError{fmt.Errorf("TRIGGER: %w", err)}
		}
		return ref.Add(d), true, nil
	}
	return time.Time{}, false, nil
}

// duration reads a DURATION valued property. go-ical accepts a bare "P" as
// zero, which RFC 5545 does not allow.
func duration(p *ical.Prop) (time.Duration, error) {
	d, err := p.Duration()
	if err != nil {
		return 0, err
	}
	if strings.TrimLeft(strings.TrimSpace(p.Value), "+-") == "P" {
		return 0, fmt.Errorf("invalid duration %q", p.Value)
	}
	return d, nil
}

// dateProp parses a date or date-time property. A missing property yields the
// zero time. Dates without a time are all day and read as UTC midnight.
func dateProp(comp *ical.Component, name string, loc *time.Location) (t time.Time, allDay bool, tzid string, err error) {
	p := comp.Props.Get(name)
	if p == nil {
		return time.Time{}, false, "", nil
	}
	t, err = parseDate(p.Value, p.Params, loc)
	if err != nil {
		return time.Time{}, false, "", &parseError{fmt.Errorf("%s: %w", name, err)}
	}
	return t, isDate(p.Value, p.Params), p.Params.Get(ical.ParamTimezoneID), nil
}

func isDate(v string, params ical.Params) bool {
	return strings.EqualFold(params.Get(ical.ParamValue), "DATE") || len(strings.TrimSpace(v)) == 8
}

func parseDate(v string, params ical.Params, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if isDate(v, params) {
		return time.ParseInLocation("20060102", v, time.UTC)
	}
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if tzid := params.Get(ical.ParamTimezoneID); tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}
	return time.ParseInLocation("20060102T150405", v, loc)
}

func value(comp *ical.Component, name string) string {
	if p := comp.Props.Get(name); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}

func text(comp *ical.Component, name string) string {
	p := comp.Props.Get(name)
	if p == nil {
		return ""
	}
	s, err := p.Text()
	if err != nil {
		return p.Value
	}
	return s
}

func mailto(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 7 && strings.EqualFold(v[:7], "mailto:") {
		v = v[7:]
	}
	return v
}
