package writer

import (
	"bytes"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

const hour = int64(time.Hour / time.Millisecond)

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	return loc
}

func testEnv(t *testing.T, opts Options) (*Env, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewEnv(berlin(t), zerolog.New(&logs), opts), &logs
}

func objectJSON[T any](t *testing.T, w *Writer[T], obj T) string {
	t.Helper()
	var buf bytes.Buffer
	jw := jsonw.New(&buf)
	require.NoError(t, w.WriteObject(jw, obj))
	require.NoError(t, jw.Close())
	return buf.String()
}

func arrayJSON[T any](t *testing.T, w *Writer[T], obj T, cols ...int) string {
	t.Helper()
	var buf bytes.Buffer
	jw := jsonw.New(&buf)
	require.NoError(t, w.WriteArray(jw, obj, cols))
	require.NoError(t, jw.Close())
	return buf.String()
}

func TestRecurrence(t *testing.T) {
	env, _ := testEnv(t, Options{})
	w := NewAppointmentWriter(env)

	tests := []struct {
		name  string
		typ   int
		days  int
		dim   int
		month int
		want  string
	}{
		{"daily", groupware.Daily, groupware.Monday, 5, 2, `{"recurrence_type":1,"interval":1}`},
		{"weekly", groupware.Weekly, groupware.Monday | groupware.Friday, 5, 2, `{"recurrence_type":2,"days":34,"interval":1}`},
		{"monthly last", groupware.Monthly, groupware.Friday, 5, 2, `{"recurrence_type":3,"days":32,"day_in_month":-1,"interval":1}`},
		{"monthly second", groupware.Monthly, groupware.Friday, 2, 2, `{"recurrence_type":3,"days":32,"day_in_month":2,"interval":1}`},
		{"yearly", groupware.Yearly, groupware.Friday, 5, 2, `{"recurrence_type":4,"days":32,"day_in_month":5,"month":2,"interval":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &groupware.Appointment{}
			a.RecurrenceType.Set(tt.typ)
			a.Days.Set(tt.days)
			a.DayInMonth.Set(tt.dim)
			a.Month.Set(tt.month)
			a.Interval.Set(1)
			assert.JSONEq(t, tt.want, objectJSON(t, w, a))
		})
	}
}

func TestMonthlyWithoutDays(t *testing.T) {
	env, _ := testEnv(t, Options{})
	a := &groupware.Appointment{}
	a.RecurrenceType.Set(groupware.Monthly)
	a.DayInMonth.Set(5)
	got := arrayJSON(t, NewAppointmentWriter(env), a, fields.RecurrenceType.ID, fields.DayInMonth.ID, fields.Month.ID)
	assert.Equal(t, `[3,-1,0]`, got)
}

func TestUnknownRecurrence(t *testing.T) {
	env, _ := testEnv(t, Options{SkipUnknown: true})
	w := NewTaskWriter(env)
	task := &groupware.Task{}
	task.RecurrenceType.Set(9)

	err := w.WriteObject(jsonw.New(&bytes.Buffer{}), task)
	require.ErrorIs(t, err, ErrUnknownRecurrence)

	err = w.WriteArray(jsonw.New(&bytes.Buffer{}), task, []int{fields.Days.ID})
	require.ErrorIs(t, err, ErrUnknownRecurrence)

	assert.Equal(t, `[0]`, arrayJSON(t, w, task, fields.ObjectID.ID))
}

func TestAppointmentDates(t *testing.T) {
	env, _ := testEnv(t, Options{})
	w := NewAppointmentWriter(env)
	start := time.Date(2024, 3, 30, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	cols := []int{fields.StartDate.ID, fields.EndDate.ID}

	t.Run("full time is raw", func(t *testing.T) {
		a := &groupware.Appointment{}
		a.StartDate.Set(start)
		a.EndDate.Set(end)
		a.FullTime.Set(true)
		got := arrayJSON(t, w, a, cols...)
		assert.JSONEq(t, jsonArray(start.UnixMilli(), end.UnixMilli()), got)
	})

	t.Run("offset at start", func(t *testing.T) {
		a := &groupware.Appointment{}
		a.StartDate.Set(start)
		a.EndDate.Set(end)
		// Berlin is on CET at the start and CEST at the end.
		got := arrayJSON(t, w, a, cols...)
		assert.JSONEq(t, jsonArray(start.UnixMilli()+hour, end.UnixMilli()+hour), got)
	})

	t.Run("summer", func(t *testing.T) {
		a := &groupware.Appointment{}
		summer := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
		a.StartDate.Set(summer)
		got := arrayJSON(t, w, a, fields.StartDate.ID)
		assert.JSONEq(t, jsonArray(summer.UnixMilli()+2*hour), got)
	})

	t.Run("occurrence uses series start", func(t *testing.T) {
		a := &groupware.Appointment{}
		occurrence := time.Date(2024, 7, 8, 9, 0, 0, 0, time.UTC)
		a.StartDate.Set(occurrence)
		a.RecurrenceType.Set(groupware.Weekly)
		a.RecurrenceMasterStart.Set(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
		got := arrayJSON(t, w, a, fields.StartDate.ID)
		assert.JSONEq(t, jsonArray(occurrence.UnixMilli()+hour), got)
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, `[null,null]`, arrayJSON(t, w, &groupware.Appointment{}, cols...))
	})
}

func jsonArray(ms ...int64) string {
	var buf bytes.Buffer
	jw := jsonw.New(&buf)
	jw.Array()
	for _, m := range ms {
		jw.Value(m)
	}
	jw.EndArray()
	return buf.String()
}

func TestTaskDates(t *testing.T) {
	env, _ := testEnv(t, Options{})
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2024, 7, 3, 15, 0, 0, 0, time.UTC)
	task := &groupware.Task{}
	task.StartDate.Set(start)
	task.DateCompleted.Set(done)
	task.Alarm.Set(done)
	task.Status.Set(groupware.TaskDone)
	task.PercentComplete.Set(100)

	got := objectJSON(t, NewTaskWriter(env), task)
	assert.JSONEq(t, `{
		"start_date": `+jsonValue(start.UnixMilli())+`,
		"date_completed": `+jsonValue(done.UnixMilli()+2*hour)+`,
		"alarm": `+jsonValue(done.UnixMilli()+2*hour)+`,
		"status": 3,
		"percent_completed": 100
	}`, got)
}

func jsonValue(ms int64) string {
	s := jsonArray(ms)
	return s[1 : len(s)-1]
}

func TestArrayPrimitivesAndNulls(t *testing.T) {
	env, _ := testEnv(t, Options{})
	got := arrayJSON(t, NewAppointmentWriter(env), &groupware.Appointment{},
		fields.ObjectID.ID, fields.Title.ID, fields.FullTime.ID, fields.Participants.ID, fields.PrivateFlag.ID)
	assert.Equal(t, `[0,null,false,null,false]`, got)
	assert.Equal(t, `{}`, objectJSON(t, NewAppointmentWriter(env), &groupware.Appointment{}))
}

func TestCommonColumns(t *testing.T) {
	env, _ := testEnv(t, Options{})
	mod := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	a := &groupware.Appointment{}
	a.ObjectID.Set(12)
	a.ParentFolderID.Set(34)
	a.LastModified.Set(mod)
	a.Categories.Set("")
	a.Title.Set("Review")
	a.Location.Set("Room 1")

	got := objectJSON(t, NewAppointmentWriter(env), a)
	assert.JSONEq(t, `{
		"id": 12,
		"folder_id": 34,
		"last_modified": `+jsonValue(mod.UnixMilli()+hour)+`,
		"last_modified_utc": `+jsonValue(mod.UnixMilli())+`,
		"title": "Review",
		"location": "Room 1"
	}`, got)
}

func TestParticipants(t *testing.T) {
	env, _ := testEnv(t, Options{})
	a := &groupware.Appointment{}
	a.AddParticipant(groupware.Participant{ID: 7, Type: groupware.ParticipantUser, Confirm: groupware.ConfirmAccept})
	a.AddParticipant(groupware.Participant{ID: groupware.NoID, Type: groupware.ParticipantExternalUser, EmailAddress: "ext@example.com", DisplayName: "Ext"})
	a.Users.Set([]groupware.UserParticipant{{ID: 7, Confirm: groupware.ConfirmTentative, ConfirmMessage: "maybe"}})
	a.AddConfirmation(groupware.ConfirmableParticipant{Type: groupware.ParticipantExternalUser, EmailAddress: "ext@example.com", Status: groupware.ConfirmDecline})

	got := objectJSON(t, NewAppointmentWriter(env), a)
	assert.JSONEq(t, `{
		"participants": [
			{"id": 7, "type": 1, "confirmation": 1},
			{"type": 5, "mail": "ext@example.com", "display_name": "Ext"}
		],
		"users": [{"id": 7, "confirmation": 3, "confirmmessage": "maybe"}],
		"confirmations": [{"type": 5, "mail": "ext@example.com", "status": 2}]
	}`, got)
}

func TestExceptions(t *testing.T) {
	env, _ := testEnv(t, Options{})
	ex := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	a := &groupware.Appointment{}
	a.DeleteExceptions.Set([]time.Time{ex})
	a.ChangeExceptions.Set(nil)
	got := objectJSON(t, NewAppointmentWriter(env), a)
	assert.JSONEq(t, `{"change_exceptions": [], "delete_exceptions": [1714521600000]}`, got)
}

func TestContactEmail2(t *testing.T) {
	env, _ := testEnv(t, Options{})
	w := NewContactWriter(env)

	c := &groupware.Contact{}
	c.DisplayName.Set("Ann")
	assert.NotContains(t, objectJSON(t, w, c), "email2")

	c.Email2.Set("")
	assert.NotContains(t, objectJSON(t, w, c), "email2")
	assert.Equal(t, `[null]`, arrayJSON(t, w, c, fields.Email2.ID))

	c.Email2.Set("a@b.com")
	assert.Contains(t, objectJSON(t, w, c), `"email2":"a@b.com"`)
	assert.Equal(t, `["a@b.com"]`, arrayJSON(t, w, c, fields.Email2.ID))
}

func TestContactDetails(t *testing.T) {
	env, _ := testEnv(t, Options{})
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	c := &groupware.Contact{}
	c.ObjectID.Set(3)
	c.ParentFolderID.Set(30)
	c.Birthday.Set(birthday)
	c.Userfields[1].Set("blue")
	c.NumberOfImages.Set(1)
	c.SetDistributionList([]groupware.DistributionListEntry{
		{DisplayName: "Ann", EmailAddress: "ann@example.com", EmailField: groupware.EmailFieldIndependent},
	})

	got := objectJSON(t, NewContactWriter(env), c)
	assert.JSONEq(t, `{
		"id": 3,
		"folder_id": 30,
		"birthday": `+jsonValue(birthday.UnixMilli())+`,
		"number_of_images": 1,
		"mark_as_distributionlist": true,
		"distribution_list": [{"display_name": "Ann", "mail": "ann@example.com", "mail_field": 0}],
		"number_of_distribution_list": 1,
		"image1_url": "/ajax/image/contact/picture?folder=30&id=3",
		"userfield02": "blue"
	}`, got)
}

func TestUnknownColumn(t *testing.T) {
	c := &groupware.Contact{}
	c.Email1.Set("a@b.com")

	t.Run("fail", func(t *testing.T) {
		env, _ := testEnv(t, Options{})
		err := NewContactWriter(env).WriteArray(jsonw.New(&bytes.Buffer{}), c, []int{fields.Email1.ID, 9999})
		require.ErrorIs(t, err, ErrUnknownField)
		var ufe *UnknownFieldError
		require.True(t, errors.As(err, &ufe))
		assert.Equal(t, "contact", ufe.Entity)
		assert.Equal(t, 9999, ufe.Column)
	})

	t.Run("skip", func(t *testing.T) {
		env, logs := testEnv(t, Options{SkipUnknown: true})
		got := arrayJSON(t, NewContactWriter(env), c, fields.Email1.ID, 9999, fields.Email2.ID)
		assert.Equal(t, `["a@b.com",null,null]`, got)
		assert.Contains(t, logs.String(), "skipping unknown column")
		assert.Contains(t, logs.String(), `"column":9999`)
	})
}

func TestPermissionBits(t *testing.T) {
	tests := []struct {
		name           string
		fp, rp, wp, dp int
		admin          bool
		bits           int
	}{
		{"admin folder read own", groupware.AdminPermission, groupware.ReadOwnObjects, groupware.NoPermissions, groupware.NoPermissions, false, 192},
		{"nothing", 0, 0, 0, 0, false, 0},
		{"own objects", groupware.ReadFolder, groupware.ReadOwnObjects, groupware.WriteOwnObjects, groupware.DeleteOwnObjects, false, 1 | 1<<7 | 1<<14 | 1<<21},
		{"folder admin", groupware.CreateSubFolders, groupware.ReadAllObjects, groupware.WriteAllObjects, groupware.DeleteAllObjects, true, 272662788},
		{"all max", 128, 128, 128, 128, false, 64 | 64<<7 | 64<<14 | 64<<21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, err := CreatePermissionBits(tt.fp, tt.rp, tt.wp, tt.dp, tt.admin)
			require.NoError(t, err)
			assert.Equal(t, tt.bits, bits)

			fp, rp, wp, dp, admin, err := ParsePermissionBits(bits)
			require.NoError(t, err)
			assert.Equal(t, []int{tt.fp, tt.rp, tt.wp, tt.dp}, []int{fp, rp, wp, dp})
			assert.Equal(t, tt.admin, admin)
		})
	}

	_, err := CreatePermissionBits(3, 0, 0, 0, false)
	assert.ErrorIs(t, err, ErrInvalidPermission)
	_, err = CreatePermissionBits(0, 0, 0, 9, false)
	assert.ErrorIs(t, err, ErrInvalidPermission)
	_, err = CreatePermissionBits(-1, 0, 0, 0, false)
	assert.ErrorIs(t, err, ErrInvalidPermission)

	_, _, _, _, _, err = ParsePermissionBits(3)
	assert.ErrorIs(t, err, ErrInvalidPermission)
}

func TestFolder(t *testing.T) {
	env, _ := testEnv(t, Options{})
	f := &groupware.Folder{}
	f.ID.Set("25")
	f.ParentID.Set("1")
	f.Title.Set("Calendar")
	f.Module.Set(groupware.ModuleCalendar)
	f.Type.Set(groupware.FolderPrivate)
	f.OwnRights.Set(groupware.Permission{Entity: 5, FolderPermission: groupware.AdminPermission, ReadPermission: groupware.ReadOwnObjects, FolderAdmin: true})
	f.AddPermission(groupware.Permission{Entity: 5, FolderPermission: groupware.AdminPermission, ReadPermission: groupware.ReadOwnObjects, FolderAdmin: true})
	f.AddPermission(groupware.Permission{Entity: 0, Group: true, FolderPermission: groupware.ReadFolder})

	w := NewFolderWriter(env)
	assert.JSONEq(t, `{
		"id": "25",
		"folder_id": "1",
		"title": "Calendar",
		"module": "calendar",
		"type": 1,
		"own_rights": 268435648,
		"permissions": [
			{"bits": 268435648, "entity": 5, "group": false},
			{"bits": 1, "entity": 0, "group": true}
		]
	}`, objectJSON(t, w, f))
	assert.Equal(t, `["25","Calendar",268435648]`, arrayJSON(t, w, f, fields.ObjectID.ID, fields.FolderTitle.ID, fields.FolderOwnRights.ID))

	f.AddPermission(groupware.Permission{Entity: 9, ReadPermission: 5})
	err := w.WriteObject(jsonw.New(&bytes.Buffer{}), f)
	assert.ErrorIs(t, err, ErrInvalidPermission)
}

func TestMail(t *testing.T) {
	env, _ := testEnv(t, Options{})
	sent := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	m := &groupware.MailMessage{}
	m.ID.Set("42")
	m.FolderID.Set("default0/INBOX")
	m.From.Set([]*mail.Address{{Address: "a@example.com"}})
	m.To.Set([]*mail.Address{{Name: "Bob", Address: "bob@example.com"}, nil})
	m.Subject.Set("Hi")
	m.Size.Set(1024)
	m.SentDate.Set(sent)
	m.Flags.Set(groupware.FlagSeen | groupware.FlagUser)
	m.UserFlags.Set([]string{"$Label1"})
	m.Headers.Set(map[string][]string{"X-Mailer": {"test"}})

	got := objectJSON(t, NewMailWriter(env), m)
	assert.JSONEq(t, `{
		"id": "42",
		"folder_id": "default0/INBOX",
		"from": [[null, "a@example.com"]],
		"to": [["Bob", "bob@example.com"]],
		"subject": "Hi",
		"size": 1024,
		"sent_date": `+jsonValue(sent.UnixMilli()+hour)+`,
		"flags": 96,
		"seen": true,
		"user": ["$Label1"],
		"headers": {"X-Mailer": ["test"]}
	}`, got)

	got = arrayJSON(t, NewMailWriter(env), &groupware.MailMessage{}, fields.MailID.ID, fields.MailFlagSeen.ID, fields.MailCc.ID)
	assert.Equal(t, `[null,false,null]`, got)
}

func TestInfostore(t *testing.T) {
	env, _ := testEnv(t, Options{})
	locked := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	d := &groupware.DocumentMetadata{}
	d.ObjectID.Set(8)
	d.Title.Set("Quarterly report")
	d.FileName.Set("report.pdf")
	d.FileSize.Set(2048)
	d.LockedUntil.Set(locked)
	d.IsCurrentVersion.Set(true)

	got := objectJSON(t, NewInfostoreWriter(env), d)
	assert.JSONEq(t, `{
		"id": 8,
		"title": "Quarterly report",
		"filename": "report.pdf",
		"file_size": 2048,
		"locked_until": `+jsonValue(locked.UnixMilli())+`,
		"current_version": true
	}`, got)
}

func TestImportExport(t *testing.T) {
	env, _ := testEnv(t, Options{})
	mod := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	results := []*groupware.ImportResult{
		{ObjectID: "uid-1", FolderID: "10", LastModified: mod},
		{FolderID: "10", Err: &groupware.ImportError{Code: groupware.CodeParseFailed, Line: 3, Err: errors.New("bad DTSTART")}},
	}

	var buf bytes.Buffer
	jw := jsonw.New(&buf)
	require.NoError(t, NewImportExportWriter(env).WriteResults(jw, results))
	require.NoError(t, jw.Close())
	assert.JSONEq(t, `[
		{"id": "uid-1", "folder_id": "10", "last_modified": `+jsonValue(mod.UnixMilli()+hour)+`},
		{"folder_id": "10", "error": "IMP-0002: bad DTSTART", "code": "IMP-0002", "line": 3}
	]`, buf.String())
}

func TestWriteList(t *testing.T) {
	env, _ := testEnv(t, Options{})
	a1 := &groupware.Appointment{}
	a1.ObjectID.Set(1)
	a1.Title.Set("one")
	a2 := &groupware.Appointment{}
	a2.ObjectID.Set(2)

	var buf bytes.Buffer
	jw := jsonw.New(&buf)
	w := NewAppointmentWriter(env)
	require.NoError(t, w.WriteList(jw, []*groupware.Appointment{a1, a2}, []int{fields.ObjectID.ID, fields.Title.ID}))
	assert.Equal(t, `[[1,"one"],[2,null]]`, buf.String())

	buf.Reset()
	jw = jsonw.New(&buf)
	require.NoError(t, w.WriteObjects(jw, []*groupware.Appointment{a1, a2}))
	assert.JSONEq(t, `[{"id":1,"title":"one"},{"id":2}]`, buf.String())
}

func TestTableIDs(t *testing.T) {
	ids := Folders.IDs()
	assert.Equal(t, fields.ObjectID.ID, ids[0])
	col, ok := Folders.Column(fields.ObjectID.ID)
	require.True(t, ok)
	assert.False(t, col.Primitive)
	assert.Equal(t, "folder", Folders.Entity())
}
