package writer

import (
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Task start and end are dates without a time of day and are never
// shifted.
var Tasks = NewTable("task",
	lift(calendarColumns, func(t *groupware.Task) *groupware.CalendarObject { return &t.CalendarObject }),
	[]Column[*groupware.Task]{
		rawDateColumn(fields.StartDate, func(t *groupware.Task) optional.Field[time.Time] { return t.StartDate }),
		rawDateColumn(fields.EndDate, func(t *groupware.Task) optional.Field[time.Time] { return t.EndDate }),
		primitiveColumn(fields.Status, func(t *groupware.Task) optional.Field[int] { return t.Status }),
		primitiveColumn(fields.PercentCompleted, func(t *groupware.Task) optional.Field[int] { return t.PercentComplete }),
		primitiveColumn(fields.ActualCosts, func(t *groupware.Task) optional.Field[float64] { return t.ActualCosts }),
		primitiveColumn(fields.ActualDuration, func(t *groupware.Task) optional.Field[int64] { return t.ActualDuration }),
		stringColumn(fields.BillingInformation, func(t *groupware.Task) optional.Field[string] { return t.BillingInformation }),
		primitiveColumn(fields.TargetCosts, func(t *groupware.Task) optional.Field[float64] { return t.TargetCosts }),
		primitiveColumn(fields.TargetDuration, func(t *groupware.Task) optional.Field[int64] { return t.TargetDuration }),
		primitiveColumn(fields.Priority, func(t *groupware.Task) optional.Field[int] { return t.Priority }),
		stringColumn(fields.Currency, func(t *groupware.Task) optional.Field[string] { return t.Currency }),
		stringColumn(fields.TripMeter, func(t *groupware.Task) optional.Field[string] { return t.TripMeter }),
		stringColumn(fields.Companies, func(t *groupware.Task) optional.Field[string] { return t.Companies }),
		localDateColumn(fields.DateCompleted, func(t *groupware.Task) optional.Field[time.Time] { return t.DateCompleted }),
		localDateColumn(fields.Alarm, func(t *groupware.Task) optional.Field[time.Time] { return t.Alarm }),
	},
)

type TaskWriter = Writer[*groupware.Task]

func NewTaskWriter(env *Env) *TaskWriter {
	return NewWriter(Tasks, env)
}
