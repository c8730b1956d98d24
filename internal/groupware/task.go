package groupware

import (
	"time"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Task states.
const (
	TaskNotStarted = 1
	TaskInProgress = 2
	TaskDone       = 3
	TaskWaiting    = 4
	TaskDeferred   = 5
)

// Task priorities.
const (
	PriorityLow    = 1
	PriorityNormal = 2
	PriorityHigh   = 3
)

type Task struct {
	CalendarObject

	Status             optional.Field[int]
	PercentComplete    optional.Field[int]
	ActualCosts        optional.Field[float64]
	ActualDuration     optional.Field[int64]
	BillingInformation optional.Field[string]
	TargetCosts        optional.Field[float64]
	TargetDuration     optional.Field[int64]
	Priority           optional.Field[int]
	Currency           optional.Field[string]
	TripMeter          optional.Field[string]
	Companies          optional.Field[string]
	DateCompleted      optional.Field[time.Time]
	Alarm              optional.Field[time.Time]
}
