package scheduler

import "time"

// ScheduleEvent is a pending reminder in the scheduler heap.
type ScheduleEvent struct {
	// ID identifies the event for Remove.
	ID string
	// Task is the text shown when the event fires.
	Task string
	// TriggerAt is the wall-clock time the event fires.
	TriggerAt time.Time
	// CronExpr makes the event recurring. Empty means one-shot.
	CronExpr string
}

// Recurring reports whether the event is re-armed after firing.
func (e ScheduleEvent) Recurring() bool {
	return e.CronExpr != ""
}
