package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
)

const maxSleepCap = 60 * time.Second

// Scheduler holds reminders in a min-heap and calls onTrigger from its own
// goroutine as each one comes due.
type Scheduler struct {
	addChan    chan ScheduleEvent
	removeChan chan string
	ctx        context.Context
}

// New starts a Scheduler that runs until ctx is cancelled. onTrigger is
// called serially, once per firing.
func New(ctx context.Context, onTrigger func(ScheduleEvent)) *Scheduler {
	s := &Scheduler{
		addChan:    make(chan ScheduleEvent, 64),
		removeChan: make(chan string, 64),
		ctx:        ctx,
	}
	go s.run(onTrigger)
	return s
}

// Add queues event. A TriggerAt in the past fires on the next loop turn.
func (s *Scheduler) Add(event ScheduleEvent) {
	select {
	case s.addChan <- event:
	case <-s.ctx.Done():
	}
}

// Remove drops the pending event with id, if any.
func (s *Scheduler) Remove(id string) {
	select {
	case s.removeChan <- id:
	case <-s.ctx.Done():
	}
}

// run owns the heap. Recurring events are pushed back with their next cron
// occurrence after firing.
func (s *Scheduler) run(onTrigger func(ScheduleEvent)) {
	h := &scheduleHeap{}
	heap.Init(h)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			return nil
		}
		dur := time.Until((*h)[0].TriggerAt)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event := <-s.addChan:
			heapPush(h, event)
			timerCh = resetTimer()

		case id := <-s.removeChan:
			heapRemoveByID(h, id)
			timerCh = resetTimer()

		case <-timerCh:
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].TriggerAt.After(now) {
				event := heapPop(h)
				onTrigger(event)
				if !event.Recurring() {
					continue
				}
				if next, err := NextOccurrence(event.CronExpr, time.Now()); err == nil {
					event.TriggerAt = next
					heapPush(h, event)
				}
			}
			timerCh = resetTimer()
		}
	}
}

// NextOccurrence returns the first time expr fires strictly after start.
func NextOccurrence(expr string, start time.Time) (time.Time, error) {
	return gronx.NextTickAfter(expr, start, false)
}

// ValidateCron checks that expr parses and fires at least once in the year
// after from.
func ValidateCron(expr string, from time.Time) error {
	if !gronx.New().IsValid(expr) {
		return fmt.Errorf("invalid cron expression %q", expr)
	}
	if !hasOccurrenceWithinYear(expr, from) {
		return fmt.Errorf("cron expression %q does not fire within a year", expr)
	}
	return nil
}

func hasOccurrenceWithinYear(expr string, from time.Time) bool {
	next, err := gronx.NextTickAfter(expr, from, false)
	if err != nil {
		return false
	}
	return next.Before(from.Add(365 * 24 * time.Hour))
}
