// Package scheduler fires in-process reminders for "nudge watch". It runs
// a single goroutine over a min-heap of ScheduleEvents ordered by trigger
// time. Sleeps are capped at 60 seconds so NTP steps, DST changes and
// system sleep are noticed promptly.
//
// Nothing is persisted: events live only as long as the process.
package scheduler
