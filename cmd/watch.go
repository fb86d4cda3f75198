package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	cmdCommon "github.com/nudgecli/nudge/cmd/common"
	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/notify"
	"github.com/nudgecli/nudge/internal/osched"
	"github.com/nudgecli/nudge/internal/reminder"
	"github.com/nudgecli/nudge/internal/scheduler"
	"github.com/nudgecli/nudge/pkg/logger"
)

var (
	watchRepeat string
	watchStdout bool

	watchFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "repeat, r",
			Usage:       "5-field cron expression; the arguments become the task",
			Destination: &watchRepeat,
		},
		cli.BoolFlag{
			Name:        "stdout",
			Usage:       "print reminders instead of showing desktop notifications (default: false)",
			Destination: &watchStdout,
		},
	}
)

func watch(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cmdCommon.PrintErrWithCmdHelp(ctx, errors.New("no reminder text provided"))
	} else if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	e, err := loadEnv()
	if err != nil {
		return cmdCommon.RuntimeErr(ctx, "watch", "load_config", err)
	}
	defer e.close()

	events, err := watchEvents(context.Background(), e.parser(), ctx.Args(), watchRepeat, now())
	if err != nil {
		return cmdCommon.RuntimeErr(ctx, "watch", "parse", err)
	}
	n, err := watchNotifier(e.log)
	if err != nil {
		return cmdCommon.RuntimeErr(ctx, "watch", "notifier", err)
	}
	for _, ev := range events {
		if ev.Recurring() {
			fmt.Printf("Watching %q on %q, next at %s\n", ev.Task, ev.CronExpr, ev.TriggerAt.Local().Format("Mon 15:04"))
		} else {
			fmt.Printf("Watching %q at %s\n", ev.Task, ev.TriggerAt.Local().Format("Mon 15:04"))
		}
	}

	sctx, cancel := shutdownContext()
	defer cancel()
	if err := runWatch(sctx, events, n, e.log); err != nil {
		return cmdCommon.RuntimeErr(ctx, "watch", "run", err)
	}
	return nil
}

// watchEvents turns the arguments into scheduler events. Without a cron
// expression each argument is a reminder of its own. With one, the
// arguments are joined into the task and the first firing is the next
// occurrence after now.
func watchEvents(ctx context.Context, p reminder.LLMParser, args []string, repeat string, now time.Time) ([]scheduler.ScheduleEvent, error) {
	if repeat != "" {
		if err := scheduler.ValidateCron(repeat, now); err != nil {
			return nil, common.NewValidationError("repeat", err.Error())
		}
		task := strings.TrimSpace(strings.Join(args, " "))
		if task == "" {
			return nil, common.NewValidationError("task", "task is required")
		}
		next, err := scheduler.NextOccurrence(repeat, now)
		if err != nil {
			return nil, common.NewValidationError("repeat", err.Error())
		}
		return []scheduler.ScheduleEvent{{ID: "watch-1", Task: task, TriggerAt: next, CronExpr: repeat}}, nil
	}

	events := make([]scheduler.ScheduleEvent, 0, len(args))
	for i, text := range args {
		req, err := p.Parse(ctx, text, now)
		if err != nil {
			return nil, err
		}
		if err := req.Validate(now); err != nil {
			return nil, err
		}
		events = append(events, scheduler.ScheduleEvent{
			ID:        fmt.Sprintf("watch-%d", i+1),
			Task:      req.Task,
			TriggerAt: req.When,
		})
	}
	return events, nil
}

func watchNotifier(l logger.Logger) (notify.Notifier, error) {
	printer := notify.Printer{W: os.Stdout}
	if watchStdout {
		return printer, nil
	}
	d, err := newNotifier(l)
	if err != nil {
		if common.IsUnsupportedPlatform(err) {
			l.Warning("desktop notifications unavailable: %v", err)
			return printer, nil
		}
		return nil, err
	}
	return notify.Multi{d, printer}, nil
}

// runWatch blocks until every one-shot event fired or ctx is cancelled.
// With a recurring event it runs until cancelled.
func runWatch(ctx context.Context, events []scheduler.ScheduleEvent, n notify.Notifier, l logger.Logger) error {
	pending, recurring := 0, 0
	for _, ev := range events {
		if ev.Recurring() {
			recurring++
		} else {
			pending++
		}
	}
	if pending == 0 && recurring == 0 {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	fired := make(chan scheduler.ScheduleEvent, 1)
	s := scheduler.New(runCtx, func(ev scheduler.ScheduleEvent) {
		if err := n.Notify(runCtx, osched.NotificationTitle, ev.Task); err != nil {
			l.Error("watch: notify %s: %v", ev.ID, err)
		}
		select {
		case fired <- ev:
		case <-runCtx.Done():
		}
	})
	for _, ev := range events {
		s.Add(ev)
	}

	for {
		select {
		case <-ctx.Done():
			l.Info("watch: interrupted with %d pending", pending)
			return nil
		case ev := <-fired:
			l.Info("watch: fired %s", ev.ID)
			if ev.Recurring() {
				continue
			}
			pending--
			if pending == 0 && recurring == 0 {
				return nil
			}
		}
	}
}
