package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/nudgecli/nudge/cmd/common"
	"github.com/nudgecli/nudge/internal/osched"
	"github.com/nudgecli/nudge/internal/reminder"
)

var (
	remindTask    string
	remindAt      string
	remindMinutes int
	remindBackend string

	backendFlag = cli.StringFlag{
		Name:        "backend, b",
		Usage:       "scheduling backend: systemd, at, launchd or schtasks (default: platform default)",
		Destination: &remindBackend,
	}

	remindFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "task, t",
			Usage:       "task to be reminded of, used with --at or --in-minutes",
			Destination: &remindTask,
		},
		cli.StringFlag{
			Name:        "at",
			Usage:       "when to fire, RFC3339 or YYYY-MM-DD HH:MM",
			Destination: &remindAt,
		},
		cli.IntFlag{
			Name:        "in-minutes, m",
			Usage:       "fire this many minutes from now",
			Destination: &remindMinutes,
		},
		backendFlag,
	}
)

func remind(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	in := reminder.Input{
		Text:     reminderText(ctx.Args()),
		Task:     remindTask,
		Datetime: remindAt,
		Minutes:  remindMinutes,
	}
	if in.Text == "" && in.Task == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no reminder text provided"))
	}
	if in.Task != "" && in.Datetime == "" && in.Minutes == 0 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("--task needs --at or --in-minutes"))
	}
	e, err := loadEnv()
	if err != nil {
		return common.RuntimeErr(ctx, "remind", "load_config", err)
	}
	defer e.close()

	bg := context.Background()
	req, err := in.Resolve(bg, e.parser(), now())
	if err != nil {
		return common.RuntimeErr(ctx, "remind", "parse", err)
	}
	adapter, err := newAdapter(e.cfg, remindBackend, e.log)
	if err != nil {
		return common.RuntimeErr(ctx, "remind", "select_backend", err)
	}
	sr, err := adapter.Schedule(bg, req)
	if err != nil {
		return common.RuntimeErr(ctx, "remind", "schedule", err)
	}
	e.log.Info("scheduled %s via %s for %s", sr.ID, sr.Backend, sr.When.Format(time.RFC3339))
	printScheduled(sr)
	return nil
}

// reminderText joins the arguments. "nudge remind me to ..." arrives
// without its leading "remind", which is put back.
func reminderText(args []string) string {
	text := strings.TrimSpace(strings.Join(args, " "))
	if len(args) > 0 && strings.EqualFold(args[0], "me") {
		text = "remind " + text
	}
	return text
}

func printScheduled(sr osched.ScheduledReminder) {
	fmt.Printf(`Reminder scheduled
ID`+"\t"+`: %s
Task`+"\t"+`: %s
When`+"\t"+`: %s
Backend`+"\t"+`: %s
`, sr.ID, sr.Task, sr.When.Local().Format("Mon, 02 Jan 2006 15:04 MST"), sr.Backend)
	if len(sr.Artifacts) > 0 {
		fmt.Println("Files\t:")
		for _, a := range sr.Artifacts {
			fmt.Printf("  %s\n", a)
		}
	}
}

func cancelReminder(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no reminder id provided"))
	} else if id == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	e, err := loadEnv()
	if err != nil {
		return common.RuntimeErr(ctx, "remind", "load_config", err)
	}
	defer e.close()

	adapter, err := newAdapter(e.cfg, remindBackend, e.log)
	if err != nil {
		return common.RuntimeErr(ctx, "remind", "select_backend", err)
	}
	if err := adapter.Cancel(context.Background(), id); err != nil {
		return common.RuntimeErr(ctx, "remind", "cancel", err)
	}
	e.log.Info("cancelled %s", id)
	fmt.Printf("Reminder %s cancelled\n", id)
	return nil
}
