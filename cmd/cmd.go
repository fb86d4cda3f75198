package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/nudgecli/nudge/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	app := cli.App{
		Name:                  "nudge",
		HelpName:              "nudge",
		Usage:                 "Reminders and email drafts from plain language.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "nudge <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:               "remind",
				Aliases:            []string{"r"},
				Usage:              "schedule an OS notification from plain text",
				Description:        RemindDescription,
				UsageText:          "remind [--task <task> --at <datetime>|--in-minutes <n>] [text...]",
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             remind,
				Flags:              remindFlags,
				Subcommands: []cli.Command{
					{
						Name:               "cancel",
						Usage:              "remove a scheduled reminder",
						UsageText:          "cancel <id>",
						Description:        CancelDescription,
						OnUsageError:       common.UsageErrorCallback,
						CustomHelpTemplate: CMD_HELP_TEMPL,
						Action:             cancelReminder,
						Flags:              []cli.Flag{backendFlag},
					},
				},
			},
			{
				Name:               "email",
				Aliases:            []string{"e"},
				Usage:              "generate an email and send it",
				Description:        EmailDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             composeEmail,
				Flags:              emailFlags,
			},
			{
				Name:               "draft",
				Usage:              "generate an email without sending it",
				Description:        DraftDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             draftEmail,
				Flags:              draftFlags,
			},
			{
				Name:               "send",
				Usage:              "send an email as written",
				Description:        SendDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             sendEmail,
				Flags:              sendFlags,
			},
			{
				Name:               "watch",
				Aliases:            []string{"w"},
				Usage:              "keep reminders in this process and notify when due",
				Description:        WatchDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             watch,
				Flags:              watchFlags,
			},
			{
				Name:               "serve",
				Usage:              "serve the HTTP API",
				Description:        ServeDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             serve,
				Flags:              serveFlags,
			},
			{
				Name:  "config",
				Usage: "manage stored settings",
				Subcommands: []cli.Command{
					{
						Name:               "set-secret",
						Usage:              "store a password or API key in the OS keyring",
						UsageText:          "set-secret smtp|openai [value]",
						Description:        SetSecretDescription,
						CustomHelpTemplate: CMD_HELP_TEMPL,
						Action:             setSecret,
					},
					{
						Name:               "delete-secret",
						Usage:              "remove a stored secret",
						UsageText:          "delete-secret smtp|openai",
						CustomHelpTemplate: CMD_HELP_TEMPL,
						Action:             deleteSecret,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of nudge",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
