package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/nudgecli/nudge/cmd/common"
	"github.com/nudgecli/nudge/internal/email"
)

var (
	mailTo      string
	mailTopic   string
	mailTone    string
	mailSubject string
	mailBody    string
	dryRun      bool

	toFlag = cli.StringFlag{
		Name:        "to",
		Usage:       "recipient address",
		Destination: &mailTo,
	}

	draftFlags = []cli.Flag{
		toFlag,
		cli.StringFlag{
			Name:        "topic",
			Usage:       "what the email is about",
			Destination: &mailTopic,
		},
		cli.StringFlag{
			Name:        "tone",
			Usage:       "tone of voice, e.g. formal or casual (optional)",
			Destination: &mailTone,
		},
	}

	emailFlags = append(draftFlags[:len(draftFlags):len(draftFlags)],
		cli.BoolFlag{
			Name:        "dry-run, n",
			Usage:       "print the draft instead of sending it (default: false)",
			Destination: &dryRun,
		},
	)

	sendFlags = []cli.Flag{
		toFlag,
		cli.StringFlag{
			Name:        "subject, s",
			Usage:       "subject line",
			Destination: &mailSubject,
		},
		cli.StringFlag{
			Name:        "body",
			Usage:       "message body, plain text or HTML",
			Destination: &mailBody,
		},
	}
)

func generateRequest(ctx *cli.Context) (email.GenerateRequest, error) {
	req := email.GenerateRequest{Recipient: mailTo, Topic: mailTopic, Tone: mailTone}
	if req.Recipient == "" {
		return req, common.PrintErrWithCmdHelp(ctx, errors.New("no recipient provided, use --to"))
	}
	if req.Topic == "" {
		return req, common.PrintErrWithCmdHelp(ctx, errors.New("no topic provided, use --topic"))
	}
	return req, nil
}

func printDraft(d email.Draft) {
	fmt.Printf("Subject: %s\n\n%s\n", d.Subject(), email.HTMLToText(d.Body()))
	if !d.Structured() {
		fmt.Println("\n(the model did not return a subject, a placeholder was used)")
	}
}

func draftEmail(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	req, err := generateRequest(ctx)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return common.RuntimeErr(ctx, "draft", "load_config", err)
	}
	defer e.close()

	gen, err := e.generator()
	if err != nil {
		return common.RuntimeErr(ctx, "draft", "new_client", err)
	}
	d, err := gen.Generate(context.Background(), req)
	if err != nil {
		return common.RuntimeErr(ctx, "draft", "generate", err)
	}
	printDraft(d)
	return nil
}

func composeEmail(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if dryRun {
		return draftEmail(ctx)
	}
	req, err := generateRequest(ctx)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return common.RuntimeErr(ctx, "email", "load_config", err)
	}
	defer e.close()

	gen, err := e.generator()
	if err != nil {
		return common.RuntimeErr(ctx, "email", "new_client", err)
	}
	snd, err := newSender(e.cfg, e.log)
	if err != nil {
		return common.RuntimeErr(ctx, "email", "new_sender", err)
	}
	d, _, err := email.Compose(context.Background(), gen, snd, req)
	if err != nil {
		return common.RuntimeErr(ctx, "email", "compose", err)
	}
	printDraft(d)
	fmt.Printf("\nSent to %s\n", req.Recipient)
	return nil
}

func sendEmail(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if mailTo == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no recipient provided, use --to"))
	}
	e, err := loadEnv()
	if err != nil {
		return common.RuntimeErr(ctx, "send", "load_config", err)
	}
	defer e.close()

	snd, err := newSender(e.cfg, e.log)
	if err != nil {
		return common.RuntimeErr(ctx, "send", "new_sender", err)
	}
	_, err = snd.Send(context.Background(), email.Message{To: mailTo, Subject: mailSubject, Body: mailBody})
	if err != nil {
		return common.RuntimeErr(ctx, "send", "smtp", err)
	}
	fmt.Printf("Sent to %s\n", mailTo)
	return nil
}
