package cmd

import (
	"github.com/urfave/cli"

	cmdCommon "github.com/nudgecli/nudge/cmd/common"
	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/server"
)

var (
	serveAddr string

	serveFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "addr, a",
			Usage:       "address to listen on (default: server.addr from config, else :8080)",
			Destination: &serveAddr,
		},
	}
)

func serve(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	e, err := loadEnv()
	if err != nil {
		return cmdCommon.RuntimeErr(ctx, "serve", "load_config", err)
	}
	defer e.close()

	deps, err := serverDeps(e)
	if err != nil {
		return cmdCommon.RuntimeErr(ctx, "serve", "setup", err)
	}
	addr := serveAddr
	if addr == "" {
		addr = e.cfg.Server.Addr
	}
	sctx, cancel := shutdownContext()
	defer cancel()
	if err := server.New(deps).ListenAndServe(sctx, addr); err != nil {
		return cmdCommon.RuntimeErr(ctx, "serve", "listen", err)
	}
	return nil
}

// serverDeps builds what the routes need. Pieces that are not configured
// are left nil so their routes report it instead of failing startup.
func serverDeps(e *env) (server.Deps, error) {
	deps := server.Deps{Parser: e.parser(), Now: now, Log: e.log}

	adapter, err := newAdapter(e.cfg, "", e.log)
	switch {
	case err == nil:
		deps.Scheduler = adapter
	case common.IsUnsupportedPlatform(err):
		e.log.Warning("serve: reminders disabled: %v", err)
	default:
		return deps, err
	}

	if gen, err := e.generator(); err == nil {
		deps.Drafter = gen
	} else {
		e.log.Warning("serve: drafting disabled: %v", err)
	}
	if e.cfg.SMTP.Host != "" {
		snd, err := newSender(e.cfg, e.log)
		if err != nil {
			return deps, err
		}
		deps.Sender = snd
	} else {
		e.log.Warning("serve: sending disabled: smtp.host is not set")
	}
	return deps, nil
}
