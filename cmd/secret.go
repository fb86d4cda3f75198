package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/nudgecli/nudge/cmd/common"
	"github.com/nudgecli/nudge/internal/config"
)

var stdin io.Reader = os.Stdin

func setSecret(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no secret name provided (smtp or openai)"))
	} else if name == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	value := ctx.Args().Get(1)
	if value == "" {
		fmt.Printf("Enter %s secret: ", name)
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return common.RuntimeErr(ctx, "config", "read_secret", err)
		}
		value = strings.TrimSpace(line)
		fmt.Println()
	}
	if value == "" {
		return common.RuntimeErr(ctx, "config", "read_secret", errors.New("empty secret"))
	}
	if err := secretStore().Set(name, value); err != nil {
		return common.RuntimeErr(ctx, "config", "set_secret", err)
	}
	fmt.Printf("Stored %s secret in the OS keyring\n", name)
	return nil
}

func deleteSecret(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no secret name provided (smtp or openai)"))
	}
	err := secretStore().Delete(name)
	if errors.Is(err, config.ErrSecretNotFound) {
		fmt.Printf("No %s secret stored\n", name)
		return nil
	}
	if err != nil {
		return common.RuntimeErr(ctx, "config", "delete_secret", err)
	}
	fmt.Printf("Removed %s secret\n", name)
	return nil
}
