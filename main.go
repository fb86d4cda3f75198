package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nudgecli/nudge/cmd"
	"github.com/nudgecli/nudge/cmd/common"
)

var (
	version   string
	commit    string
	date      string
	buildType string = "unclassified"
)

var osExit = os.Exit

func main() {
	osExit(runMain(os.Args, func(args []string) error {
		return cmd.Execute(args, cmd.BuildArgs{
			Version:   version,
			Commit:    commit,
			Date:      date,
			BuildType: buildType,
		})
	}))
}

// runMain returns the process exit code for execute(args). Errors already
// printed by a command are not printed twice.
func runMain(args []string, execute func([]string) error) int {
	err := execute(args)
	if err == nil {
		return 0
	}
	if !errors.Is(err, common.ErrReported) {
		fmt.Printf("nudge: %s\n", err.Error())
	}
	return 1
}
