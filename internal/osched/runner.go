package osched

import (
	"context"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its combined output.
// A non-empty stdin is piped to the command.
type Runner interface {
	Run(ctx context.Context, stdin, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, stdin, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	return cmd.CombinedOutput()
}
