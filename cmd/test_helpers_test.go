package cmd

import (
	"bytes"
	"flag"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli"
)

// captureStdout returns what f printed. The pipe is drained while f runs
// so long help output cannot fill it.
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	os.Stdout = w
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()
	defer func() { os.Stdout = old }()
	f()
	w.Close()
	out := <-done
	r.Close()
	return out
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, output)
		}
	}
}

func assertNotContains(t *testing.T, output, unwanted string) {
	t.Helper()
	if strings.Contains(output, unwanted) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", unwanted, output)
	}
}

// assertErrorFormat checks for "nudge: <cmd>[<action>]:".
func assertErrorFormat(t *testing.T, output, cmd, action string) {
	t.Helper()
	assertContains(t, output, "nudge: "+cmd+"["+action+"]:")
}

// newContext builds a context for calling an action directly, with args
// as its positional arguments.
func newContext(app *cli.App, args []string, name string) *cli.Context {
	if app.HelpName == "" {
		app.HelpName = "nudge"
	}
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	_ = set.Parse(args)
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = cli.Command{Name: name}
	return ctx
}
