package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/coinos/wallet-ui-tests/framework"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// ConsoleTestLogger prints a line for every scenario and every labeled check as it happens.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s %s\n", failColor.Sprint("ERROR:"), line)
	}
}

func (c *ConsoleTestLogger) AssertionRecorded(id framework.TestID, a framework.Assertion) {
	if a.Passed {
		fmt.Fprintf(c.Out, "  %s %s\n", passColor.Sprint("ok"), a.Label)
		return
	}
	label := a.Label
	if label == "" {
		label = "(unlabeled assertion)"
	}
	fmt.Fprintf(c.Out, "  %s %s\n", failColor.Sprint("not ok"), label)
	if a.Message != "" {
		for _, line := range strings.Split(a.Message, "\n") {
			fmt.Fprintf(c.Out, "      %s\n", line)
		}
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s %s\n", failColor.Sprint("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s %s\n", skipColor.Sprint("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s %s (%s)\n", skipColor.Sprint("SKIPPED:"), id, reason)
	}
}
