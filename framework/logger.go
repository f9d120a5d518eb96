package framework

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// CapturedOutput is the debug output that was logged during one test.
type CapturedOutput []observer.LoggedEntry

// capturingCore keeps every entry logged through a test's logger, at any level, so that it can
// be shown after the test finishes regardless of the level of the main logger.
type capturingCore struct {
	zapcore.Core
	logs *observer.ObservedLogs
}

func newCapturingCore() *capturingCore {
	core, logs := observer.New(zapcore.DebugLevel)
	return &capturingCore{Core: core, logs: logs}
}

func (c *capturingCore) Output() CapturedOutput {
	if c == nil {
		return nil
	}
	return CapturedOutput(c.logs.All())
}

func teeCore(base zapcore.Core, capture *capturingCore) zapcore.Core {
	return zapcore.NewTee(base, capture)
}

// Dump writes the captured entries to dest, one line each, with the given prefix.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, e := range output {
		fmt.Fprintf(dest, "%s[%s] %s %s%s\n",
			prefix,
			e.Time.Format(timestampFormat),
			strings.ToUpper(e.Level.String()),
			e.Message,
			formatFields(e.ContextMap()),
		)
	}
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

// reformatError condenses the multi-line report produced by testify down to its "Error:"
// section, which is the only part that is useful on a console.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	var kept []string
	inError := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Error:") {
			inError = true
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "Error:"))
		} else if inError && isTestifyHeading(trimmed) {
			break
		}
		if inError && trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return err
	}
	return fmt.Errorf("%s", strings.Join(kept, "\n"))
}

func isTestifyHeading(line string) bool {
	for _, h := range []string{"Error Trace:", "Test:", "Messages:"} {
		if strings.HasPrefix(line, h) {
			return true
		}
	}
	return false
}
