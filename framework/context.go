package framework

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	logger     *zap.Logger
}

// Context is the framework's equivalent of *testing.T for one scenario or group of scenarios.
//
// It implements assert.TestingT and require.TestingT, so testify assertions can be used against
// it directly. Unlike *testing.T it also records labeled assertions that passed, because the
// report lists every check that was made, not only the failing ones.
type Context struct {
	env         *environment
	id          TestID
	debugLogger *zap.Logger
	captured    *capturingCore
	failed      bool
	skipped     bool
	skipReason  string
	aborted     error
	errors      []error
	assertions  []Assertion
}

// Run executes the top-level action and returns the accumulated results of every test that
// was started with Context.Run inside it.
func Run(
	filter func(TestID) bool,
	testLogger TestLogger,
	logger *zap.Logger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
		logger:     logger,
	}
	c := &Context{env: env, debugLogger: logger}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 && c.aborted == nil {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{
			TestID:     c.id,
			Assertions: c.assertions,
			Errors:     c.errors,
			Aborted:    c.aborted,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// ID returns the identifier of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Failed reports whether the test has failed so far, by an assertion, an error, or an abort.
func (c *Context) Failed() bool {
	return c.failed
}

// Run starts a named subtest. The subtest is skipped without running if the filter rejects
// its ID. When the action returns, the subtest's tally is final and is passed to the TestLogger.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Tests = append(c.env.results.Tests,
			TestResult{TestID: id, Skipped: true, SkipReason: excludedByFilter})
		c.env.testLogger.TestSkipped(id, excludedByFilter)
		return
	}
	capture := newCapturingCore()
	c1 := &Context{
		id:          id,
		env:         c.env,
		captured:    capture,
		debugLogger: zap.New(teeCore(c.env.logger.Core(), capture)).Named(id.String()),
	}
	c1.run(action)
	if c1.skipped {
		c.env.results.Tests = append(c.env.results.Tests,
			TestResult{TestID: id, Skipped: true, SkipReason: c1.skipReason})
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.captured.Output())
	}
}

// Errorf is called by testify assertions to log a failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow is called by require assertions to stop the test immediately.
func (c *Context) FailNow() {
	panic(c)
}

// Abort stops the current test because a step could not be carried out, as opposed to a
// check that was carried out and did not hold. The error is kept as the test's abort cause.
func (c *Context) Abort(err error) {
	c.failed = true
	c.aborted = err
	c.env.testLogger.TestError(c.id, err)
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// AssertTrue records a labeled check that condition holds. It never stops the test.
func (c *Context) AssertTrue(condition bool, label string) bool {
	return c.record(label, func(t assert.TestingT) bool {
		return assert.True(t, condition, label)
	})
}

// AssertEqual records a labeled check that actual equals expected. It never stops the test.
func (c *Context) AssertEqual(actual, expected interface{}, label string) bool {
	return c.record(label, func(t assert.TestingT) bool {
		return assert.Equal(t, expected, actual, label)
	})
}

func (c *Context) record(label string, check func(assert.TestingT) bool) bool {
	var a Assertion
	if label == "" {
		a = Assertion{Message: "assertion has no label"}
	} else {
		var rec failureRecorder
		a = Assertion{Label: label, Passed: check(&rec), Message: rec.message}
	}
	c.assertions = append(c.assertions, a)
	if !a.Passed {
		c.failed = true
	}
	c.env.testLogger.AssertionRecorded(c.id, a)
	return a.Passed
}

// Debug logs a debug message for the test. It is shown by the TestLogger at the end of the
// test if debug output was requested.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Debug(fmt.Sprintf(message, args...))
}

// DebugLogger returns the test's logger. Its output is captured along with Debug messages.
func (c *Context) DebugLogger() *zap.Logger {
	return c.debugLogger
}

type failureRecorder struct {
	message string
}

func (r *failureRecorder) Errorf(format string, args ...interface{}) {
	r.message = reformatError(fmt.Errorf(format, args...)).Error()
}
