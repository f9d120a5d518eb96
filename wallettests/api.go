package wallettests

import (
	"context"

	"github.com/coinos/wallet-ui-tests/browser"
	"github.com/coinos/wallet-ui-tests/config"
	"github.com/coinos/wallet-ui-tests/framework"
)

// Page is what a scenario needs from a browser session. *browser.Session implements it.
type Page interface {
	Navigate(ctx context.Context, url string) error
	ClickWhenPresent(ctx context.Context, q browser.Query) error
	TypeText(ctx context.Context, text string) error
	PressKey(ctx context.Context, key browser.Key) error
	FocusFirstInput(ctx context.Context) error
	ClearFirstInput(ctx context.Context) error
	BodyText(ctx context.Context) (string, error)
	BodyMarkup(ctx context.Context) (string, error)
	LocationPath(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// OpenFunc opens a new session whose page has loaded baseURL.
type OpenFunc func(ctx context.Context, baseURL string) (Page, error)

type environment struct {
	ctx  context.Context
	open OpenFunc
	cfg  config.Config
}

// T represents a scenario, or a group of scenarios, in the wallet test suite.
//
// It wraps the framework's Context, so testify's assert and require packages can be used with
// a *T as if it were a *testing.T. Labeled checks that should appear in the report use
// AssertTrue and AssertEqual, or the Check steps built on them.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by require assertions to stop the test immediately.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a named scenario or group.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the scenario. The output is passed to the test logger at
// the end of the scenario.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// AssertTrue records a labeled check. It never stops the scenario.
func (t *T) AssertTrue(condition bool, label string) bool {
	return t.context.AssertTrue(condition, label)
}

// AssertEqual records a labeled equality check. It never stops the scenario.
func (t *T) AssertEqual(actual, expected interface{}, label string) bool {
	return t.context.AssertEqual(actual, expected, label)
}

// Config returns the run's configuration.
func (t *T) Config() config.Config {
	return t.env.cfg
}

// RequireEmail skips the scenario if no registration email address was configured.
func (t *T) RequireEmail() {
	if t.env.cfg.Email == "" {
		t.context.SkipWithReason("no registration email is configured")
	}
}
