package browser

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Key is a named key that can be pressed on the page.
type Key string

const (
	KeyTab   Key = "Tab"
	KeyEnter Key = "Enter"
)

// Element is a handle to an element that was located on the page.
type Element interface {
	Click(ctx context.Context) error
	// Connected reports whether the element is still attached to the document.
	Connected(ctx context.Context) (bool, error)
}

// driver is the browser automation backend behind a Session. Implementations own exactly one
// browser process and one page.
type driver interface {
	// navigate loads url and returns once the page's network is almost idle.
	navigate(ctx context.Context, url string) error
	query(ctx context.Context, kind selectorKind, selector string) ([]Element, error)
	// eval runs a JavaScript function expression and returns its result as a string.
	eval(ctx context.Context, fn string) (string, error)
	insertText(ctx context.Context, text string) error
	pressKey(ctx context.Context, key Key) error
	screenshot(ctx context.Context) ([]byte, error)
	close() error
}

type driverFactory func(ctx context.Context, cfg Config, logger *zap.Logger) (driver, error)

// the lifecycle event Chrome emits once no more than two connections have been in flight for
// 500ms
const networkAlmostIdle = "networkAlmostIdle"

// stringResult wraps a function expression so that it is called and its result is always
// returned as a string, with null and undefined becoming "".
func stringResult(fn string) string {
	return `() => { const v = (` + fn + `)(); return v === undefined || v === null ? "" : String(v); }`
}

func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
