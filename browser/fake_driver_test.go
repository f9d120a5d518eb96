package browser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// fakeDriver is an in-memory driver. Queries are answered from matches, keyed by selector.
type fakeDriver struct {
	mu          sync.Mutex
	matches     map[string][]Element
	appearAfter map[string]int
	queries     map[string]int
	evalResults map[string]string
	evalScripts []string
	typed       []string
	keys        []Key
	visited     []string
	navigateErr error
	closed      int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		matches:     make(map[string][]Element),
		appearAfter: make(map[string]int),
		queries:     make(map[string]int),
		evalResults: make(map[string]string),
	}
}

func (d *fakeDriver) navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visited = append(d.visited, url)
	return d.navigateErr
}

func (d *fakeDriver) query(ctx context.Context, kind selectorKind, selector string) ([]Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries[selector]++
	if d.queries[selector] <= d.appearAfter[selector] {
		return nil, nil
	}
	return d.matches[selector], nil
}

// eval answers with the first configured result whose key occurs in the script.
func (d *fakeDriver) eval(ctx context.Context, fn string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.evalScripts = append(d.evalScripts, fn)
	for k, v := range d.evalResults {
		if strings.Contains(fn, k) {
			return v, nil
		}
	}
	return "", errors.New("unexpected script")
}

func (d *fakeDriver) insertText(ctx context.Context, text string) error {
	d.typed = append(d.typed, text)
	return nil
}

func (d *fakeDriver) pressKey(ctx context.Context, key Key) error {
	d.keys = append(d.keys, key)
	return nil
}

func (d *fakeDriver) screenshot(ctx context.Context) ([]byte, error) {
	return []byte("png"), nil
}

func (d *fakeDriver) close() error {
	d.closed++
	return nil
}

type fakeElement struct {
	clickErr  error
	connected bool
	clicks    int
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	return e.clickErr
}

func (e *fakeElement) Connected(ctx context.Context) (bool, error) {
	return e.connected, nil
}

func testConfig() Config {
	return Config{
		Driver:       DriverChromedp,
		WaitTimeout:  300 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	}.withDefaults()
}

func newTestSession(d *fakeDriver) *Session {
	return &Session{id: "test", driver: d, cfg: testConfig(), logger: zap.NewNop()}
}
