package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

type chromedpDriver struct {
	ctx         context.Context // tab context; carries the CDP target
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      *zap.Logger
}

func newChromedpDriver(ctx context.Context, cfg Config, logger *zap.Logger) (driver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("start-maximized", true),
		chromedp.WSURLReadTimeout(cfg.LaunchTimeout),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	// The browser is tied to the lifetime of these contexts, not to ctx, which only bounds
	// the launch.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	sugar := logger.Named("cdp").Sugar()
	tabCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(sugar.Debugf),
		chromedp.WithErrorf(sugar.Warnf),
	)
	d := &chromedpDriver{
		ctx:         tabCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		logger:      logger,
	}

	started := make(chan error, 1)
	go func() {
		// The first Run must use the tab context itself, since it allocates the browser.
		started <- chromedp.Run(tabCtx, page.SetLifecycleEventsEnabled(true))
	}()
	select {
	case err := <-started:
		if err != nil {
			d.close()
			return nil, fmt.Errorf("starting chromium: %w", err)
		}
	case <-ctx.Done():
		d.close()
		return nil, fmt.Errorf("starting chromium: %w", ctx.Err())
	}
	return d, nil
}

func (d *chromedpDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := combineContext(d.ctx, ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

func (d *chromedpDriver) navigate(ctx context.Context, url string) error {
	idle := newLoaderWaiter()
	listenCtx, stopListening := context.WithCancel(d.ctx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == networkAlmostIdle {
			idle.settle(e.LoaderID)
		}
	})

	var loaderID cdp.LoaderID
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, loader, errorText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return errors.New(errorText)
		}
		loaderID = loader
		return nil
	}))
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if loaderID == "" {
		// same-document navigation: no new document to wait for
		return nil
	}
	if err := idle.wait(ctx, loaderID); err != nil {
		return fmt.Errorf("waiting for network to settle at %s: %w", url, err)
	}
	return nil
}

// loaderWaiter remembers which document loaders have gone network-idle. Only the loader of the
// document a navigation started counts; a late event from the previous document must not end
// the wait.
type loaderWaiter struct {
	mu      sync.Mutex
	settled map[cdp.LoaderID]bool
	changed chan struct{}
}

func newLoaderWaiter() *loaderWaiter {
	return &loaderWaiter{settled: make(map[cdp.LoaderID]bool), changed: make(chan struct{}, 1)}
}

func (w *loaderWaiter) settle(id cdp.LoaderID) {
	w.mu.Lock()
	w.settled[id] = true
	w.mu.Unlock()
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func (w *loaderWaiter) wait(ctx context.Context, id cdp.LoaderID) error {
	for {
		w.mu.Lock()
		done := w.settled[id]
		w.mu.Unlock()
		if done {
			return nil
		}
		select {
		case <-w.changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *chromedpDriver) query(ctx context.Context, kind selectorKind, selector string) ([]Element, error) {
	by := chromedp.BySearch
	if kind == cssSelector {
		by = chromedp.ByQueryAll
	}
	var nodes []*cdp.Node
	if err := d.run(ctx, chromedp.Nodes(selector, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &chromedpElement{driver: d, node: n})
	}
	return elements, nil
}

func (d *chromedpDriver) eval(ctx context.Context, fn string) (string, error) {
	var res string
	if err := d.run(ctx, chromedp.Evaluate("("+stringResult(fn)+")()", &res)); err != nil {
		return "", err
	}
	return res, nil
}

func (d *chromedpDriver) insertText(ctx context.Context, text string) error {
	return d.run(ctx, input.InsertText(text))
}

func (d *chromedpDriver) pressKey(ctx context.Context, key Key) error {
	switch key {
	case KeyTab:
		return d.run(ctx, chromedp.KeyEvent(kb.Tab))
	case KeyEnter:
		return d.run(ctx, chromedp.KeyEvent(kb.Enter))
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
}

func (d *chromedpDriver) screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := d.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *chromedpDriver) close() error {
	// Cancel closes the browser gracefully; the allocator then waits for the process to exit
	// and removes its temporary profile directory.
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	d.allocCancel()
	return err
}

type chromedpElement struct {
	driver *chromedpDriver
	node   *cdp.Node
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.driver.run(ctx, chromedp.MouseClickNode(e.node))
}

func (e *chromedpElement) Connected(ctx context.Context) (bool, error) {
	var connected bool
	err := e.driver.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.node.NodeID).Do(ctx)
		if err != nil {
			// the node ID is no longer known to the browser
			return nil
		}
		res, exc, err := runtime.CallFunctionOn("function() { return this.isConnected; }").
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		connected = string(res.Value) == "true"
		return nil
	}))
	return connected, err
}

func (e *chromedpElement) String() string {
	return e.node.FullXPath()
}
