package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

type rodDriver struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   *zap.Logger
}

type rodConnection struct {
	browser *rod.Browser
	page    *rod.Page
	err     error
}

func newRodDriver(ctx context.Context, cfg Config, logger *zap.Logger) (driver, error) {
	// The launcher context bounds only the launch (and a browser download, if no binary is
	// configured); the process itself is not killed when it ends.
	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Set("start-maximized")
	if cfg.ExecPath != "" {
		l = l.Bin(cfg.ExecPath)
	}
	d := &rodDriver{launcher: l, logger: logger}

	u, err := l.Launch()
	if err != nil {
		d.close()
		return nil, fmt.Errorf("launching chromium: %w", err)
	}
	logger.Debug("Launched local chromium", zap.String("control_url", u))

	// The browser keeps a background context: its event stream must outlive ctx. NoDefaultDevice
	// keeps the real window size instead of emulating a fixed viewport.
	connected := make(chan rodConnection, 1)
	go func() {
		b := rod.New().ControlURL(u).NoDefaultDevice()
		if err := b.Connect(); err != nil {
			connected <- rodConnection{err: fmt.Errorf("connecting to chromium: %w", err)}
			return
		}
		p, err := b.Page(proto.TargetCreateTarget{})
		if err != nil {
			connected <- rodConnection{browser: b, err: fmt.Errorf("opening page: %w", err)}
			return
		}
		connected <- rodConnection{browser: b, page: p}
	}()
	select {
	case c := <-connected:
		d.browser, d.page = c.browser, c.page
		if c.err != nil {
			d.close()
			return nil, c.err
		}
	case <-ctx.Done():
		// killing the process makes the pending connection fail
		d.close()
		return nil, fmt.Errorf("connecting to chromium: %w", ctx.Err())
	}
	return d, nil
}

func (d *rodDriver) navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	wait := p.WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	wait()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("waiting for network to settle at %s: %w", url, err)
	}
	return nil
}

func (d *rodDriver) query(ctx context.Context, kind selectorKind, selector string) ([]Element, error) {
	p := d.page.Context(ctx)
	var found rod.Elements
	var err error
	if kind == cssSelector {
		found, err = p.Elements(selector)
	} else {
		found, err = p.ElementsX(selector)
	}
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &rodElement{el: el})
	}
	return elements, nil
}

func (d *rodDriver) eval(ctx context.Context, fn string) (string, error) {
	res, err := d.page.Context(ctx).Eval(stringResult(fn))
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (d *rodDriver) insertText(ctx context.Context, text string) error {
	return d.page.Context(ctx).InsertText(text)
}

func (d *rodDriver) pressKey(ctx context.Context, key Key) error {
	switch key {
	case KeyTab:
		return d.page.Context(ctx).Keyboard.Type(input.Tab)
	case KeyEnter:
		return d.page.Context(ctx).Keyboard.Type(input.Enter)
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
}

func (d *rodDriver) screenshot(ctx context.Context) ([]byte, error) {
	return d.page.Context(ctx).Screenshot(false, nil)
}

func (d *rodDriver) close() error {
	var err error
	if d.page != nil {
		if perr := d.page.Close(); perr != nil {
			d.logger.Debug("Closing page failed", zap.Error(perr))
		}
	}
	if d.browser != nil {
		err = d.browser.Close()
	}
	// Cleanup waits for the process to exit and removes the temporary profile directory, so it
	// must only run once a process was started.
	if d.launcher.PID() != 0 {
		d.launcher.Kill()
		d.launcher.Cleanup()
	}
	return err
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Connected(ctx context.Context) (bool, error) {
	res, err := e.el.Context(ctx).Eval(`() => this.isConnected`)
	if err != nil {
		// the remote object was released along with its document
		return false, nil
	}
	return res.Value.Bool(), nil
}
