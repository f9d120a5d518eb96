package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Session is one browser process with one page. It is not safe for concurrent use; a
// scenario drives its session from a single goroutine.
type Session struct {
	id        string
	driver    driver
	cfg       Config
	logger    *zap.Logger
	onClose   func()
	closeOnce sync.Once
	closeErr  error
}

// ID returns the session's identifier, as used in log output.
func (s *Session) ID() string {
	return s.id
}

// Close releases the browser process and everything associated with it. Only the first call
// has any effect.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.driver.close()
		if s.closeErr != nil {
			s.logger.Warn("Browser did not close cleanly", zap.Error(s.closeErr))
		} else {
			s.logger.Debug("Session closed")
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
	return s.closeErr
}

func (s *Session) actionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.ActionTimeout)
}

// Navigate loads url and waits until the network is almost idle.
func (s *Session) Navigate(ctx context.Context, url string) error {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	s.logger.Debug("Navigating", zap.String("url", url))
	return s.driver.navigate(ctx, url)
}

// Find returns the elements currently matching q, in document order. If q was narrowed with
// Nth, the result has at most that one element. No match gives an empty slice.
func (s *Session) Find(ctx context.Context, q Query) ([]Element, error) {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	kind, selector := q.selector()
	found, err := s.driver.query(ctx, kind, selector)
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", q, err)
	}
	if i, ok := q.Index(); ok {
		if i < len(found) {
			return []Element{found[i]}, nil
		}
		return []Element{}, nil
	}
	if found == nil {
		found = []Element{}
	}
	return found, nil
}

// Require waits for an element matching q to exist and returns it (the first match, or the
// Nth if q was narrowed with Nth). It fails with *LocatorTimeoutError if none appears within
// the configured wait timeout.
func (s *Session) Require(ctx context.Context, q Query) (Element, error) {
	var found Element
	err := Until(ctx, s.cfg.WaitTimeout, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		els, err := s.Find(ctx, q)
		if err != nil {
			return false, err
		}
		if len(els) == 0 {
			return false, nil
		}
		found = els[0]
		return true, nil
	})
	if errors.Is(err, ErrWaitTimeout) {
		return nil, &LocatorTimeoutError{Query: q, Timeout: s.cfg.WaitTimeout}
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Click activates el with the pointer. If the click fails because el was detached from the
// document after it was located, the error is a *StaleElementError.
func (s *Session) Click(ctx context.Context, el Element) error {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	err := el.Click(ctx)
	if err == nil {
		return nil
	}
	if connected, cerr := el.Connected(ctx); cerr == nil && !connected {
		return &StaleElementError{Err: err}
	}
	return fmt.Errorf("clicking element: %w", err)
}

// ClickWhenPresent locates the element that q identifies, waiting for it if necessary, and clicks it.
func (s *Session) ClickWhenPresent(ctx context.Context, q Query) error {
	el, err := s.Require(ctx, q)
	if err != nil {
		return err
	}
	return s.Click(ctx, el)
}

// TypeText sends text to whichever element has focus. If nothing has focus the text is lost.
func (s *Session) TypeText(ctx context.Context, text string) error {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	return s.driver.insertText(ctx, text)
}

// PressKey presses and releases a single named key.
func (s *Session) PressKey(ctx context.Context, key Key) error {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	return s.driver.pressKey(ctx, key)
}

// FocusFirstInput waits for an input element to exist and focuses the first one.
func (s *Session) FocusFirstInput(ctx context.Context) error {
	if _, err := s.Require(ctx, ByCSS("input")); err != nil {
		return err
	}
	return s.runOnFirstInput(ctx, `el.focus();`)
}

// ClearFirstInput empties the first input element, notifying the page's input listeners.
func (s *Session) ClearFirstInput(ctx context.Context) error {
	if _, err := s.Require(ctx, ByCSS("input")); err != nil {
		return err
	}
	return s.runOnFirstInput(ctx,
		`el.value = ""; el.dispatchEvent(new Event("input", { bubbles: true }));`)
}

func (s *Session) runOnFirstInput(ctx context.Context, body string) error {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	res, err := s.driver.eval(ctx, `() => {
		const el = document.getElementsByTagName(`+jsString("input")+`)[0];
		if (!el) { return "missing"; }
		`+body+`
		return "ok";
	}`)
	if err != nil {
		return err
	}
	if res != "ok" {
		// the input was removed between locating and using it
		return &StaleElementError{Err: errors.New("first input element disappeared")}
	}
	return nil
}

// BodyText returns the rendered text of the document body at the moment of the call.
func (s *Session) BodyText(ctx context.Context) (string, error) {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	return s.driver.eval(ctx, `() => document.body ? document.body.innerText : ""`)
}

// BodyMarkup returns the serialized markup of the document body at the moment of the call.
func (s *Session) BodyMarkup(ctx context.Context) (string, error) {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	return s.driver.eval(ctx, `() => document.body ? document.body.innerHTML : ""`)
}

// LocationPath returns the path component of the page's current address.
func (s *Session) LocationPath(ctx context.Context) (string, error) {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	return s.driver.eval(ctx, `() => window.location.pathname`)
}

// Screenshot captures the visible part of the page as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	ctx, cancel := s.actionContext(ctx)
	defer cancel()
	return s.driver.screenshot(ctx)
}
