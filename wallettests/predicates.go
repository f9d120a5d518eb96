package wallettests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/coinos/wallet-ui-tests/browser"
)

// Source selects what part of the page a predicate looks at.
type Source int

const (
	// BodyText is the rendered text of the document body.
	BodyText Source = iota
	// BodyMarkup is the serialized markup of the document body, for strings that rendered text
	// would not show.
	BodyMarkup
)

func (s Source) String() string {
	if s == BodyMarkup {
		return "markup"
	}
	return "text"
}

func (s Source) read(ctx context.Context, p Page) (string, error) {
	if s == BodyMarkup {
		return p.BodyMarkup(ctx)
	}
	return p.BodyText(ctx)
}

// Predicate is a named condition on the page's current content.
type Predicate struct {
	Description string
	source      Source
	holds       func(string) bool
}

// Shows holds when the page's text or markup contains literal.
func Shows(src Source, literal string) Predicate {
	return Predicate{
		Description: fmt.Sprintf("page %s contains %q", src, literal),
		source:      src,
		holds:       func(s string) bool { return strings.Contains(s, literal) },
	}
}

// DoesNotShow holds when the page's text or markup does not contain literal.
func DoesNotShow(src Source, literal string) Predicate {
	return Predicate{
		Description: fmt.Sprintf("page %s does not contain %q", src, literal),
		source:      src,
		holds:       func(s string) bool { return !strings.Contains(s, literal) },
	}
}

// Eval reads the page once and tests the predicate against it.
func (p Predicate) Eval(ctx context.Context, page Page) (bool, error) {
	s, err := p.source.read(ctx, page)
	if err != nil {
		return false, err
	}
	return p.holds(s), nil
}

// What the application shows in each state. These literal strings are the only signal the
// application gives, so scenarios refer to them only through the predicates below.
const (
	landingMessage   = "Send and receive bitcoin"
	emptyWalletMsg   = "No payments yet"
	zeroBalance      = "0.00"
	settingsMessage  = "Your public page"
	nameRequired     = "Name is required"
	emailRequired    = "Email is required"
	emailMustBeValid = "E-mail must be valid"
)

func showsLandingPage() Predicate { return Shows(BodyText, landingMessage) }

func showsEmptyWallet(src Source) Predicate { return Shows(src, emptyWalletMsg) }

func showsZeroBalance(src Source) Predicate { return Shows(src, zeroBalance) }

func showsSettingsPage() Predicate { return Shows(BodyText, settingsMessage) }

func warnsNameRequired() Predicate { return Shows(BodyMarkup, nameRequired) }

func noNameWarning() Predicate { return DoesNotShow(BodyMarkup, nameRequired) }

func warnsEmailRequired() Predicate { return Shows(BodyMarkup, emailRequired) }

func noEmailWarning() Predicate { return DoesNotShow(BodyMarkup, emailRequired) }

func warnsEmailInvalid() Predicate { return Shows(BodyMarkup, emailMustBeValid) }

// WaitFor polls until pred holds. Running out of time is not an error: the step after it is
// expected to check the same condition and record the outcome.
func (t *T) WaitFor(pred Predicate) Step {
	return Step{
		Description: "wait until " + pred.Description,
		Action: func(ctx context.Context, p Page) error {
			return t.until(ctx, pred.Description, func(ctx context.Context) (bool, error) {
				return pred.Eval(ctx, p)
			})
		},
	}
}

// WaitForPath polls until the page's location path equals path, with the same timeout
// handling as WaitFor.
func (t *T) WaitForPath(path string) Step {
	desc := fmt.Sprintf("location path is %q", path)
	return Step{
		Description: "wait until " + desc,
		Action: func(ctx context.Context, p Page) error {
			return t.until(ctx, desc, func(ctx context.Context) (bool, error) {
				current, err := p.LocationPath(ctx)
				return current == path, err
			})
		},
	}
}

func (t *T) until(ctx context.Context, desc string, cond browser.Condition) error {
	waits := t.env.cfg.Waits
	err := browser.Until(ctx, waits.Timeout, waits.Interval, cond)
	if errors.Is(err, browser.ErrWaitTimeout) {
		t.context.DebugLogger().Debug("Gave up waiting", zap.String("condition", desc),
			zap.Duration("timeout", waits.Timeout))
		return nil
	}
	return err
}

// Check records whether pred holds right now, under label.
func (t *T) Check(pred Predicate, label string) Step {
	return Step{
		Description: "check " + pred.Description,
		Action: func(ctx context.Context, p Page) error {
			ok, err := pred.Eval(ctx, p)
			if err != nil {
				return err
			}
			t.AssertTrue(ok, label)
			return nil
		},
	}
}

// Eventually waits for pred to hold and then records whether it does, under label.
func (t *T) Eventually(pred Predicate, label string) []Step {
	return []Step{t.WaitFor(pred), t.Check(pred, label)}
}

// CheckPath records whether the page's location path equals expected, under label.
func (t *T) CheckPath(expected, label string) Step {
	return Step{
		Description: fmt.Sprintf("check location path is %q", expected),
		Action: func(ctx context.Context, p Page) error {
			path, err := p.LocationPath(ctx)
			if err != nil {
				return err
			}
			t.AssertEqual(path, expected, label)
			return nil
		},
	}
}
