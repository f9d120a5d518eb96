package wallettests

import (
	"context"
	"fmt"

	"github.com/coinos/wallet-ui-tests/browser"
)

// Click waits for the element that q identifies and clicks it. The element is located afresh
// each time the step runs.
func Click(q browser.Query) Step {
	return Step{
		Description: fmt.Sprintf("click %s", q),
		Action: func(ctx context.Context, p Page) error {
			return p.ClickWhenPresent(ctx, q)
		},
	}
}

// ClickSpan clicks the first span whose text contains text.
func ClickSpan(text string) Step {
	return Click(browser.ByText("span", text))
}

// Type sends text to the focused element.
func Type(text string) Step {
	return Step{
		Description: fmt.Sprintf("type %q", text),
		Action: func(ctx context.Context, p Page) error {
			return p.TypeText(ctx, text)
		},
	}
}

// Press sends a single key.
func Press(key browser.Key) Step {
	return Step{
		Description: fmt.Sprintf("press %s", key),
		Action: func(ctx context.Context, p Page) error {
			return p.PressKey(ctx, key)
		},
	}
}

// FocusFirstInput focuses the first input element on the page.
func FocusFirstInput() Step {
	return Step{
		Description: "focus first input",
		Action: func(ctx context.Context, p Page) error {
			return p.FocusFirstInput(ctx)
		},
	}
}

// ClearFirstInput empties the first input element on the page.
func ClearFirstInput() Step {
	return Step{
		Description: "clear first input",
		Action: func(ctx context.Context, p Page) error {
			return p.ClearFirstInput(ctx)
		},
	}
}

// Settle pauses for the configured settle time. It is only for transitions that give nothing
// to wait on, such as a form reacting to what was typed into it.
func (t *T) Settle() Step {
	d := t.env.cfg.Waits.Settle
	return Step{
		Description: fmt.Sprintf("settle for %s", d),
		Action: func(ctx context.Context, _ Page) error {
			return browser.Pause(ctx, d)
		},
	}
}
