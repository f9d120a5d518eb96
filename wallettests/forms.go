package wallettests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/coinos/wallet-ui-tests/browser"
)

// RegistrationForm is what gets typed into the registration form. The form's fields are, in tab
// order: name, email, phone, password. An empty Name or Email leaves that field blank.
type RegistrationForm struct {
	Name     string
	Email    string
	Phone    ldvalue.OptionalString
	Password string
}

// Fill focuses the form's first field and types each value, tabbing from field to field.
// Blank fields are tabbed over, which is how a user skips them.
func (f RegistrationForm) Fill() []Step {
	steps := []Step{FocusFirstInput()}
	for _, value := range []string{f.Name, f.Email, f.Phone.StringValue()} {
		if value != "" {
			steps = append(steps, Type(value))
		}
		steps = append(steps, Press(browser.KeyTab))
	}
	return append(steps, Type(f.Password))
}

// LoginForm is the sign-in form shown on the landing page: username, then password.
type LoginForm struct {
	Username string
	Password string
}

// Submit fills in the form and submits it with Enter.
func (f LoginForm) Submit() []Step {
	return []Step{
		FocusFirstInput(),
		Type(f.Username),
		Press(browser.KeyTab),
		Type(f.Password),
		Press(browser.KeyEnter),
	}
}
