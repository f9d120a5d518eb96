package wallettests

import (
	"github.com/coinos/wallet-ui-tests/browser"
)

// anonymousUserLabel is the name an anonymous account is shown under.
const anonymousUserLabel = "satoshi"

// settingsEntryIndex picks the settings entry out of the nested divs that all contain the
// word "Settings".
const settingsEntryIndex = 5

// DoCredentialChangeTests creates an anonymous account, gives it a username and password in
// the settings page, signs out, and signs back in with the new credentials.
func DoCredentialChangeTests(t *T) {
	cfg := t.Config()
	username := NewUsername(cfg.UsernamePrefix)
	t.Debug("Using username %s", username)

	t.RunScenario(Steps(
		[]Step{
			ClickSpan("Use Anonymously"),
			t.WaitFor(showsEmptyWallet(BodyText)),
			ClickSpan(anonymousUserLabel),
			Click(browser.ByText("div", "Settings").Nth(settingsEntryIndex)),
		},
		t.Eventually(showsSettingsPage(), `Setting page loads OK (shows 'Your public page')`),
		[]Step{
			FocusFirstInput(),
			ClearFirstInput(),
			Type(username),
			t.Settle(),
			ClickSpan("Save"),
		},
		t.Eventually(Shows(BodyText, cfg.BaseURL+username), "Username updated successfully"),
		[]Step{
			ClickSpan("Change Password"),
			Type(cfg.Password),
			Press(browser.KeyTab),
			Type(cfg.Password),
			t.Settle(),
			ClickSpan("Save"),
			t.Settle(),
			ClickSpan(username),
			Click(browser.ByText("button", "Sign Out")),
		},
		t.Eventually(showsLandingPage(), "Signed out ok (we are now back to default message)"),
		LoginForm{Username: username, Password: cfg.Password}.Submit(),
		t.Eventually(showsEmptyWallet(BodyText), "Logged back in OK with the updated credentials"),
	)...)
}
