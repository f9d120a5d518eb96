package wallettests

// DoHomepageTests checks that the landing page loads.
func DoHomepageTests(t *T) {
	t.RunScenario(
		t.Eventually(showsLandingPage(), `Homepage loads OK (displays "Send and receive bitcoin")`)...,
	)
}

// DoAnonymousAccountTests checks that an anonymous account can be created from the landing
// page and starts out empty.
func DoAnonymousAccountTests(t *T) {
	t.RunScenario(Steps(
		[]Step{ClickSpan("Use Anonymously")},
		t.Eventually(showsEmptyWallet(BodyText), `Anonymous account created OK (displays "No payments yet")`),
		[]Step{t.Check(showsZeroBalance(BodyText), "New account page shows a 0.00 balance")},
	)...)
}
