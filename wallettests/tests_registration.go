package wallettests

const (
	registerPath = "/register"
	homePath     = "/home"
	// invalidEmail is not shaped like an email address at all.
	invalidEmail = "zfsdfasdfasdf"
)

// DoRegistrationTests registers a new account through the registration form and checks that
// the new user lands on the home page, logged in.
func DoRegistrationTests(t *T) {
	t.RequireEmail()
	cfg := t.Config()
	username := NewUsername(cfg.UsernamePrefix)
	t.Debug("Using username %s", username)

	form := RegistrationForm{Name: username, Email: cfg.Email, Password: cfg.Password}
	t.RunScenario(Steps(
		[]Step{ClickSpan("Register An Account"), t.WaitForPath(registerPath)},
		form.Fill(),
		[]Step{t.Settle(), ClickSpan("Register"), t.WaitForPath(homePath)},
		t.Eventually(showsEmptyWallet(BodyMarkup), `Anonymous account created OK (displays "No payments yet")`),
		[]Step{
			t.Check(showsZeroBalance(BodyMarkup), "New account page shows a 0.00 balance"),
			t.CheckPath(homePath, "resulting URL pathname is /home"),
			t.Check(Shows(BodyMarkup, username), "The new user is logged in (userName is displayed on page)"),
		},
	)...)
}

// DoRegistrationValidationTests submits the registration form three times in one session, each
// time with one field missing or invalid, and checks that the form refuses it.
func DoRegistrationValidationTests(t *T) {
	t.RequireEmail()
	cfg := t.Config()
	username := NewUsername(cfg.UsernamePrefix)
	registerURL := cfg.BaseURL + "register"

	t.RunScenario(Steps(
		t.submitInvalidRegistration(registerURL,
			RegistrationForm{Email: cfg.Email, Password: cfg.Password}),
		t.Eventually(warnsNameRequired(), `User is warned that 'Name is required'`),
		[]Step{
			t.Check(noEmailWarning(), "User not warned about email since that was entered OK"),
			t.stillOnRegisterPage(),
		},

		t.submitInvalidRegistration(registerURL,
			RegistrationForm{Name: username, Password: cfg.Password}),
		[]Step{
			t.WaitFor(warnsEmailRequired()),
			t.Check(noNameWarning(), "User is not warned about name since that was entered OK"),
			t.Check(warnsEmailRequired(), `User is warned that 'Email is required'`),
			t.stillOnRegisterPage(),
		},

		t.submitInvalidRegistration(registerURL,
			RegistrationForm{Name: username, Email: invalidEmail, Password: cfg.Password}),
		t.Eventually(warnsEmailInvalid(), `User is warned that 'Email must be valid'`),
		[]Step{t.stillOnRegisterPage()},
	)...)
}

// submitInvalidRegistration reloads the registration page, fills in form, and submits it. The
// steps run against whatever session the scenario passes them.
func (t *T) submitInvalidRegistration(registerURL string, form RegistrationForm) []Step {
	return Steps(
		[]Step{Navigate(registerURL)},
		form.Fill(),
		[]Step{t.Settle(), ClickSpan("Register")},
	)
}

func (t *T) stillOnRegisterPage() Step {
	return t.CheckPath(registerPath, "user was prevented from registering (URL did not change)")
}
