package wallettests

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/coinos/wallet-ui-tests/browser"
)

// fakeWallet imitates the wallet application closely enough for the scenarios to run against
// it. Accounts are shared by every page it opens, as they would be on the real server.
type fakeWallet struct {
	baseURL string

	noAnonymousEntry   bool
	skipNameValidation bool
	launchErr          error

	mu       sync.Mutex
	accounts map[string]string
	opened   int
	closed   int
	pages    []*fakePage
}

func newFakeWallet(baseURL string) *fakeWallet {
	return &fakeWallet{baseURL: baseURL, accounts: make(map[string]string)}
}

func (w *fakeWallet) open(ctx context.Context, baseURL string) (Page, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.launchErr != nil {
		return nil, &browser.LaunchError{URL: baseURL, Err: w.launchErr}
	}
	w.opened++
	p := &fakePage{wallet: w}
	if err := p.Navigate(ctx, baseURL); err != nil {
		return nil, err
	}
	w.pages = append(w.pages, p)
	return p, nil
}

func (w *fakeWallet) counts() (opened, closed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opened, w.closed
}

type fakeElement struct {
	tag, text string
	onClick   func()
}

func (e fakeElement) Click(context.Context) error {
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e fakeElement) Connected(context.Context) (bool, error) { return true, nil }

type fakePage struct {
	wallet     *fakeWallet
	path       string
	user       string
	menuOpen   bool
	pwDialog   bool
	inputs     []string
	focus      int
	messages   []string
	closeCalls int
}

func (p *fakePage) goTo(path string) {
	p.path = path
	p.menuOpen = false
	p.pwDialog = false
	p.messages = nil
	p.focus = -1
	switch path {
	case "/":
		p.inputs = []string{"", ""}
	case "/register":
		p.inputs = []string{"", "", "", ""}
	case "/settings":
		p.inputs = []string{p.user}
	default:
		p.inputs = nil
	}
}

func (p *fakePage) elements() []fakeElement {
	switch p.path {
	case "/":
		els := []fakeElement{{tag: "p", text: landingMessage}}
		if !p.wallet.noAnonymousEntry {
			els = append(els, fakeElement{tag: "span", text: "Use Anonymously", onClick: p.useAnonymously})
		}
		return append(els, fakeElement{tag: "span", text: "Register An Account", onClick: func() { p.goTo("/register") }})
	case "/home":
		els := []fakeElement{
			{tag: "p", text: emptyWalletMsg},
			{tag: "p", text: zeroBalance},
			{tag: "span", text: p.user, onClick: func() { p.menuOpen = true }},
		}
		return append(els, p.menu()...)
	case "/settings":
		els := []fakeElement{
			{tag: "p", text: settingsMessage},
			{tag: "p", text: p.wallet.baseURL + p.user},
			{tag: "span", text: "Save", onClick: p.save},
			{tag: "span", text: "Change Password", onClick: p.openPasswordDialog},
			{tag: "span", text: p.user, onClick: func() { p.menuOpen = true }},
		}
		return append(els, p.menu()...)
	case "/register":
		return []fakeElement{{tag: "span", text: "Register", onClick: p.register}}
	}
	return nil
}

// menu is the user menu: the settings entry is nested in several divs that all contain its text.
func (p *fakePage) menu() []fakeElement {
	if !p.menuOpen {
		return nil
	}
	var els []fakeElement
	for i := 0; i < 5; i++ {
		els = append(els, fakeElement{tag: "div", text: "Wallet Settings Sign Out"})
	}
	els = append(els, fakeElement{tag: "div", text: "Settings", onClick: func() { p.goTo("/settings") }})
	return append(els, fakeElement{tag: "button", text: "Sign Out", onClick: func() {
		p.user = ""
		p.goTo("/")
	}})
}

func (p *fakePage) useAnonymously() {
	p.wallet.accounts["satoshi"] = ""
	p.user = "satoshi"
	p.goTo("/home")
}

func (p *fakePage) openPasswordDialog() {
	p.pwDialog = true
	p.inputs = []string{"", ""}
	p.focus = 0
}

func (p *fakePage) save() {
	accounts := p.wallet.accounts
	if p.pwDialog {
		if p.inputs[0] != "" && p.inputs[0] == p.inputs[1] {
			accounts[p.user] = p.inputs[0]
		}
		p.pwDialog = false
		p.inputs = []string{p.user}
		return
	}
	renamed := p.inputs[0]
	accounts[renamed] = accounts[p.user]
	delete(accounts, p.user)
	p.user = renamed
}

func (p *fakePage) register() {
	name, email, password := p.inputs[0], p.inputs[1], p.inputs[3]
	var messages []string
	if name == "" && !p.wallet.skipNameValidation {
		messages = append(messages, nameRequired)
	}
	if email == "" {
		messages = append(messages, emailRequired)
	} else if !strings.Contains(email, "@") {
		messages = append(messages, emailMustBeValid)
	}
	if len(messages) > 0 {
		p.messages = messages
		return
	}
	p.wallet.accounts[name] = password
	p.user = name
	p.goTo("/home")
}

func (p *fakePage) login() {
	username, password := p.inputs[0], p.inputs[1]
	if stored, ok := p.wallet.accounts[username]; ok && stored == password {
		p.user = username
		p.goTo("/home")
		return
	}
	p.messages = []string{"Invalid credentials"}
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, p.wallet.baseURL) {
		return fmt.Errorf("unexpected url %s", url)
	}
	p.goTo("/" + strings.TrimPrefix(url, p.wallet.baseURL))
	return nil
}

func (p *fakePage) ClickWhenPresent(ctx context.Context, q browser.Query) error {
	p.wallet.mu.Lock()
	defer p.wallet.mu.Unlock()
	var matches []fakeElement
	for _, e := range p.elements() {
		if (q.Tag() == "*" || q.Tag() == e.tag) && strings.Contains(e.text, q.Text()) {
			matches = append(matches, e)
		}
	}
	i, ok := q.Index()
	if !ok {
		i = 0
	}
	if i >= len(matches) {
		return &browser.LocatorTimeoutError{Query: q}
	}
	return matches[i].Click(ctx)
}

func (p *fakePage) TypeText(ctx context.Context, text string) error {
	if p.focus >= 0 && p.focus < len(p.inputs) {
		p.inputs[p.focus] += text
	}
	return nil
}

func (p *fakePage) PressKey(ctx context.Context, key browser.Key) error {
	p.wallet.mu.Lock()
	defer p.wallet.mu.Unlock()
	switch key {
	case browser.KeyTab:
		p.focus++
	case browser.KeyEnter:
		if p.path == "/" {
			p.login()
		}
	}
	return nil
}

func (p *fakePage) FocusFirstInput(ctx context.Context) error {
	if len(p.inputs) == 0 {
		return &browser.LocatorTimeoutError{Query: browser.ByCSS("input")}
	}
	p.focus = 0
	return nil
}

func (p *fakePage) ClearFirstInput(ctx context.Context) error {
	if len(p.inputs) == 0 {
		return &browser.LocatorTimeoutError{Query: browser.ByCSS("input")}
	}
	p.inputs[0] = ""
	return nil
}

func (p *fakePage) BodyText(ctx context.Context) (string, error) {
	var lines []string
	for _, e := range p.elements() {
		lines = append(lines, e.text)
	}
	return strings.Join(append(lines, p.messages...), "\n"), nil
}

func (p *fakePage) BodyMarkup(ctx context.Context) (string, error) {
	var b strings.Builder
	for _, e := range p.elements() {
		fmt.Fprintf(&b, "<%s>%s</%s>", e.tag, e.text, e.tag)
	}
	for _, m := range p.messages {
		fmt.Fprintf(&b, `<div class="v-messages__message">%s</div>`, m)
	}
	return b.String(), nil
}

func (p *fakePage) LocationPath(ctx context.Context) (string, error) {
	return p.path, nil
}

func (p *fakePage) Screenshot(ctx context.Context) ([]byte, error) {
	return []byte("png"), nil
}

func (p *fakePage) Close() error {
	p.wallet.mu.Lock()
	defer p.wallet.mu.Unlock()
	p.closeCalls++
	p.wallet.closed++
	return nil
}
