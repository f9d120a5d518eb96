package wallettests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/coinos/wallet-ui-tests/framework"
)

// Step is one action in a scenario. A non-nil error from Action aborts the scenario.
type Step struct {
	Description string
	Action      func(ctx context.Context, p Page) error
}

type scenarioState string

const (
	stateNotStarted    scenarioState = "NotStarted"
	stateSessionOpen   scenarioState = "SessionOpen"
	stateRunning       scenarioState = "Running"
	stateCompleted     scenarioState = "Completed"
	stateFailed        scenarioState = "Failed"
	stateSessionClosed scenarioState = "SessionClosed"
)

type scenarioRun struct {
	t     *T
	log   *zap.Logger
	state scenarioState
}

func (r *scenarioRun) enter(s scenarioState) {
	r.log.Debug("Scenario state changed", zap.String("from", string(r.state)), zap.String("to", string(s)))
	r.state = s
}

// RunScenario opens one session, runs steps against it in order, and closes the session before
// returning, including when a step fails or panics. A failing step aborts the scenario with a
// *framework.StepError; the steps after it do not run.
func (t *T) RunScenario(steps ...Step) {
	ctx := t.env.ctx
	run := &scenarioRun{t: t, log: t.context.DebugLogger(), state: stateNotStarted}

	page, err := t.env.open(ctx, t.env.cfg.BaseURL)
	if err != nil {
		run.enter(stateFailed)
		run.enter(stateSessionClosed)
		t.context.Abort(&framework.StepError{Description: "open session", Err: err})
	}
	run.enter(stateSessionOpen)

	completed := false
	defer func() {
		if !completed || t.context.Failed() {
			run.enter(stateFailed)
		} else {
			run.enter(stateCompleted)
		}
		if err := page.Close(); err != nil {
			run.log.Warn("Session did not close cleanly", zap.Error(err))
		}
		run.enter(stateSessionClosed)
	}()

	run.enter(stateRunning)
	for i, step := range steps {
		run.log.Debug("Running step", zap.Int("step", i+1), zap.String("description", step.Description))
		if err := step.Action(ctx, page); err != nil {
			t.saveScreenshot(ctx, page)
			t.context.Abort(&framework.StepError{Step: i + 1, Description: step.Description, Err: err})
		}
	}
	completed = true
}

// saveScreenshot writes the current page to the screenshot directory, if one is configured.
// Problems are logged rather than reported, since the scenario is failing anyway.
func (t *T) saveScreenshot(ctx context.Context, p Page) {
	dir := t.env.cfg.Report.ScreenshotDir
	if dir == "" {
		return
	}
	log := t.context.DebugLogger()
	if ctx.Err() != nil {
		// the page can't be reached any more
		ctx = context.Background()
	}
	data, err := p.Screenshot(ctx)
	if err != nil {
		log.Warn("Could not capture screenshot", zap.Error(err))
		return
	}
	path := filepath.Join(dir, screenshotName(t.context.ID())+".png")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("Could not create screenshot directory", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn("Could not write screenshot", zap.Error(err))
		return
	}
	log.Info("Saved screenshot", zap.String("path", path))
}

func screenshotName(id framework.TestID) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, id.String())
}

// Navigate loads url and waits until the network is almost idle.
func Navigate(url string) Step {
	return Step{
		Description: fmt.Sprintf("navigate to %s", url),
		Action: func(ctx context.Context, p Page) error {
			return p.Navigate(ctx, url)
		},
	}
}

// Steps concatenates groups of steps.
func Steps(groups ...[]Step) []Step {
	var all []Step
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
