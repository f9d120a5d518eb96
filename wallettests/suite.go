package wallettests

import (
	"context"

	"go.uber.org/zap"

	"github.com/coinos/wallet-ui-tests/config"
	"github.com/coinos/wallet-ui-tests/framework"
)

// Scenario names, as used in the report and matched by --run and --skip.
const (
	HomepageScenario               = "Can open homepage"
	AnonymousAccountScenario       = "Can create an anonymous account"
	CredentialChangeScenario       = "Can change username and password"
	RegistrationScenario           = "Can register an account"
	RegistrationValidationScenario = "Cannot register account if input fields are invalid"
)

// RunTestSuite runs every scenario in order, each in its own session from open.
func RunTestSuite(
	ctx context.Context,
	open OpenFunc,
	cfg config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
	logger *zap.Logger,
) framework.Results {
	env := &environment{ctx: ctx, open: open, cfg: cfg}
	return framework.Run(filter, testLogger, logger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Run(HomepageScenario, DoHomepageTests)
		t.Run(AnonymousAccountScenario, DoAnonymousAccountTests)
		t.Run(CredentialChangeScenario, DoCredentialChangeTests)
		t.Run(RegistrationScenario, DoRegistrationTests)
		t.Run(RegistrationValidationScenario, DoRegistrationValidationTests)
	})
}
