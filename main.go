package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coinos/wallet-ui-tests/browser"
	"github.com/coinos/wallet-ui-tests/config"
	"github.com/coinos/wallet-ui-tests/framework"
	"github.com/coinos/wallet-ui-tests/logging"
	"github.com/coinos/wallet-ui-tests/wallettests"
)

// errTestsFailed makes the process exit with a failure status without printing anything more;
// the results have already been reported.
var errTestsFailed = errors.New("some scenarios failed")

func main() {
	cmd, err := newRootCommand(os.Stdout)
	if err == nil {
		err = cmd.Execute()
	}
	if err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) (*cobra.Command, error) {
	var params commandParams
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "wallet-ui-tests",
		Short:         "End-to-end browser tests for the coinos wallet web application",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadFile(v, params.configFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runSuite(cmd, out, &params, cfg)
		},
	}
	if err := params.addFlags(cmd, v); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runSuite(cmd *cobra.Command, out io.Writer, params *commandParams, cfg config.Config) error {
	logger, flush, err := logging.NewConsole(cfg.Logger)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Preflight.Enabled {
		if err := framework.AwaitTarget(cfg.BaseURL, cfg.Preflight.Timeout, out); err != nil {
			return fmt.Errorf("wallet application is not reachable: %w", err)
		}
	}

	launcher, err := browser.NewLauncher(cfg.BrowserSettings(), logger)
	if err != nil {
		return err
	}
	open := func(ctx context.Context, baseURL string) (wallettests.Page, error) {
		s, err := launcher.Open(ctx, baseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)
	fmt.Fprintf(out, "Running test suite against %s\n", cfg.BaseURL)

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := wallettests.RunTestSuite(ctx, open, cfg, params.filters.AsFilter, testLogger, logger)

	if launcher.Opened() != launcher.Closed() {
		logger.Error("Browser sessions were left open",
			zap.Int64("opened", launcher.Opened()), zap.Int64("closed", launcher.Closed()))
	} else {
		logger.Debug("All browser sessions closed", zap.Int64("sessions", launcher.Opened()))
	}

	fmt.Fprintln(out)
	framework.PrintResults(out, results)

	if cfg.Report.File != "" {
		if err := framework.WriteReportFile(cfg.Report.File, results); err != nil {
			logger.Error("Could not write report", zap.String("file", cfg.Report.File), zap.Error(err))
		} else {
			logger.Info("Wrote report", zap.String("file", cfg.Report.File))
		}
	}

	if !results.OK() {
		if failed := framework.FailedScenarioNames(results); len(failed) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "To run only the failed scenarios again:")
			fmt.Fprintf(out, "  %s\n", params.rerunCommand(os.Args[0], cmd, failed))
		}
		return errTestsFailed
	}
	return nil
}
