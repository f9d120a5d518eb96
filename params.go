package main

import (
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coinos/wallet-ui-tests/browser"
	"github.com/coinos/wallet-ui-tests/framework"
)

type commandParams struct {
	configFile string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

// flagBindings lists the config keys that flags can override.
var flagBindings = []struct{ key, flag string }{
	{"baseUrl", "base-url"},
	{"email", "email"},
	{"browser.driver", "driver"},
	{"browser.headless", "headless"},
	{"browser.execPath", "browser-path"},
	{"logger.level", "log-level"},
	{"logger.file", "log-file"},
	{"report.file", "report"},
	{"report.screenshotDir", "screenshots"},
	{"preflight.enabled", "preflight"},
}

func (c *commandParams) addFlags(cmd *cobra.Command, v *viper.Viper) error {
	fs := cmd.Flags()
	fs.StringVarP(&c.configFile, "config", "c", "", "config file (default is ./config.yaml)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenarios not to run")
	fs.BoolVar(&c.debug, "debug", false, "show debug output for failed scenarios")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output for all scenarios")

	fs.String("base-url", "", "address of the wallet application")
	fs.String("email", "", "email address for the registration scenarios")
	fs.String("driver", browser.DriverChromedp, `browser driver, "chromedp" or "rod"`)
	fs.Bool("headless", false, "run the browser without a window")
	fs.String("browser-path", "", "Chromium executable to use instead of the default")
	fs.String("log-level", "info", "console and file log level")
	fs.String("log-file", "", "also write JSON logs to this file")
	fs.String("report", "", "write a YAML report of the results to this file")
	fs.String("screenshots", "", "save a screenshot here when a scenario is aborted")
	fs.Bool("preflight", true, "wait for the base URL to respond before starting")

	for _, fb := range flagBindings {
		if err := v.BindPFlag(fb.key, fs.Lookup(fb.flag)); err != nil {
			return err
		}
	}
	return nil
}

// rerunCommand returns a command line that repeats this run's settings but only runs the named
// scenarios.
func (c *commandParams) rerunCommand(program string, cmd *cobra.Command, scenarios []string) string {
	var b commandBuilder
	b.add(program)
	if c.configFile != "" {
		b.add("--config", c.configFile)
	}
	fs := cmd.Flags()
	for _, fb := range flagBindings {
		if fs.Changed(fb.flag) {
			b.add("--" + fb.flag + "=" + fs.Lookup(fb.flag).Value.String())
		}
	}
	if c.debug {
		b.add("--debug")
	}
	if c.debugAll {
		b.add("--debug-all")
	}
	for _, s := range scenarios {
		b.add("--run", "^"+regexp.QuoteMeta(s)+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
