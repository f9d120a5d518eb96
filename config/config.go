// Package config loads the harness configuration from a file, the environment, and command
// line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/coinos/wallet-ui-tests/browser"
)

// EnvPrefix is prepended to environment variable names, e.g. WALLET_UI_BASEURL or
// WALLET_UI_BROWSER_DRIVER.
const EnvPrefix = "WALLET_UI"

type Config struct {
	// BaseURL is the root address of the application under test. It always ends in "/".
	BaseURL string `mapstructure:"baseUrl" yaml:"baseUrl"`
	// Email is used by the registration scenarios, which are skipped if it is empty.
	Email          string          `mapstructure:"email" yaml:"email"`
	Password       string          `mapstructure:"password" yaml:"password"`
	UsernamePrefix string          `mapstructure:"usernamePrefix" yaml:"usernamePrefix"`
	Browser        BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Waits          WaitsConfig     `mapstructure:"waits" yaml:"waits"`
	Logger         LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Report         ReportConfig    `mapstructure:"report" yaml:"report"`
	Preflight      PreflightConfig `mapstructure:"preflight" yaml:"preflight"`
}

type BrowserConfig struct {
	Driver        string        `mapstructure:"driver" yaml:"driver"`
	Headless      bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath      string        `mapstructure:"execPath" yaml:"execPath"`
	LaunchTimeout time.Duration `mapstructure:"launchTimeout" yaml:"launchTimeout"`
	ActionTimeout time.Duration `mapstructure:"actionTimeout" yaml:"actionTimeout"`
}

type WaitsConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	// Settle is the fixed pause after typing into a form and before submitting it.
	Settle time.Duration `mapstructure:"settle" yaml:"settle"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"maxSize" yaml:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge" yaml:"maxAge"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

type ReportConfig struct {
	File          string `mapstructure:"file" yaml:"file"`
	ScreenshotDir string `mapstructure:"screenshotDir" yaml:"screenshotDir"`
}

type PreflightConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SetDefaults registers a default for every key. Keys without a default are not seen by
// AutomaticEnv when unmarshaling, so even empty defaults matter.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("baseUrl", "")
	v.SetDefault("email", "")
	v.SetDefault("password", "anarchocapitalist")
	v.SetDefault("usernamePrefix", "penguinfan")

	v.SetDefault("browser.driver", browser.DriverChromedp)
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.execPath", "")
	v.SetDefault("browser.launchTimeout", "60s")
	v.SetDefault("browser.actionTimeout", "30s")

	v.SetDefault("waits.timeout", "10s")
	v.SetDefault("waits.interval", "200ms")
	v.SetDefault("waits.settle", browser.DefaultPause)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.maxSize", 10)
	v.SetDefault("logger.maxBackups", 3)
	v.SetDefault("logger.maxAge", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("report.file", "")
	v.SetDefault("report.screenshotDir", "")

	v.SetDefault("preflight.enabled", true)
	v.SetDefault("preflight.timeout", "10s")
}

// NewViper returns a viper instance with defaults and environment variable lookup set up.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the named config file, or ./config.yaml if path is empty. A missing default
// file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and normalizes BaseURL to end in "/".
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("baseUrl is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseUrl: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("baseUrl must be an absolute http or https address, got %q", c.BaseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.BaseURL = u.String()

	switch c.Browser.Driver {
	case browser.DriverChromedp, browser.DriverRod:
	default:
		return fmt.Errorf("browser.driver must be %q or %q, got %q",
			browser.DriverChromedp, browser.DriverRod, c.Browser.Driver)
	}
	if c.Password == "" {
		return errors.New("password must not be empty")
	}
	if c.Waits.Timeout <= 0 {
		return errors.New("waits.timeout must be positive")
	}
	return nil
}

// BrowserSettings converts the browser and wait settings into a browser.Config.
func (c Config) BrowserSettings() browser.Config {
	return browser.Config{
		Driver:        c.Browser.Driver,
		Headless:      c.Browser.Headless,
		ExecPath:      c.Browser.ExecPath,
		LaunchTimeout: c.Browser.LaunchTimeout,
		ActionTimeout: c.Browser.ActionTimeout,
		WaitTimeout:   c.Waits.Timeout,
		PollInterval:  c.Waits.Interval,
	}
}
