package browser

import (
	"fmt"
	"time"
)

const (
	DriverChromedp = "chromedp"
	DriverRod      = "rod"
)

// Config controls how sessions are launched and how long their operations may take.
type Config struct {
	Driver   string
	Headless bool
	ExecPath string

	// LaunchTimeout bounds starting the browser and the initial navigation settling.
	LaunchTimeout time.Duration
	// ActionTimeout bounds each primitive, including later navigations.
	ActionTimeout time.Duration
	// WaitTimeout bounds Require and condition waits built on Until.
	WaitTimeout  time.Duration
	PollInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Driver == "" {
		c.Driver = DriverChromedp
	}
	if c.LaunchTimeout <= 0 {
		c.LaunchTimeout = 60 * time.Second
	}
	if c.ActionTimeout <= 0 {
		c.ActionTimeout = 30 * time.Second
	}
	if c.WaitTimeout <= 0 {
		c.WaitTimeout = 10 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	return c
}

func driverFor(name string) (driverFactory, error) {
	switch name {
	case DriverChromedp:
		return newChromedpDriver, nil
	case DriverRod:
		return newRodDriver, nil
	default:
		return nil, fmt.Errorf("unknown browser driver %q (expected %q or %q)", name, DriverChromedp, DriverRod)
	}
}
