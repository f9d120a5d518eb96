package browser

import (
	"fmt"
	"time"
)

// LaunchError means a session could not be opened: the browser process did not start, or the
// initial navigation never settled.
type LaunchError struct {
	URL string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not open browser session at %s: %s", e.URL, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// LocatorTimeoutError means a required element did not appear before the wait timeout.
type LocatorTimeoutError struct {
	Query   Query
	Timeout time.Duration
}

func (e *LocatorTimeoutError) Error() string {
	return fmt.Sprintf("no element matching %s appeared within %s", e.Query, e.Timeout)
}

// StaleElementError means an element was detached from the document between being located
// and being used.
type StaleElementError struct {
	Err error
}

func (e *StaleElementError) Error() string {
	return fmt.Sprintf("element is no longer attached to the page: %s", e.Err)
}

func (e *StaleElementError) Unwrap() error { return e.Err }
