package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPause is the settle time used when no other duration is configured.
const DefaultPause = time.Second

const defaultPollInterval = 200 * time.Millisecond

// ErrWaitTimeout is returned by Until when the condition never held.
var ErrWaitTimeout = errors.New("condition did not hold before the timeout")

// Condition reports whether the awaited state has been reached. An error stops the wait.
type Condition func(ctx context.Context) (bool, error)

// Until evaluates cond immediately and then every interval until it holds, it fails, or timeout
// elapses. The context passed to cond carries the overall deadline.
func Until(ctx context.Context, timeout, interval time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		ok, err := cond(waitCtx)
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil {
				return fmt.Errorf("%w (%s)", ErrWaitTimeout, timeout)
			}
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w (%s)", ErrWaitTimeout, timeout)
		case <-ticker.C:
		}
	}
}

// Pause suspends the caller for d with no early wake-up, other than the context ending. It is
// for transitions that expose no condition to wait on.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
