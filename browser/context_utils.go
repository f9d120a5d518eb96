package browser

import "context"

// combineContext returns a context that carries the values of primary (for chromedp, the tab it
// is attached to) and is canceled when either primary or secondary is done. secondary
// typically carries the deadline of one operation.
func combineContext(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(primary)
	if d, ok := secondary.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		combined, cancelDeadline = context.WithDeadline(combined, d)
		prev := cancel
		cancel = func() {
			cancelDeadline()
			prev()
		}
	}
	go func() {
		select {
		case <-secondary.Done():
			cancel()
		case <-combined.Done():
		}
	}()
	return combined, cancel
}
