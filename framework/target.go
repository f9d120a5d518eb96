package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const targetPollInterval = time.Millisecond * 100

// AwaitTarget polls the target application's root address until it answers with a non-error
// status, so that a run against an application that is down fails once, quickly, instead of
// once per scenario after a browser launch timeout.
func AwaitTarget(url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to target application at %s", url)

	client := &http.Client{Timeout: timeout}
	defer client.CloseIdleConnections()

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode < 400 {
				fmt.Fprintln(output)
				return nil
			}
			err = fmt.Errorf("target application returned status code %d", resp.StatusCode)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(targetPollInterval)
	}
}
