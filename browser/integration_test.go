package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const smokePage = `<!DOCTYPE html>
<html><body>
<p>Send and receive bitcoin</p>
<input id="name"><input id="email">
<span onclick="document.getElementById('out').textContent = 'clicked ' + document.getElementById('name').value">Use Anonymously</span>
<div id="out"></div>
</body></html>`

// TestDriversAgainstRealBrowser drives a local page with each driver. It needs a Chromium
// installation and is skipped with -short.
func TestDriversAgainstRealBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	execPath, found := launcher.LookPath()
	if !found {
		t.Skip("no Chromium installation found")
	}

	handler := httphelpers.HandlerWithResponse(http.StatusOK,
		http.Header{"Content-Type": {"text/html; charset=utf-8"}}, []byte(smokePage))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		for _, driverName := range []string{DriverChromedp, DriverRod} {
			t.Run(driverName, func(t *testing.T) {
				cfg := Config{
					Driver:       driverName,
					Headless:     true,
					ExecPath:     execPath,
					WaitTimeout:  5 * time.Second,
					PollInterval: 50 * time.Millisecond,
				}
				l, err := NewLauncher(cfg, zaptest.NewLogger(t))
				require.NoError(t, err)

				ctx := context.Background()
				s, err := l.Open(ctx, server.URL+"/")
				require.NoError(t, err)
				defer func() {
					assert.NoError(t, s.Close())
					assert.Equal(t, l.Opened(), l.Closed())
				}()

				text, err := s.BodyText(ctx)
				require.NoError(t, err)
				assert.Contains(t, text, "Send and receive bitcoin")

				path, err := s.LocationPath(ctx)
				require.NoError(t, err)
				assert.Equal(t, "/", path)

				require.NoError(t, s.FocusFirstInput(ctx))
				require.NoError(t, s.TypeText(ctx, "penguinfan"))
				require.NoError(t, s.ClickWhenPresent(ctx, ByText("span", "Use Anonymously")))

				err = Until(ctx, 5*time.Second, 50*time.Millisecond, func(ctx context.Context) (bool, error) {
					markup, err := s.BodyMarkup(ctx)
					return err == nil && strings.Contains(markup, "clicked penguinfan"), err
				})
				assert.NoError(t, err)

				inputs, err := s.Find(ctx, ByCSS("input"))
				require.NoError(t, err)
				assert.Len(t, inputs, 2)

				shot, err := s.Screenshot(ctx)
				require.NoError(t, err)
				assert.NotEmpty(t, shot)
			})
		}
	})
}
