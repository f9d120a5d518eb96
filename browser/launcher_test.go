package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLauncher(factory driverFactory) *Launcher {
	return &Launcher{cfg: testConfig(), logger: zap.NewNop(), newDriver: factory}
}

func TestNewLauncherRejectsUnknownDriver(t *testing.T) {
	_, err := NewLauncher(Config{Driver: "firefox"}, nil)
	assert.Error(t, err)
}

func TestNewLauncherDefaultsToChromedp(t *testing.T) {
	l, err := NewLauncher(Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DriverChromedp, l.cfg.Driver)
	assert.Greater(t, l.cfg.LaunchTimeout, l.cfg.WaitTimeout)
}

func TestOpenNavigatesToBaseURL(t *testing.T) {
	d := newFakeDriver()
	l := newTestLauncher(func(context.Context, Config, *zap.Logger) (driver, error) { return d, nil })

	s, err := l.Open(context.Background(), "http://wallet/")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, []string{"http://wallet/"}, d.visited)
	assert.Equal(t, int64(1), l.Opened())
	assert.Equal(t, int64(0), l.Closed())

	require.NoError(t, s.Close())
	assert.Equal(t, int64(1), l.Closed())
}

func TestOpenFailsWhenBrowserDoesNotStart(t *testing.T) {
	cause := errors.New("executable not found")
	l := newTestLauncher(func(context.Context, Config, *zap.Logger) (driver, error) { return nil, cause })

	_, err := l.Open(context.Background(), "http://wallet/")
	var le *LaunchError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "http://wallet/", le.URL)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, int64(0), l.Opened())
}

func TestOpenClosesBrowserWhenNavigationFails(t *testing.T) {
	d := newFakeDriver()
	d.navigateErr = errors.New("net::ERR_CONNECTION_REFUSED")
	l := newTestLauncher(func(context.Context, Config, *zap.Logger) (driver, error) { return d, nil })

	_, err := l.Open(context.Background(), "http://wallet/")
	var le *LaunchError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, d.closed)
	assert.Equal(t, l.Opened(), l.Closed())
}

func TestSessionIDsAreUnique(t *testing.T) {
	l := newTestLauncher(func(context.Context, Config, *zap.Logger) (driver, error) { return newFakeDriver(), nil })
	a, err := l.Open(context.Background(), "http://wallet/")
	require.NoError(t, err)
	b, err := l.Open(context.Background(), "http://wallet/")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestOpenGivesUpOnBrowserThatNeverStarts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the browser executable")
	}
	bin := filepath.Join(t.TempDir(), "chromium")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755))

	for _, driverName := range []string{DriverChromedp, DriverRod} {
		t.Run(driverName, func(t *testing.T) {
			l, err := NewLauncher(Config{
				Driver:        driverName,
				Headless:      true,
				ExecPath:      bin,
				LaunchTimeout: 300 * time.Millisecond,
			}, nil)
			require.NoError(t, err)

			start := time.Now()
			_, err = l.Open(context.Background(), "http://wallet/")
			var le *LaunchError
			require.ErrorAs(t, err, &le)
			assert.Less(t, time.Since(start), 5*time.Second)
			assert.Equal(t, int64(0), l.Opened())
		})
	}
}
