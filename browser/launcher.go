package browser

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Launcher opens browser sessions. Every session it opens owns its own browser process and
// profile; nothing is shared between sessions.
type Launcher struct {
	cfg       Config
	logger    *zap.Logger
	newDriver driverFactory
	opened    atomic.Int64
	closed    atomic.Int64
}

// NewLauncher validates the configuration and returns a Launcher. No browser is started until
// Open is called.
func NewLauncher(cfg Config, logger *zap.Logger) (*Launcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	factory, err := driverFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return &Launcher{
		cfg:       cfg,
		logger:    logger.Named("browser"),
		newDriver: factory,
	}, nil
}

// Open starts a browser, navigates its page to baseURL, and waits until the network is almost
// idle. Any failure is reported as a *LaunchError, and a browser that was started is closed
// again before Open returns.
func (l *Launcher) Open(ctx context.Context, baseURL string) (*Session, error) {
	launchCtx, cancel := context.WithTimeout(ctx, l.cfg.LaunchTimeout)
	defer cancel()

	id := uuid.NewString()
	log := l.logger.With(zap.String("session_id", id), zap.String("driver", l.cfg.Driver))
	log.Debug("Launching browser", zap.Bool("headless", l.cfg.Headless))

	d, err := l.newDriver(launchCtx, l.cfg, log)
	if err != nil {
		return nil, &LaunchError{URL: baseURL, Err: err}
	}
	l.opened.Add(1)
	s := &Session{
		id:      id,
		driver:  d,
		cfg:     l.cfg,
		logger:  log,
		onClose: func() { l.closed.Add(1) },
	}

	if err := d.navigate(launchCtx, baseURL); err != nil {
		_ = s.Close()
		return nil, &LaunchError{URL: baseURL, Err: err}
	}
	log.Info("Session opened", zap.String("url", baseURL))
	return s, nil
}

// Opened returns the number of sessions whose browser was started.
func (l *Launcher) Opened() int64 { return l.opened.Load() }

// Closed returns the number of sessions whose browser was released.
func (l *Launcher) Closed() int64 { return l.closed.Load() }
