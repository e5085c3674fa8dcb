package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/openshelf/catalog/internal/catalog/store"
)

// HousekeepingService periodically purges dead revocation records so the
// revoked_tokens table cannot grow without bound. The purge is a resource
// bound, not a security mechanism: IsTokenRevoked already ignores records
// older than the revocation window.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Window   time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a sweeper. Interval defaults to 1h, the
// window to the default revocation window.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, window time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if window <= 0 {
		window = DefaultRevocationWindow
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Window:   window,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep once at startup so restarts don't inherit a backlog.
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes revocation records that are past the window or past their own
// token expiry, whichever came first.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	now := time.Now().UTC()

	deleted, err := s.Store.RevokedTokens().DeleteExpiredRevokedTokens(ctx, now.Add(-s.Window), now)
	if err != nil {
		s.Logger.Error("failed to delete expired revoked tokens", "error", err)
		return
	}
	s.Logger.Debug("housekeeping sweep completed", "deleted", deleted)
}
