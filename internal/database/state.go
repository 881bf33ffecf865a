package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnState tracks whether the store is reachable. It is owned by the store
// lifecycle and read by the health endpoint.
type ConnState struct {
	connected atomic.Bool
}

// NewConnState returns a state that starts disconnected.
func NewConnState() *ConnState {
	return &ConnState{}
}

// Connected reports the last observed connectivity.
func (s *ConnState) Connected() bool {
	return s.connected.Load()
}

// Set records connectivity and reports whether it changed.
func (s *ConnState) Set(connected bool) bool {
	return s.connected.Swap(connected) != connected
}

// Watch pings the store every interval until ctx is done, then marks the
// state disconnected.
func (s *ConnState) Watch(ctx context.Context, pinger Pinger, interval time.Duration, logger zerolog.Logger) {
	logger = logger.With().Str("component", "db-monitor").Logger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Set(false)
			return
		case <-ticker.C:
			s.check(ctx, pinger, interval, logger)
		}
	}
}

func (s *ConnState) check(ctx context.Context, pinger Pinger, timeout time.Duration, logger zerolog.Logger) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := pinger.Ping(pingCtx)
	if !s.Set(err == nil) {
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("database disconnected")
		return
	}
	logger.Info().Msg("database reconnected")
}
