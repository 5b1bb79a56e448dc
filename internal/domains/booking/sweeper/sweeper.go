// Package sweeper periodically cancels bookings whose payment window has passed.
package sweeper

import (
	"context"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Expirer interface {
	SweepExpired(ctx context.Context) (dto.SweepResponse, error)
}

type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	otel     otel.Otel

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(expirer Expirer, cfg *config.Config, ot otel.Otel) *Sweeper {
	interval := time.Duration(cfg.Booking.SweepIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return NewWithInterval(expirer, interval, ot)
}

func NewWithInterval(expirer Expirer, interval time.Duration, ot otel.Otel) *Sweeper {
	return &Sweeper{expirer: expirer, interval: interval, otel: ot}
}

// Start runs a sweep immediately and then once per interval until Stop is called
// or ctx is done. Calling Start on a running sweeper does nothing.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx, s.done)

	log.Info().Dur("interval", s.interval).Msg("expiry sweeper started")
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	log.Info().Msg("expiry sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".sweeper.Sweep")
	defer scope.End()

	res, err := s.expirer.SweepExpired(ctx)
	scope.SetAttribute("sweeper.cancelled", res.Count)

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("cancelled", res.Count).Msg("expiry sweep finished with errors")

		return
	}

	if res.Count > 0 {
		log.Info().Int("cancelled", res.Count).Msg("expired bookings cancelled")
	}
}
