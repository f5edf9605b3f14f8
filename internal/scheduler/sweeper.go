package scheduler

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"
)

// HoldSweeper periodically releases room claims of bookings that were never
// paid within the hold TTL, so abandoned checkouts don't block inventory.
type HoldSweeper struct {
	bookings commands.BookingCommands
	clock    clock.Clock
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewHoldSweeper(bookings commands.BookingCommands, clk clock.Clock, cfg config.Config) *HoldSweeper {
	return &HoldSweeper{
		bookings: bookings,
		clock:    clk,
		interval: cfg.Booking.SweepInterval,
	}
}

func (s *HoldSweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

func (s *HoldSweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *HoldSweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("hold sweeper started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("hold sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *HoldSweeper) sweep(ctx context.Context) {
	released, err := s.bookings.ReleaseExpiredHolds(ctx, s.clock.Now())
	if err != nil {
		slog.Error("expired hold sweep failed", "error", err.Error())
		return
	}
	if released > 0 {
		slog.Info("released expired booking holds", "count", released)
	}
}
