package reclaim

import (
	"context"
	"log"
	"time"

	"barber-booking-backend/config"
	"barber-booking-backend/internal/store"
)

// Service prunes past-dated booking buckets once per day at local midnight.
// A missed fire (process down at midnight) is simply skipped; the next fire
// removes everything stale in one pass.
type Service struct {
	cfg   *config.Config
	store store.Store
	loc   *time.Location
	flush func()
}

// NewService creates the reclamation service. An unknown timezone falls back
// to the system location rather than failing startup. flush is called after
// every successful sweep so cached booking responses do not outlive the rows
// the sweep removed; pass nil when there is no response cache to invalidate.
func NewService(cfg *config.Config, s store.Store, flush func()) *Service {
	loc, err := time.LoadLocation(cfg.Reclaim.Timezone)
	if err != nil {
		log.Printf("Warning: invalid reclaim timezone %q: %v. Using local time.", cfg.Reclaim.Timezone, err)
		loc = time.Local
	}
	return &Service{cfg: cfg, store: s, loc: loc, flush: flush}
}

// Run fires the reclamation at every midnight until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.ReclaimEnabled() {
		log.Println("Reclamation job is disabled. Not starting.")
		return
	}
	log.Println("Starting daily reclamation job...")

	timer := time.NewTimer(s.untilNextMidnight(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reclamation job shutting down.")
			return
		case <-timer.C:
			s.RunOnce(ctx)
			timer.Reset(s.untilNextMidnight(time.Now()))
		}
	}
}

// RunOnce performs a single reclamation sweep, keeping only today's and
// future bookings.
func (s *Service) RunOnce(ctx context.Context) {
	today := time.Now().In(s.loc).Format(store.DateFormat)
	removed, err := s.store.Reclaim(ctx, today)
	if err != nil {
		log.Printf("Error reclaiming past bookings: %v", err)
		return
	}
	if s.flush != nil {
		s.flush()
	}
	log.Printf("Reclamation sweep complete: removed %d past booking(s), kept dates >= %s", removed, today)
}

// untilNextMidnight returns the duration from now to the next 00:00 in the
// configured timezone.
func (s *Service) untilNextMidnight(now time.Time) time.Duration {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, s.loc)
	return next.Sub(local)
}
