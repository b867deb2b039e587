package services

import (
	"time"

	"github.com/ctgula/vibe-sub002/internal/logger"
)

// StaleSweeper periodically deactivates participants whose heartbeat
// stopped, so crashed or vanished clients do not stay listed forever.
type StaleSweeper struct {
	participants *ParticipantService
	log          *logger.Logger
	interval     time.Duration
	olderThan    time.Duration
	stop         chan struct{}
	done         chan struct{}
}

func NewStaleSweeper(participants *ParticipantService, log *logger.Logger, interval, olderThan time.Duration) *StaleSweeper {
	return &StaleSweeper{
		participants: participants,
		log:          log.With("component", "stale_sweeper"),
		interval:     interval,
		olderThan:    olderThan,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (s *StaleSweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if _, err := s.participants.CleanupStale(s.olderThan); err != nil {
					s.log.Warnw("stale sweep failed", "error", err)
				}
			}
		}
	}()
	s.log.Infow("stale sweeper started", "interval", s.interval, "older_than", s.olderThan)
}

func (s *StaleSweeper) Stop() {
	close(s.stop)
	<-s.done
}
