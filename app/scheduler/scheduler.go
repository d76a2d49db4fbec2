package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"newswatch/app/pipeline"
)

// Runner triggers one pipeline execution. Serialization of overlapping
// triggers is the pipeline's responsibility.
type Runner interface {
	Run(ctx context.Context) pipeline.Result
}

// Scheduler invokes the pipeline on a fixed interval and at configured fixed
// times of day.
type Scheduler struct {
	runner     Runner
	interval   time.Duration
	checkTimes []string
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewScheduler(runner Runner, interval time.Duration, checkTimes []string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		runner:     runner,
		interval:   interval,
		checkTimes: checkTimes,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		fixed := time.NewTimer(s.nextFixedDelay(time.Now()))
		defer fixed.Stop()

		// Initial check on startup
		s.trigger("startup")

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.trigger("interval")
			case <-fixed.C:
				s.trigger("fixed-time")
				fixed.Reset(s.nextFixedDelay(time.Now()))
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) trigger(reason string) {
	slog.Debug("Scheduler triggering pipeline run", "reason", reason)

	result := s.runner.Run(s.ctx)
	if result.Skipped {
		slog.Debug("Scheduled run skipped, another run was active", "reason", reason)
	}
}

// nextFixedDelay returns the time until the soonest configured check time, in
// the local timezone. Without configured check times the timer effectively
// never fires.
func (s *Scheduler) nextFixedDelay(now time.Time) time.Duration {
	delay, ok := nextCheckDelay(now, s.checkTimes)
	if !ok {
		return 24 * 365 * time.Hour
	}
	return delay
}

func nextCheckDelay(now time.Time, checkTimes []string) (time.Duration, bool) {
	var next time.Time

	for _, checkTime := range checkTimes {
		parsed, err := time.Parse("15:04", checkTime)
		if err != nil {
			slog.Warn("Invalid check time, ignoring", "check_time", checkTime, "error", err)
			continue
		}

		candidate := time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}

		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}

	if next.IsZero() {
		return 0, false
	}

	return next.Sub(now), true
}
