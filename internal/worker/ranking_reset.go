package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/polkiloo/pontobip/internal/metrics"
)

// RankingFacade exposes the subset of application functionality required by the scheduler.
type RankingFacade interface {
	ResetRanking(ctx context.Context, trigger string) (int64, error)
}

// RankingReset zeroes balances on a cron schedule.
type RankingReset struct {
	facade   RankingFacade
	schedule string
	logger   *slog.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRankingReset validates the schedule. An empty schedule yields a disabled scheduler.
func NewRankingReset(facade RankingFacade, schedule string, loc *time.Location, logger *slog.Logger) (*RankingReset, error) {
	if loc == nil {
		loc = time.UTC
	}
	r := &RankingReset{
		facade:   facade,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(cron.WithLocation(loc)),
	}
	if schedule == "" {
		return r, nil
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid ranking reset schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Enabled reports whether a schedule is configured.
func (r *RankingReset) Enabled() bool {
	return r.schedule != ""
}

// Start registers the job and launches the scheduler.
func (r *RankingReset) Start(ctx context.Context) error {
	if !r.Enabled() {
		r.logger.Info("ranking reset schedule disabled")
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if _, err := r.cron.AddFunc(r.schedule, func() { r.run(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule ranking reset: %w", err)
	}
	r.cancel = cancel
	r.cron.Start()
	r.logger.Info("ranking reset scheduled", slog.String("schedule", r.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running reset to finish.
func (r *RankingReset) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	<-r.cron.Stop().Done()
	cancel()
}

func (r *RankingReset) run(ctx context.Context) {
	affected, err := r.facade.ResetRanking(ctx, metrics.TriggerScheduled)
	if err != nil {
		r.logger.Error("scheduled ranking reset failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Info("scheduled ranking reset completed", slog.Int64("affected", affected))
}
