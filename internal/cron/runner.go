package cronrunner

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AggregateRefresher recomputes cached investor aggregates from the payout
// and investment tables.
type AggregateRefresher interface {
	RecalculateAllInvestors(ctx context.Context) error
}

type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

func (r *Runner) Add(spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		if r == nil || r.baseCtx == nil {
			job(context.Background())
			return
		}
		job(r.baseCtx)
	})
}

// AddAggregateRefresh schedules a periodic sweep that reconciles every
// investor's cached totals. The sweep is a safety net for aggregates that
// drifted because a post-commit recalculation failed.
func (r *Runner) AddAggregateRefresh(spec string, refresher AggregateRefresher) (cron.EntryID, error) {
	return r.Add(spec, func(ctx context.Context) {
		if err := refresher.RecalculateAllInvestors(ctx); err != nil && r.logger != nil {
			r.logger.Warn("aggregate refresh failed", zap.Error(err))
		}
	})
}

func (r *Runner) Start() {
	if r.logger != nil {
		r.logger.Info("cron started")
	}
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	if r.logger != nil {
		r.logger.Info("cron stopped")
	}
}
