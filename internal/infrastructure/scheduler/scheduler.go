package scheduler

import (
	"context"
	"fmt"
	"time"

	"creditos-backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MoraRefresher persists the arrears of overdue installments.
type MoraRefresher interface {
	RefreshMora(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func New(log *zap.Logger) *Scheduler {
	log = log.Named("scheduler")
	cl := cronLogger{log}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(cron.NewParser(config.CronSpec)),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log,
	}
}

// AddMoraJob runs r on spec; each run gets timeout.
func (s *Scheduler) AddMoraJob(spec string, r MoraRefresher, timeout time.Duration) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		n, err := r.RefreshMora(ctx)
		if err != nil {
			s.log.Error("mora refresh failed", zap.Int("updated", n), zap.Error(err))
			return
		}
		s.log.Info("mora refresh done", zap.Int("updated", n), zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return 0, fmt.Errorf("schedule mora job %q: %w", spec, err)
	}
	return id, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, kv ...any) { c.l.Debug(msg, zap.Any("kv", kv)) }

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error(msg, zap.Error(err), zap.Any("kv", kv))
}
