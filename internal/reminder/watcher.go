package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Notifier is told about every learner with facts due.
type Notifier interface {
	Remind(ctx context.Context, userID string, due int) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, userID string, due int) error

func (f NotifierFunc) Remind(ctx context.Context, userID string, due int) error {
	return f(ctx, userID, due)
}

// WatcherConfig sets what a Watcher scans and how often.
type WatcherConfig struct {
	Interval    time.Duration
	Users       []string
	Concurrency int
}

// Watcher runs Check on a fixed interval and passes non-zero due counts to
// a Notifier. The first scan happens as soon as the watcher starts.
type Watcher struct {
	cfg      WatcherConfig
	due      DueLister
	notifier Notifier
	logger   *zap.Logger
	sched    *gocron.Scheduler
}

// NewWatcher creates a stopped watcher. A nil logger disables logging.
func NewWatcher(dl DueLister, notifier Notifier, cfg WatcherConfig, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		cfg:      cfg,
		due:      dl,
		notifier: notifier,
		logger:   logger,
		sched:    gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the scan and returns immediately. Scans stop when ctx is
// done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if w.cfg.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", w.cfg.Interval)
	}
	w.sched.SingletonModeAll()
	if _, err := w.sched.Every(w.cfg.Interval).Do(func() {
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger.Warn("due review scan aborted", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule due review scan: %w", err)
	}
	w.sched.StartAsync()

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}

// Stop cancels future scans.
func (w *Watcher) Stop() {
	if w.sched.IsRunning() {
		w.sched.Stop()
	}
}

// RunOnce scans every configured user and notifies those with due facts.
func (w *Watcher) RunOnce(ctx context.Context) ([]Result, error) {
	results, err := Check(ctx, w.due, w.cfg.Users, w.cfg.Concurrency)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			w.logger.Error("due review scan failed", zap.String("user_id", r.UserID), zap.Error(r.Err))
		case r.Due == 0:
			w.logger.Debug("nothing due", zap.String("user_id", r.UserID))
		default:
			w.logger.Info("facts due for review", zap.String("user_id", r.UserID), zap.Int("due", r.Due))
			if w.notifier == nil {
				continue
			}
			if err := w.notifier.Remind(ctx, r.UserID, r.Due); err != nil {
				w.logger.Warn("reminder failed", zap.String("user_id", r.UserID), zap.Error(err))
			}
		}
	}
	return results, nil
}
