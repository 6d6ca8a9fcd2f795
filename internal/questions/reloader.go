package questions

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Reloader refreshes a Bank on a fixed interval.
type Reloader struct {
	scheduler *gocron.Scheduler
	bank      *Bank
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

func NewReloader(bank *Bank, interval time.Duration, logger *slog.Logger) *Reloader {
	return &Reloader{
		scheduler: gocron.NewScheduler(time.UTC),
		bank:      bank,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger,
	}
}

// Start schedules the reload job. The first run happens one interval
// from now since the bank is loaded at startup.
func (r *Reloader) Start() error {
	_, err := r.scheduler.Every(r.interval).WaitForSchedule().SingletonMode().Do(r.reload)
	if err != nil {
		return err
	}
	r.scheduler.StartAsync()
	r.logger.Info("question reload scheduled", slog.Duration("interval", r.interval))
	return nil
}

func (r *Reloader) Stop() {
	r.scheduler.Stop()
}

func (r *Reloader) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.bank.Reload(ctx); err != nil {
		r.logger.Error("scheduled question reload failed", slog.String("error", err.Error()))
	}
}
