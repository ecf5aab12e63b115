package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/airport-weather/internal/log"
)

// Reloader is the part of weather.Service the scheduler drives.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically reloads the dataset from its source.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables it.
func New(interval time.Duration, reloader Reloader) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reloader:  reloader,
		interval:  interval,
		timeout:   2 * time.Minute,
	}
}

// Start schedules the reload job and starts the underlying scheduler. The
// first run happens one interval from now; the caller loads the initial dataset.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Infof("scheduler: reload interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Infof("scheduler: reloading dataset every %s", s.interval)
	return nil
}

func (s *Scheduler) run() {
	log.Debugf("scheduler: running dataset reload job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		log.Errorf("scheduler: reload failed: %v", err)
		return
	}
	log.Debugf("scheduler: completed dataset reload job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
