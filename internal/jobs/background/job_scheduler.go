package background

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"inventorymanager/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// JobFunc is one run of a scheduled job.
type JobFunc func(ctx context.Context) error

// JobScheduler runs periodic jobs. It implements suture.Service: jobs only
// fire between Serve being called and its context ending.
type JobScheduler struct {
	scheduler gocron.Scheduler
	jobs      map[string]gocron.Job
	mu        sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewJobScheduler() (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &JobScheduler{
		scheduler: scheduler,
		jobs:      make(map[string]gocron.Job),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// AddJob schedules fn every interval. A run still going when the next one
// is due delays it rather than overlapping.
func (js *JobScheduler) AddJob(name string, interval time.Duration, fn JobFunc) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if _, exists := js.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { js.run(name, fn) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule job %q: %w", name, err)
	}

	js.jobs[name] = job
	log.Info().Str("job", name).Dur("interval", interval).Msg("job registered")
	return nil
}

func (js *JobScheduler) run(name string, fn JobFunc) {
	start := time.Now()
	if err := fn(js.ctx); err != nil {
		metrics.JobRuns.WithLabelValues(name, "failure").Inc()
		log.Error().Err(err).Str("job", name).Dur("took", time.Since(start)).Msg("job failed")
		return
	}
	metrics.JobRuns.WithLabelValues(name, "success").Inc()
	log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("job finished")
}

func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, exists := js.jobs[name]
	if !exists {
		return nil
	}
	delete(js.jobs, name)
	return js.scheduler.RemoveJob(job.ID())
}

// RunNow triggers a registered job outside its schedule.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, exists := js.jobs[name]
	js.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job %q not registered", name)
	}
	return job.RunNow()
}

// Jobs lists the registered job names in order.
func (js *JobScheduler) Jobs() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Serve starts the scheduler and blocks until ctx ends. The scheduler
// cannot be restarted after it returns.
func (js *JobScheduler) Serve(ctx context.Context) error {
	log.Info().Int("jobs", len(js.Jobs())).Msg("starting job scheduler")
	js.scheduler.Start()

	<-ctx.Done()

	log.Info().Msg("stopping job scheduler")
	js.cancel()
	if err := js.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return ctx.Err()
}

func (js *JobScheduler) String() string {
	return "job-scheduler"
}
