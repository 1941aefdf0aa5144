package scheduler

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Job is a unit of recurring background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs all registered jobs on a fixed interval. It is process-wide
// lifecycle state: exactly one instance should be started per process, and it
// runs until Stop is called.
type Scheduler struct {
	interval time.Duration
	jobs     []Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
}

func New(interval time.Duration, jobs ...Job) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval: interval,
		jobs:     jobs,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the scheduling loop. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		log.Warn("Scheduler already started")
		return
	}
	s.started = true

	s.wg.Add(1)
	go s.loop()
	log.Infof("Scheduler started with %d job(s), interval %s", len(s.jobs), s.interval)
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			log.Info("Scheduler loop stopping")
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce executes every job a single time. A failing job is logged and does
// not prevent the remaining jobs from running.
func (s *Scheduler) RunOnce() {
	for _, job := range s.jobs {
		if err := job.Run(s.ctx); err != nil {
			log.Errorf("Scheduler: job %s failed: %v", job.Name(), err)
		}
	}
}

// Stop cancels the scheduling loop and waits for it to finish, up to timeout.
func (s *Scheduler) Stop(timeout time.Duration) {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Scheduler stopped")
	case <-time.After(timeout):
		log.Warn("Scheduler: timeout waiting for loop to stop")
	}
}
