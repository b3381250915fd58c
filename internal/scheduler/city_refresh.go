// Package scheduler runs periodic jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/mushaf/internal/tasks"
)

// TaskEnqueuer saves a task on the background queue.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// RunStatus describes the outcome of the most recent run.
type RunStatus struct {
	At      time.Time `json:"at"`
	Success bool      `json:"success"`
	Message string    `json:"message"`
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// CityRefreshScheduler periodically refreshes the prayer schedule city list.
// With a task queue it enqueues a refresh task; without one it refreshes
// inline on the cron goroutine.
type CityRefreshScheduler struct {
	schedule  string
	queue     TaskEnqueuer
	refresher tasks.CityRefresher
	timeout   time.Duration

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	last      *RunStatus
}

// NewCityRefreshScheduler creates a scheduler. queue may be nil.
func NewCityRefreshScheduler(schedule string, queue TaskEnqueuer, refresher tasks.CityRefresher) *CityRefreshScheduler {
	return &CityRefreshScheduler{
		schedule:  schedule,
		queue:     queue,
		refresher: refresher,
		timeout:   2 * time.Minute,
		cron:      cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the job. It stops when ctx is cancelled.
func (s *CityRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run("schedule")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule city refresh: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	mode := "inline"
	if s.queue != nil {
		mode = "task queue"
	}
	log.Printf("City refresh scheduler: started with schedule '%s' (%s). Next run: %v",
		s.schedule, mode, s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *CityRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("City refresh scheduler: stopped")
}

// RunNow triggers a refresh immediately and returns its status.
func (s *CityRefreshScheduler) RunNow() RunStatus {
	return s.run("manual")
}

// IsRunning returns whether the scheduler is active.
func (s *CityRefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next refresh will occur.
func (s *CityRefreshScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

// LastRun returns the status of the previous run, or nil.
func (s *CityRefreshScheduler) LastRun() *RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	last := *s.last
	return &last
}

func (s *CityRefreshScheduler) run(trigger string) RunStatus {
	status := RunStatus{At: time.Now()}

	switch {
	case s.queue != nil:
		id, err := s.queue.Enqueue(tasks.RefreshCityDirectoryTask{Trigger: trigger})
		if err != nil {
			status.Message = fmt.Sprintf("Failed to enqueue city refresh: %v", err)
		} else {
			status.Success = true
			status.Message = "Enqueued city refresh task " + id
		}
	case s.refresher != nil:
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		n, err := s.refresher.Refresh(ctx)
		cancel()
		if err != nil {
			status.Message = fmt.Sprintf("City refresh failed: %v", err)
		} else {
			status.Success = true
			status.Message = fmt.Sprintf("Refreshed %d cities", n)
		}
	default:
		status.Message = "No city refresher configured"
	}

	log.Printf("City refresh (%s): %s", trigger, status.Message)

	s.mu.Lock()
	s.last = &status
	s.mu.Unlock()
	return status
}
