package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// QueueRefreshCityDirectory is the queue name of RefreshCityDirectoryTask.
const QueueRefreshCityDirectory = "refresh_city_directory"

// CityRefresher re-fetches the prayer schedule city list.
type CityRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// RefreshCityDirectoryTask re-fetches the prayer schedule city list.
type RefreshCityDirectoryTask struct {
	// Trigger records what enqueued the task ("schedule", "api", ...).
	Trigger string `json:"trigger,omitempty"`
}

// Config returns the queue configuration for city refresh tasks.
func (t RefreshCityDirectoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueRefreshCityDirectory,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshCityDirectoryProcessor creates a processor function for RefreshCityDirectoryTask.
func RefreshCityDirectoryProcessor(refresher CityRefresher) backlite.QueueProcessor[RefreshCityDirectoryTask] {
	return func(ctx context.Context, task RefreshCityDirectoryTask) error {
		if refresher == nil {
			return fmt.Errorf("city directory not configured")
		}

		n, err := refresher.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("refresh city directory: %w", err)
		}

		log.Printf("[TASK] Refreshed city directory (%s): %d cities", triggerOrDefault(task.Trigger), n)
		return nil
	}
}

// NewRefreshCityDirectoryQueue creates a backlite queue for city refresh tasks.
func NewRefreshCityDirectoryQueue(refresher CityRefresher) backlite.Queue {
	return backlite.NewQueue(RefreshCityDirectoryProcessor(refresher))
}

func triggerOrDefault(trigger string) string {
	if trigger == "" {
		return "manual"
	}
	return trigger
}
