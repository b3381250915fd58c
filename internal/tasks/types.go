package tasks

import (
	"fmt"

	"github.com/mikestefanello/backlite"
)

// TaskType describes a task that can be triggered by name.
type TaskType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`

	build func(trigger string) backlite.Task
}

var taskTypes = []TaskType{
	{
		Type:        QueueRefreshCityDirectory,
		Description: "Re-fetch the prayer schedule city list",
		Queue:       QueueRefreshCityDirectory,
		build: func(trigger string) backlite.Task {
			return RefreshCityDirectoryTask{Trigger: trigger}
		},
	},
}

// Types lists the task types that can be triggered by name.
func Types() []TaskType {
	out := make([]TaskType, len(taskTypes))
	copy(out, taskTypes)
	return out
}

// NewTask builds a task of the named type.
func NewTask(taskType, trigger string) (backlite.Task, error) {
	for _, tt := range taskTypes {
		if tt.Type == taskType {
			return tt.build(trigger), nil
		}
	}
	return nil, fmt.Errorf("unknown task type: %s", taskType)
}
