// Package shared holds helpers reused across use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/worklog/internal/domain"
)

// GetTask retrieves a task by ID. A nil result from the repository is
// reported as domain.ErrTaskNotFound.
func GetTask(ctx context.Context, repo domain.TaskRepository, taskID string) (*domain.Task, error) {
	if taskID == "" {
		return nil, domain.ErrTaskNotFound
	}
	task, err := repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
