package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/worklog/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	TimerStopped bool // The active timer pointed at the deleted task
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks  domain.TaskRepository
	state  domain.LocalStateStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, state domain.LocalStateStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{tasks: tasks, state: state, logger: logger}
}

// Execute deletes a task. A timer running on it is discarded without
// crediting minutes.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if in.TaskID == "" {
		return nil, domain.ErrTaskNotFound
	}
	if err := uc.tasks.DeleteTask(ctx, in.TaskID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	uc.logger.Info("task", fmt.Sprintf("deleted task %s", in.TaskID))

	out := &DeleteTaskOutput{}
	err := uc.state.Update(func(s *domain.LocalState) error {
		if s.Timer != nil && s.Timer.TaskID == in.TaskID {
			s.Timer = nil
			out.TimerStopped = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clear timer: %w", err)
	}
	if out.TimerStopped {
		uc.logger.Info("timer", fmt.Sprintf("discarded timer of deleted task %s", in.TaskID))
	}
	return out, nil
}
