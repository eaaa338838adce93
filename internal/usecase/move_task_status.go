package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/worklog/internal/domain"
)

// MoveTaskStatusInput contains the parameters for moving one task to
// another kanban column.
type MoveTaskStatusInput struct {
	Board  *domain.Board // Status board to mutate; loaded from Scope when nil
	Scope  domain.TaskScope
	TaskID string
	Status domain.Status
}

// MoveTaskStatusOutput contains the board after the move.
type MoveTaskStatusOutput struct {
	Board    *domain.Board
	Task     *domain.Task // Task after the move (or the restored task on failure)
	Previous domain.Status
	NoOp     bool
}

// MoveTaskStatus moves a task to the end of another status column.
type MoveTaskStatus struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewMoveTaskStatus creates a new MoveTaskStatus use case.
func NewMoveTaskStatus(tasks domain.TaskRepository, logger domain.Logger) *MoveTaskStatus {
	return &MoveTaskStatus{tasks: tasks, logger: logger}
}

// Execute updates the board optimistically and sends one update. If the
// update fails the exact pre-move record is put back on the board.
func (uc *MoveTaskStatus) Execute(ctx context.Context, in MoveTaskStatusInput) (*MoveTaskStatusOutput, error) {
	if !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	board := in.Board
	if board == nil {
		tasks, err := uc.tasks.ListTasks(ctx, in.Scope)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		board, err = domain.NewBoard(tasks, domain.GroupByStatus)
		if err != nil {
			return nil, err
		}
	}
	if board.GroupBy() != domain.GroupByStatus {
		return nil, fmt.Errorf("%w: board is grouped by %s", domain.ErrInvalidMove, board.GroupBy())
	}

	before := board.Get(in.TaskID)
	if before == nil {
		return nil, domain.ErrTaskNotFound
	}
	out := &MoveTaskStatusOutput{Board: board, Task: before, Previous: before.Status}
	if before.Status == in.Status {
		out.NoOp = true
		return out, nil
	}

	moved := before.Clone()
	moved.Status = in.Status
	moved.Order = board.NextOrder(string(in.Status))
	board.Put(moved)

	status, order := moved.Status, moved.Order
	if _, err := uc.tasks.UpdateTask(ctx, in.TaskID, domain.TaskPatch{Status: &status, Order: &order}); err != nil {
		board.Restore([]*domain.Task{before})
		uc.logger.Warn("board", fmt.Sprintf("move of task %s to %s failed, restored: %v", in.TaskID, in.Status, err))
		return out, fmt.Errorf("update task %s: %w", in.TaskID, err)
	}

	uc.logger.Info("board", fmt.Sprintf("task %s moved %s -> %s", in.TaskID, before.Status, in.Status))
	out.Task = moved
	return out, nil
}
