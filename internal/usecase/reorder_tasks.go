package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/runoshun/worklog/internal/domain"
)

// maxParallelUpdates bounds the per-task update fan-out.
const maxParallelUpdates = 8

// ReorderTasksInput contains the parameters for a board move.
// Fields are ordered to minimize memory padding.
type ReorderTasksInput struct {
	Board   *domain.Board // Existing board to mutate; loaded from Scope when nil
	Scope   domain.TaskScope
	GroupBy domain.GroupBy
	Event   domain.MoveEvent
}

// ReorderTasksOutput contains the board after the move.
// On a persistence error it is still returned alongside the error.
type ReorderTasksOutput struct {
	Board     *domain.Board
	Result    *domain.MoveResult
	Failed    []string // Task ids whose update failed
	Persisted int      // Task updates that succeeded
}

// ReorderTasks applies a drag move and persists every changed task.
type ReorderTasks struct {
	tasks  domain.TaskRepository
	batch  domain.BatchReorderer // nil = one update per task
	logger domain.Logger
}

// NewReorderTasks creates a new ReorderTasks use case. batch may be nil.
func NewReorderTasks(tasks domain.TaskRepository, batch domain.BatchReorderer, logger domain.Logger) *ReorderTasks {
	return &ReorderTasks{tasks: tasks, batch: batch, logger: logger}
}

// Execute applies the move to the board first, then persists it.
// Per-task updates run concurrently and fail independently: successes are
// kept and every failure is returned joined. A failed batch call restores
// the board, since nothing was written.
func (uc *ReorderTasks) Execute(ctx context.Context, in ReorderTasksInput) (*ReorderTasksOutput, error) {
	board := in.Board
	if board == nil {
		tasks, err := uc.tasks.ListTasks(ctx, in.Scope)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		board, err = domain.NewBoard(tasks, in.GroupBy)
		if err != nil {
			return nil, err
		}
	}

	res, err := board.Move(in.Event)
	if err != nil {
		return nil, err
	}
	out := &ReorderTasksOutput{Board: board, Result: res}
	if res.NoOp || len(res.Changed) == 0 {
		return out, nil
	}

	if uc.batch != nil {
		if err := uc.batch.ReorderTasks(ctx, res.Changed); err != nil {
			board.Restore(res.Snapshot)
			for _, c := range res.Changed {
				out.Failed = append(out.Failed, c.TaskID)
			}
			uc.logger.Warn("reorder", fmt.Sprintf("batch reorder of %d tasks failed, board restored: %v", len(res.Changed), err))
			return out, fmt.Errorf("reorder tasks: %w", err)
		}
		out.Persisted = len(res.Changed)
		uc.logger.Debug("reorder", fmt.Sprintf("persisted %d changes in one call", out.Persisted))
		return out, nil
	}

	err = uc.persistEach(ctx, res.Changed, out)
	return out, err
}

func (uc *ReorderTasks) persistEach(ctx context.Context, changes []domain.TaskChange, out *ReorderTasksOutput) error {
	var (
		mu   sync.Mutex
		errs = make(map[string]error)
	)

	// Goroutines never return an error so one failure does not cancel the rest.
	var g errgroup.Group
	g.SetLimit(maxParallelUpdates)
	for _, change := range changes {
		change := change
		g.Go(func() error {
			_, err := uc.tasks.UpdateTask(ctx, change.TaskID, change.Patch())
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[change.TaskID] = err
				return nil
			}
			out.Persisted++
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == 0 {
		uc.logger.Debug("reorder", fmt.Sprintf("persisted %d changes", out.Persisted))
		return nil
	}

	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	joined := make([]error, 0, len(ids))
	for _, id := range ids {
		joined = append(joined, fmt.Errorf("update task %s: %w", id, errs[id]))
	}
	out.Failed = ids
	uc.logger.Warn("reorder", fmt.Sprintf("%d of %d task updates failed: %v", len(ids), len(changes), ids))
	return errors.Join(joined...)
}
