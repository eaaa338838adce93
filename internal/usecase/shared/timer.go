package shared

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/worklog/internal/domain"
)

// Flush is the outcome of crediting timer minutes to a task.
type Flush struct {
	Task    *domain.Task // Task after the update; nil when nothing was written
	TaskID  string
	Minutes int
}

// FlushTimer credits whole minutes elapsed since the session's last tick to
// its task. The session's LastTick only advances when the update succeeds,
// so a failed flush is retried on the next tick.
func FlushTimer(ctx context.Context, repo domain.TaskRepository, session *domain.TimerSession, now time.Time) (*Flush, error) {
	if session == nil {
		return nil, domain.ErrNoActiveTimer
	}
	trial := *session
	minutes := trial.Elapsed(now)
	res := &Flush{TaskID: session.TaskID, Minutes: minutes}
	if minutes == 0 {
		return res, nil
	}

	task, err := GetTask(ctx, repo, session.TaskID)
	if err != nil {
		return nil, err
	}
	total := task.ActualMinutes + minutes
	updated, err := repo.UpdateTask(ctx, task.ID, domain.TaskPatch{ActualMinutes: &total})
	if err != nil {
		return nil, fmt.Errorf("credit %d minutes to task %s: %w", minutes, task.ID, err)
	}
	if updated == nil {
		task.ActualMinutes = total
		updated = task
	}

	*session = trial
	res.Task = updated
	return res, nil
}
