package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase/shared"
)

// timerDeps are the ports every timer use case needs.
type timerDeps struct {
	tasks  domain.TaskRepository
	state  domain.LocalStateStore
	clock  domain.Clock
	logger domain.Logger
}

// flush credits the running timer. A timer whose task no longer exists is
// discarded: the flush result is nil and s.Timer is cleared.
func (d timerDeps) flush(ctx context.Context, s *domain.LocalState, now time.Time) (*shared.Flush, error) {
	flush, err := shared.FlushTimer(ctx, d.tasks, s.Timer, now)
	if errors.Is(err, domain.ErrTaskNotFound) {
		d.logger.Warn("timer", fmt.Sprintf("discarded timer of missing task %s", s.Timer.TaskID))
		s.Timer = nil
		return nil, nil
	}
	return flush, err
}

// StartTimerInput contains the parameters for starting the timer.
type StartTimerInput struct {
	TaskID string
}

// StartTimerOutput contains the new session and the flush of the previous one.
type StartTimerOutput struct {
	Session  *domain.TimerSession
	Task     *domain.Task
	Previous *shared.Flush // Set when another timer was flushed and stopped first
	Already  bool          // The timer was already running on this task
}

// StartTimer starts the live timer on a task.
type StartTimer struct{ timerDeps }

// NewStartTimer creates a new StartTimer use case.
func NewStartTimer(tasks domain.TaskRepository, state domain.LocalStateStore, clock domain.Clock, logger domain.Logger) *StartTimer {
	return &StartTimer{timerDeps{tasks: tasks, state: state, clock: clock, logger: logger}}
}

// Execute starts the timer. A timer running on another task is flushed and
// stopped first; only one timer exists at a time.
func (uc *StartTimer) Execute(ctx context.Context, in StartTimerInput) (*StartTimerOutput, error) {
	task, err := shared.GetTask(ctx, uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	out := &StartTimerOutput{Task: task}
	err = uc.state.Update(func(s *domain.LocalState) error {
		if s.Timer != nil && s.Timer.TaskID == task.ID {
			out.Already = true
			out.Session = s.Timer
			return nil
		}
		if s.Timer != nil {
			flush, err := uc.flush(ctx, s, now)
			if err != nil {
				return fmt.Errorf("stop previous timer: %w", err)
			}
			out.Previous = flush
		}
		s.Timer = domain.NewTimerSession(task.ID, now)
		out.Session = s.Timer
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Previous != nil {
		uc.logger.Info("timer", fmt.Sprintf("stopped task %s (+%d min)", out.Previous.TaskID, out.Previous.Minutes))
	}
	if !out.Already {
		uc.logger.Info("timer", fmt.Sprintf("started task %s", task.ID))
	}
	return out, nil
}

// TickTimerInput contains the parameters for a timer tick.
type TickTimerInput struct{}

// TickTimerOutput reports the minutes credited by the tick.
type TickTimerOutput struct {
	Flush   *shared.Flush
	Running bool // False when no timer is active
}

// TickTimer credits elapsed whole minutes to the running task.
type TickTimer struct{ timerDeps }

// NewTickTimer creates a new TickTimer use case.
func NewTickTimer(tasks domain.TaskRepository, state domain.LocalStateStore, clock domain.Clock, logger domain.Logger) *TickTimer {
	return &TickTimer{timerDeps{tasks: tasks, state: state, clock: clock, logger: logger}}
}

// Execute flushes the running timer. Without a timer it does nothing.
func (uc *TickTimer) Execute(ctx context.Context, _ TickTimerInput) (*TickTimerOutput, error) {
	now := uc.clock.Now()
	out := &TickTimerOutput{}
	err := uc.state.Update(func(s *domain.LocalState) error {
		if s.Timer == nil {
			return nil
		}
		flush, err := uc.flush(ctx, s, now)
		if err != nil {
			return err
		}
		out.Running = s.Timer != nil
		out.Flush = flush
		return nil
	})
	if err != nil {
		uc.logger.Warn("timer", fmt.Sprintf("tick failed: %v", err))
		return nil, err
	}
	if out.Flush != nil && out.Flush.Minutes > 0 {
		uc.logger.Debug("timer", fmt.Sprintf("task %s +%d min", out.Flush.TaskID, out.Flush.Minutes))
	}
	return out, nil
}

// StopTimerInput contains the parameters for stopping the timer.
type StopTimerInput struct{}

// StopTimerOutput reports the final flush of the stopped timer.
type StopTimerOutput struct {
	Flush   *shared.Flush // nil when the task no longer exists
	Session domain.TimerSession
}

// StopTimer flushes and clears the running timer.
type StopTimer struct{ timerDeps }

// NewStopTimer creates a new StopTimer use case.
func NewStopTimer(tasks domain.TaskRepository, state domain.LocalStateStore, clock domain.Clock, logger domain.Logger) *StopTimer {
	return &StopTimer{timerDeps{tasks: tasks, state: state, clock: clock, logger: logger}}
}

// Execute stops the timer. It returns domain.ErrNoActiveTimer when none runs.
func (uc *StopTimer) Execute(ctx context.Context, _ StopTimerInput) (*StopTimerOutput, error) {
	now := uc.clock.Now()
	out := &StopTimerOutput{}
	err := uc.state.Update(func(s *domain.LocalState) error {
		if s.Timer == nil {
			return domain.ErrNoActiveTimer
		}
		out.Session = *s.Timer
		flush, err := uc.flush(ctx, s, now)
		if err != nil {
			return err
		}
		out.Flush = flush
		s.Timer = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Flush != nil {
		uc.logger.Info("timer", fmt.Sprintf("stopped task %s (+%d min)", out.Flush.TaskID, out.Flush.Minutes))
	}
	return out, nil
}

// TimerStatusInput contains the parameters for the timer status.
type TimerStatusInput struct{}

// TimerStatusOutput describes the running timer, if any.
type TimerStatusOutput struct {
	Session *domain.TimerSession // nil when no timer is active
	Task    *domain.Task         // nil when the task could not be loaded
	Running time.Duration
	Pending int // Whole minutes not yet credited
}

// TimerStatus reports the running timer without changing it.
type TimerStatus struct{ timerDeps }

// NewTimerStatus creates a new TimerStatus use case.
func NewTimerStatus(tasks domain.TaskRepository, state domain.LocalStateStore, clock domain.Clock, logger domain.Logger) *TimerStatus {
	return &TimerStatus{timerDeps{tasks: tasks, state: state, clock: clock, logger: logger}}
}

// Execute loads the timer state. The task lookup is best effort.
func (uc *TimerStatus) Execute(ctx context.Context, _ TimerStatusInput) (*TimerStatusOutput, error) {
	state, err := uc.state.Load()
	if err != nil {
		return nil, err
	}
	out := &TimerStatusOutput{Session: state.Timer}
	if state.Timer == nil {
		return out, nil
	}

	now := uc.clock.Now()
	out.Running = state.Timer.Running(now)
	probe := *state.Timer
	out.Pending = probe.Elapsed(now)

	task, err := shared.GetTask(ctx, uc.tasks, state.Timer.TaskID)
	if err != nil {
		uc.logger.Warn("timer", fmt.Sprintf("load timer task: %v", err))
	} else {
		out.Task = task
	}
	return out, nil
}
