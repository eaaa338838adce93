package domain

import "time"

// TimerSession is the single live timer. Whole minutes elapsed since
// LastTick are credited to the task's ActualMinutes.
type TimerSession struct {
	StartedAt time.Time `json:"started_at"`
	LastTick  time.Time `json:"last_tick"`
	TaskID    string    `json:"task_id"`
}

// NewTimerSession starts a timer on taskID at now.
func NewTimerSession(taskID string, now time.Time) *TimerSession {
	return &TimerSession{TaskID: taskID, StartedAt: now, LastTick: now}
}

// Elapsed returns the whole minutes since the last tick and advances the tick
// mark by that many minutes. The sub-minute remainder carries over.
func (s *TimerSession) Elapsed(now time.Time) int {
	if s == nil || !now.After(s.LastTick) {
		return 0
	}
	minutes := int(now.Sub(s.LastTick) / time.Minute)
	s.LastTick = s.LastTick.Add(time.Duration(minutes) * time.Minute)
	return minutes
}

// Running returns the total run time at now.
func (s *TimerSession) Running(now time.Time) time.Duration {
	if s == nil || now.Before(s.StartedAt) {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// LocalState is the client-local persistence tier: preferences that are
// never sent to the backend.
type LocalState struct {
	Goals GoalMinutes   `json:"goals"`
	Timer *TimerSession `json:"timer,omitempty"`
}
