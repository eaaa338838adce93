package cli

import (
	"testing"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_StartTickStop(t *testing.T) {
	env := newTestEnv()
	out := mustRun(t, newTimerCommand(env.c), "start", "1")
	assert.Contains(t, out, "Started timer on task 1: Design review")
	require.NotNil(t, env.state.State.Timer)

	env.clock.Advance(25 * time.Minute)
	out = mustRun(t, newTimerCommand(env.c), "tick")
	assert.Contains(t, out, "Task 1 +25 min")
	assert.Equal(t, 25, env.repo.Stored("1").ActualMinutes)

	env.clock.Advance(5 * time.Minute)
	out = mustRun(t, newTimerCommand(env.c), "stop")
	assert.Contains(t, out, "Stopped timer on task 1 (+5 min)")
	assert.Contains(t, out, "Actual time: 30m")
	assert.Nil(t, env.state.State.Timer)
}

func TestTimerStart_Switch(t *testing.T) {
	env := newTestEnv()
	mustRun(t, newTimerCommand(env.c), "start", "1")
	env.clock.Advance(10 * time.Minute)

	out := mustRun(t, newTimerCommand(env.c), "start", "3")

	assert.Contains(t, out, "Stopped timer on task 1 (+10 min)")
	assert.Contains(t, out, "Started timer on task 3: Standup")
	assert.Equal(t, "3", env.state.State.Timer.TaskID)
}

func TestTimerStart_Already(t *testing.T) {
	env := newTestEnv()
	mustRun(t, newTimerCommand(env.c), "start", "1")

	out := mustRun(t, newTimerCommand(env.c), "start", "1")

	assert.Contains(t, out, "Timer already running on task 1 since")
}

func TestTimerStart_UnknownTask(t *testing.T) {
	env := newTestEnv()

	_, _, err := run(t, newTimerCommand(env.c), "start", "99")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Nil(t, env.state.State.Timer)
}

func TestTimerStop_NoTimer(t *testing.T) {
	env := newTestEnv()

	_, _, err := run(t, newTimerCommand(env.c), "stop")

	assert.ErrorIs(t, err, domain.ErrNoActiveTimer)
}

func TestTimerTick_NoTimer(t *testing.T) {
	env := newTestEnv()

	out := mustRun(t, newTimerCommand(env.c), "tick")

	assert.Contains(t, out, "No timer running.")
	assert.Empty(t, env.repo.Updates)
}

func TestTimerStatus(t *testing.T) {
	env := newTestEnv()
	mustRun(t, newTimerCommand(env.c), "start", "1")
	env.clock.Advance(90 * time.Second)

	out := mustRun(t, newTimerCommand(env.c), "status")

	assert.Contains(t, out, "Task:     1 Design review")
	assert.Contains(t, out, "Running:  0:01:30")
	assert.Contains(t, out, "Pending:  1 min")
}

func TestTimerStatus_Idle(t *testing.T) {
	env := newTestEnv()

	out := mustRun(t, newTimerCommand(env.c), "status")

	assert.Equal(t, "No timer running.\n", out)
}

func TestFormatRunning(t *testing.T) {
	tests := []struct {
		want string
		in   time.Duration
	}{
		{"0:00:00", 0},
		{"0:00:59", 59 * time.Second},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"0:00:02", 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRunning(tt.in))
	}
}
