package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timerFixture struct {
	repo  *testutil.MockTaskRepository
	state *testutil.MockLocalStateStore
	clock *testutil.MockClock
}

func newTimerFixture() timerFixture {
	a := logTask("a", "09:00", "10:00", "deep")
	a.ActualMinutes = 5
	return timerFixture{
		repo:  testutil.NewMockTaskRepository(a, logTask("b", "10:00", "11:00", "mtg")),
		state: testutil.NewMockLocalStateStore(),
		clock: &testutil.MockClock{NowTime: morning},
	}
}

func (f timerFixture) start(t *testing.T, id string) *StartTimerOutput {
	t.Helper()
	out, err := NewStartTimer(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), StartTimerInput{TaskID: id})
	require.NoError(t, err)
	return out
}

func TestStartTimer_Execute(t *testing.T) {
	f := newTimerFixture()

	out := f.start(t, "a")

	assert.False(t, out.Already)
	assert.Nil(t, out.Previous)
	require.NotNil(t, f.state.State.Timer)
	assert.Equal(t, "a", f.state.State.Timer.TaskID)
	assert.Equal(t, morning, f.state.State.Timer.StartedAt)
}

func TestStartTimer_Execute_SwitchFlushesPrevious(t *testing.T) {
	f := newTimerFixture()
	f.start(t, "a")
	f.clock.Advance(25 * time.Minute)

	out := f.start(t, "b")

	require.NotNil(t, out.Previous)
	assert.Equal(t, "a", out.Previous.TaskID)
	assert.Equal(t, 25, out.Previous.Minutes)
	assert.Equal(t, 30, f.repo.Stored("a").ActualMinutes)
	assert.Equal(t, "b", f.state.State.Timer.TaskID)
}

func TestStartTimer_Execute_SameTaskKeepsSession(t *testing.T) {
	f := newTimerFixture()
	f.start(t, "a")
	f.clock.Advance(3 * time.Minute)

	out := f.start(t, "a")

	assert.True(t, out.Already)
	assert.Equal(t, morning, f.state.State.Timer.StartedAt)
	assert.Empty(t, f.repo.Updates)
}

func TestStartTimer_Execute_UnknownTask(t *testing.T) {
	f := newTimerFixture()

	_, err := NewStartTimer(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), StartTimerInput{TaskID: "zzz"})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Nil(t, f.state.State.Timer)
}

func TestStartTimer_Execute_PreviousTaskDeleted(t *testing.T) {
	f := newTimerFixture()
	f.state.State.Timer = domain.NewTimerSession("gone", morning)
	f.clock.Advance(10 * time.Minute)

	out := f.start(t, "a")

	assert.Nil(t, out.Previous)
	assert.Equal(t, "a", f.state.State.Timer.TaskID)
}

func TestTickTimer_Execute(t *testing.T) {
	f := newTimerFixture()
	f.start(t, "a")
	uc := NewTickTimer(f.repo, f.state, f.clock, domain.NopLogger{})

	f.clock.Advance(90 * time.Second)
	out, err := uc.Execute(context.Background(), TickTimerInput{})
	require.NoError(t, err)
	assert.True(t, out.Running)
	assert.Equal(t, 1, out.Flush.Minutes)

	f.clock.Advance(30 * time.Second)
	out, err = uc.Execute(context.Background(), TickTimerInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Flush.Minutes, "sub-minute remainder carries over")

	assert.Equal(t, 7, f.repo.Stored("a").ActualMinutes)
}

func TestTickTimer_Execute_NoTimer(t *testing.T) {
	f := newTimerFixture()

	out, err := NewTickTimer(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), TickTimerInput{})

	require.NoError(t, err)
	assert.False(t, out.Running)
	assert.Nil(t, out.Flush)
}

func TestTickTimer_Execute_FailureIsRetried(t *testing.T) {
	f := newTimerFixture()
	f.start(t, "a")
	uc := NewTickTimer(f.repo, f.state, f.clock, domain.NopLogger{})

	f.clock.Advance(4 * time.Minute)
	f.repo.UpdateErr = assert.AnError
	_, err := uc.Execute(context.Background(), TickTimerInput{})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, morning, f.state.State.Timer.LastTick)

	f.repo.UpdateErr = nil
	f.clock.Advance(time.Minute)
	out, err := uc.Execute(context.Background(), TickTimerInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Flush.Minutes)
	assert.Equal(t, 10, f.repo.Stored("a").ActualMinutes)
}

func TestStopTimer_Execute(t *testing.T) {
	f := newTimerFixture()
	f.start(t, "a")
	f.clock.Advance(61 * time.Minute)

	out, err := NewStopTimer(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), StopTimerInput{})

	require.NoError(t, err)
	assert.Equal(t, 61, out.Flush.Minutes)
	assert.Equal(t, "a", out.Session.TaskID)
	assert.Nil(t, f.state.State.Timer)
	assert.Equal(t, 66, f.repo.Stored("a").ActualMinutes)
}

func TestStopTimer_Execute_NoTimer(t *testing.T) {
	f := newTimerFixture()

	_, err := NewStopTimer(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), StopTimerInput{})

	assert.ErrorIs(t, err, domain.ErrNoActiveTimer)
}

func TestStopTimer_Execute_TaskDeleted(t *testing.T) {
	f := newTimerFixture()
	f.state.State.Timer = domain.NewTimerSession("gone", morning)
	f.clock.Advance(3 * time.Minute)

	out, err := NewStopTimer(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), StopTimerInput{})

	require.NoError(t, err)
	assert.Nil(t, out.Flush)
	assert.Nil(t, f.state.State.Timer)
}

func TestTimerStatus_Execute(t *testing.T) {
	f := newTimerFixture()
	f.start(t, "a")
	f.clock.Advance(2*time.Minute + 10*time.Second)

	out, err := NewTimerStatus(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), TimerStatusInput{})

	require.NoError(t, err)
	require.NotNil(t, out.Session)
	assert.Equal(t, 2*time.Minute+10*time.Second, out.Running)
	assert.Equal(t, 2, out.Pending)
	assert.Equal(t, "a", out.Task.ID)
	assert.Equal(t, morning, f.state.State.Timer.LastTick, "status must not advance the tick")
}

func TestTimerStatus_Execute_Idle(t *testing.T) {
	f := newTimerFixture()

	out, err := NewTimerStatus(f.repo, f.state, f.clock, domain.NopLogger{}).Execute(context.Background(), TimerStatusInput{})

	require.NoError(t, err)
	assert.Nil(t, out.Session)
}
