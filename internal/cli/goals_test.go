package cli

import (
	"testing"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalsList(t *testing.T) {
	env := newTestEnv()
	env.state.State.Goals = domain.GoalMinutes{"deep": 240}

	out := mustRun(t, newGoalsCommand(env.c), "list")

	assert.Contains(t, out, "Deep work")
	assert.Contains(t, out, "4h 0m")
	assert.Contains(t, out, "Break (break)")
}

func TestGoalsSet(t *testing.T) {
	env := newTestEnv()

	out := mustRun(t, newGoalsCommand(env.c), "set", "meetings", "45")

	assert.Contains(t, out, "Goal for Meetings: 45m")
	assert.Equal(t, 45, env.state.State.Goals["mtg"])
}

func TestGoalsSet_Errors(t *testing.T) {
	tests := []struct {
		want error
		name string
		args []string
	}{
		{name: "unknown category", args: []string{"set", "nope", "10"}, want: domain.ErrCategoryNotFound},
		{name: "negative", args: []string{"set", "--", "deep", "-5"}, want: domain.ErrInvalidGoal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			_, _, err := run(t, newGoalsCommand(env.c), tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGoalsSet_NotANumber(t *testing.T) {
	env := newTestEnv()

	_, _, err := run(t, newGoalsCommand(env.c), "set", "deep", "lots")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid minutes")
}

func TestGoalsSync(t *testing.T) {
	env := newTestEnv()
	env.state.State.Goals = domain.GoalMinutes{"gone": 60}

	out := mustRun(t, newGoalsCommand(env.c), "sync")

	assert.Contains(t, out, "3 added, 1 removed, 3 total")
	assert.Equal(t, domain.GoalMinutes{"deep": 120, "mtg": 120, "brk": 30}, env.state.State.Goals)
}
