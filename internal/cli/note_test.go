package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteShow(t *testing.T) {
	env := newTestEnv()
	env.notes.Notes["2026-10-15"] = &domain.Note{ID: "n1", Date: testDay, Content: "Ship the board"}

	out := mustRun(t, newNoteCommand(env.c), "show")

	assert.Equal(t, "Ship the board\n", out)
}

func TestNoteShow_None(t *testing.T) {
	env := newTestEnv()

	out := mustRun(t, newNoteCommand(env.c), "show", "--date", "2026-10-01")

	assert.Equal(t, "No note for 2026-10-01.\n", out)
}

func TestNoteSet_CreateThenUpdate(t *testing.T) {
	env := newTestEnv()

	out := mustRun(t, newNoteCommand(env.c), "set", "Retro", "moved")
	assert.Contains(t, out, "Created note for 2026-10-15")
	assert.Equal(t, "Retro moved", env.notes.Notes["2026-10-15"].Content)

	out = mustRun(t, newNoteCommand(env.c), "set", "Retro cancelled")
	assert.Contains(t, out, "Updated note for 2026-10-15")
	assert.Equal(t, "Retro cancelled", env.notes.Notes["2026-10-15"].Content)
	assert.Equal(t, 1, env.notes.Created)
	assert.Equal(t, 1, env.notes.Updated)
}

func TestNoteSet_Stdin(t *testing.T) {
	env := newTestEnv()
	cmd := newNoteCommand(env.c)
	cmd.SetIn(strings.NewReader("line one\nline two\n"))

	out := mustRun(t, cmd, "set", "--date", "2026-10-16", "-")

	assert.Contains(t, out, "Created note for 2026-10-16")
	assert.Equal(t, "line one\nline two", env.notes.Notes["2026-10-16"].Content)
}

func TestNoteSet_BackendError(t *testing.T) {
	env := newTestEnv()
	boom := errors.New("backend down")
	env.notes.GetErr = boom

	_, _, err := run(t, newNoteCommand(env.c), "set", "x")

	require.ErrorIs(t, err, boom)
	assert.Zero(t, env.notes.Created)
}
