package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTaskStatus_Execute(t *testing.T) {
	repo := kanbanRepo()
	uc := NewMoveTaskStatus(repo, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), MoveTaskStatusInput{TaskID: "b", Status: domain.StatusDone})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, out.Previous)
	assert.Equal(t, domain.StatusDone, out.Task.Status)
	assert.Equal(t, 3, out.Task.Order)
	require.Len(t, repo.Updates, 1)
	assert.Equal(t, "b", repo.Updates[0].ID)
	assert.Equal(t, domain.StatusDone, repo.Stored("b").Status)
	assert.Equal(t, []string{"x", "y", "b"}, taskIDs(out.Board.Group("done")))
}

func TestMoveTaskStatus_Execute_RollbackRestoresExactRecord(t *testing.T) {
	repo := kanbanRepo()
	repo.UpdateErr = assert.AnError
	board, err := domain.NewBoard(mustList(t, repo), domain.GroupByStatus)
	require.NoError(t, err)
	before := board.Get("b")
	logger := &testutil.MockLogger{}
	uc := NewMoveTaskStatus(repo, logger)

	out, err := uc.Execute(context.Background(), MoveTaskStatusInput{Board: board, TaskID: "b", Status: domain.StatusReview})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, before, board.Get("b"))
	assert.Equal(t, before, out.Task)
	assert.Empty(t, board.Group(string(domain.StatusReview)))
	assert.True(t, logger.Has("warn", "board"))
}

func TestMoveTaskStatus_Execute_NoOp(t *testing.T) {
	repo := kanbanRepo()
	uc := NewMoveTaskStatus(repo, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), MoveTaskStatusInput{TaskID: "a", Status: domain.StatusTodo})

	require.NoError(t, err)
	assert.True(t, out.NoOp)
	assert.Empty(t, repo.Updates)
}

func TestMoveTaskStatus_Execute_Errors(t *testing.T) {
	uc := NewMoveTaskStatus(kanbanRepo(), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), MoveTaskStatusInput{TaskID: "a", Status: "later"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Execute(context.Background(), MoveTaskStatusInput{TaskID: "zzz", Status: domain.StatusDone})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	lanes, err := domain.NewBoard(nil, domain.GroupByAssignee)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), MoveTaskStatusInput{Board: lanes, TaskID: "a", Status: domain.StatusDone})
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
}
