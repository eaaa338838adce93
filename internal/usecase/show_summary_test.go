package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFixture() (*testutil.MockTaskRepository, *testutil.MockLocalStateStore) {
	repo := testutil.NewMockTaskRepository(
		logTask("1", "09:00", "12:00", "deep"),
		logTask("2", "12:00", "12:30", "brk"),
		logTask("3", "13:00", "14:00", "mtg"),
		logTask("4", "14:00", "14:00", "mtg"),
	)
	state := testutil.NewMockLocalStateStore()
	state.State.Goals = domain.GoalMinutes{"deep": 120, "stale": 10}
	return repo, state
}

func TestShowSummary_Execute(t *testing.T) {
	repo, state := summaryFixture()
	cfg := domain.NewDefaultConfig()
	uc := NewShowSummary(repo, fixtureCatalog(), state, cfg, &testutil.MockClock{NowTime: morning}, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ShowSummaryInput{})
	require.NoError(t, err)

	assert.Equal(t, day, out.Date)
	assert.Equal(t, 270, out.Summary.TotalMinutes)
	assert.Equal(t, 240, out.Summary.ProductiveMinutes)
	assert.Equal(t, 30, out.Summary.BreakMinutes)
	assert.Equal(t, 4, out.Summary.Entries)
	assert.Equal(t, 50, out.Summary.ProductivityScore)

	// Goals synced: stale pruned, defaults seeded, custom kept.
	assert.Equal(t, domain.GoalMinutes{"deep": 120, "mtg": 120, "brk": 30}, state.State.Goals)

	byCategory := make(map[string]domain.GoalProgress)
	for _, p := range out.Goals.Progress {
		byCategory[p.Category.ID] = p
	}
	assert.Equal(t, domain.GoalOver, byCategory["deep"].Status)
	assert.Equal(t, 150, byCategory["deep"].Percent)

	assert.Equal(t, 2, out.Cadence.Sessions)
}

func TestShowSummary_Execute_PartialCatalogKeepsGoals(t *testing.T) {
	repo, state := summaryFixture()
	catalog := fixtureCatalog()
	catalog.PrioritiesErr = errors.New("down")
	uc := NewShowSummary(repo, catalog, state, domain.NewDefaultConfig(), &testutil.MockClock{NowTime: morning}, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ShowSummaryInput{Date: day})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Warnings)
	assert.Equal(t, domain.GoalMinutes{"deep": 120, "stale": 10}, state.State.Goals)
	assert.Zero(t, state.Saves)
}

func TestShowSummary_Execute_BreakNameFromConfig(t *testing.T) {
	repo := testutil.NewMockTaskRepository(
		logTask("1", "09:00", "10:00", "deep"),
		logTask("2", "10:00", "11:00", "mtg"),
	)
	cfg := domain.NewDefaultConfig()
	cfg.Categories.BreakName = "Meetings"
	uc := NewShowSummary(repo, fixtureCatalog(), testutil.NewMockLocalStateStore(), cfg, &testutil.MockClock{NowTime: morning}, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), ShowSummaryInput{})

	require.NoError(t, err)
	assert.Equal(t, 60, out.Summary.BreakMinutes)
	assert.Equal(t, 60, out.Summary.ProductiveMinutes)
}

func TestShowSummary_Execute_StateError(t *testing.T) {
	repo, state := summaryFixture()
	state.UpdateErr = domain.ErrStateCorrupted
	uc := NewShowSummary(repo, fixtureCatalog(), state, domain.NewDefaultConfig(), &testutil.MockClock{NowTime: morning}, domain.NopLogger{})

	_, err := uc.Execute(context.Background(), ShowSummaryInput{})

	assert.ErrorIs(t, err, domain.ErrStateCorrupted)
}
