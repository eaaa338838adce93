package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/runoshun/worklog/internal/app"
	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var (
	testDay = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)
)

// testEnv bundles a container wired to test doubles.
type testEnv struct {
	c       *app.Container
	repo    *testutil.MockTaskRepository
	catalog *testutil.MockCatalogRepository
	notes   *testutil.MockNoteRepository
	state   *testutil.MockLocalStateStore
	clock   *testutil.MockClock
	config  *testutil.MockConfigManager
}

func strp(s string) *string { return &s }

// newTestEnv creates a container with a small day of tasks.
func newTestEnv(tasks ...*domain.Task) testEnv {
	if tasks == nil {
		tasks = []*domain.Task{
			{ID: "1", Title: "Design review", Date: testDay, StartTime: "09:00", EndTime: "10:30", CategoryID: strp("deep"), PriorityID: strp("hi"), Tags: []string{"team"}},
			{ID: "2", Title: "Lunch", Date: testDay, StartTime: "12:00", EndTime: "12:30", CategoryID: strp("brk")},
			{ID: "3", Title: "Standup", Date: testDay, StartTime: "10:30", EndTime: "10:45", CategoryID: strp("mtg")},
		}
	}
	env := testEnv{
		repo: testutil.NewMockTaskRepository(tasks...),
		catalog: &testutil.MockCatalogRepository{
			Categories: []domain.Category{
				{ID: "deep", Name: "Deep work"},
				{ID: "mtg", Name: "Meetings"},
				{ID: "brk", Name: "Break"},
			},
			Priorities: []domain.Priority{{ID: "hi", Name: "High"}},
			Tags:       []string{"team", "ops"},
		},
		notes:  testutil.NewMockNoteRepository(),
		state:  testutil.NewMockLocalStateStore(),
		clock:  &testutil.MockClock{NowTime: testNow},
		config: &testutil.MockConfigManager{Info: domain.ConfigInfo{Path: "/home/u/.config/worklog/config.toml"}},
	}
	env.c = app.NewWithDeps(app.Config{}, app.Deps{
		Tasks:         env.repo,
		Catalog:       env.catalog,
		Notes:         env.notes,
		State:         env.state,
		Clock:         env.clock,
		ConfigManager: env.config,
	})
	return env
}

// run executes cmd with args and returns stdout and stderr.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// mustRun executes cmd and fails the test on error.
func mustRun(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, _, err := run(t, cmd, args...)
	require.NoError(t, err)
	return out
}
