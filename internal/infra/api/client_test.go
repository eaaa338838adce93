package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:   srv.URL + "/",
		Token:     "test-token",
		Retries:   0,
		RetryWait: time.Millisecond,
		NewKey:    func() string { return "key-1" },
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, domain.ErrNoBaseURL)
}

func TestClient_ListTasks_Day(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "2026-10-15", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		_, _ = io.WriteString(w, `[
			{"id": 1, "title": "Deep work", "start_time": "09:00", "end_time": "11:00",
			 "category_id": "3", "priority_id": null, "date": "2026-10-15", "tags": ["go"],
			 "actual_minutes": 0, "order": 1}
		]`)
	})

	tasks, err := c.ListTasks(context.Background(), domain.DayScope(time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "Deep work", tasks[0].Title)
	assert.Equal(t, 120, domain.TaskDuration(tasks[0]))
	assert.Equal(t, []string{"go"}, tasks[0].Tags)
}

func TestClient_ListTasks_RangeAndSprint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-10-12", q.Get("from"))
		assert.Equal(t, "2026-10-18", q.Get("to"))
		assert.Equal(t, "s-9", q.Get("sprint"))
		assert.False(t, q.Has("date"))
		_, _ = io.WriteString(w, `[]`)
	})

	scope := domain.RangeScope(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	scope.Sprint = "s-9"
	tasks, err := c.ListTasks(context.Background(), scope)

	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClient_GetTask(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tasks/12" {
			_, _ = io.WriteString(w, `{"id": 12, "title": "Timer", "actual_minutes": 40, "date": "2026-10-15"}`)
			return
		}
		http.NotFound(w, r)
	})

	got, err := c.GetTask(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, 40, got.ActualMinutes)

	_, err = c.GetTask(context.Background(), "13")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestClient_CreateTask(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.NotContains(t, in, "id")
		assert.Equal(t, "Write docs", in["title"])
		assert.Equal(t, "2026-10-15", in["date"])

		in["id"] = 99
		writeJSON(t, w, http.StatusCreated, in)
	})

	got, err := c.CreateTask(context.Background(), &domain.Task{
		Title:     "Write docs",
		StartTime: "13:00",
		EndTime:   "14:00",
		Date:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "99", got.ID)
	assert.Equal(t, "Write docs", got.Title)
}

func TestClient_UpdateTask(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/5", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"actual_minutes": 30}`, string(body))
		_, _ = io.WriteString(w, `{"id": "5", "title": "x", "actual_minutes": 30, "date": "2026-10-15"}`)
	})

	minutes := 30
	got, err := c.UpdateTask(context.Background(), "5", domain.TaskPatch{ActualMinutes: &minutes})

	require.NoError(t, err)
	assert.Equal(t, 30, got.ActualMinutes)
}

func TestClient_UpdateTask_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	order := 1
	got, err := c.UpdateTask(context.Background(), "5", domain.TaskPatch{Order: &order})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_UpdateTask_Empty(t *testing.T) {
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.UpdateTask(context.Background(), "5", domain.TaskPatch{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}

func TestClient_DeleteTask_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		http.Error(w, "no such task", http.StatusNotFound)
	})

	err := c.DeleteTask(context.Background(), "404")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no such task", apiErr.Body)
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	})

	_, err := c.ListCategories(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "status 400")
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	var mu sync.Mutex
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		mu.Unlock()
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"id": 1, "date": "2026-10-15", "content": "hi"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Retries: 3, RetryWait: time.Millisecond})
	require.NoError(t, err)

	note, err := c.CreateNote(context.Background(), time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), "hi")

	require.NoError(t, err)
	assert.Equal(t, "1", note.ID)
	assert.Equal(t, int32(3), calls.Load())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, keys, 3)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
}

func TestClient_RetryLogger(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := New(Config{BaseURL: srv.URL, Retries: 2, RetryWait: time.Millisecond, Logger: logger})
	require.NoError(t, err)

	_, err = c.ListTags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Contains(t, buf.String(), "request")
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Retries: 2, RetryWait: time.Millisecond})
	require.NoError(t, err)

	_, err = c.ListTags(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Catalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			_, _ = io.WriteString(w, `[{"id": 1, "name": "Deep", "hex": "#00f"}, {"id": 2, "name": "Lunch", "is_break": true}]`)
		case "/priorities":
			_, _ = io.WriteString(w, `[{"id": "p1", "name": "High", "hex": "#f00"}]`)
		case "/tags":
			_, _ = io.WriteString(w, `["go", {"name": "ops"}, ""]`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{ID: "1", Name: "Deep", Hex: "#00f"},
		{ID: "2", Name: "Lunch", IsBreak: true},
	}, categories)

	priorities, err := c.ListPriorities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Priority{{ID: "p1", Name: "High", Hex: "#f00"}}, priorities)

	tags, err := c.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "ops"}, tags)
}

func TestClient_Notes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("date") == "2026-10-15":
			_, _ = io.WriteString(w, `[{"id": 8, "date": "2026-10-15", "content": "ship it"}]`)
		case r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `[]`)
		case r.Method == http.MethodPatch:
			assert.Equal(t, "/notes/8", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"content": "shipped"}`, string(body))
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	note, err := c.GetNote(ctx, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "8", note.ID)
	assert.Equal(t, "ship it", note.Content)

	none, err := c.GetNote(ctx, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, c.UpdateNote(ctx, "8", "shipped"))
}

func TestClient_ReorderTasks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/reorder", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"changes": [
			{"id": "1", "group_by": "status", "group_key": "done", "order": 1, "regrouped": true},
			{"id": "2", "group_by": "status", "group_key": "todo", "order": 1, "regrouped": false}
		]}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.ReorderTasks(context.Background(), []domain.TaskChange{
		{TaskID: "1", GroupBy: domain.GroupByStatus, GroupKey: "done", Order: 1, Regrouped: true},
		{TaskID: "2", GroupBy: domain.GroupByStatus, GroupKey: "todo", Order: 1},
	})

	assert.NoError(t, err)
}
