// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/runoshun/worklog/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// UpdateCall records one UpdateTask call.
type UpdateCall struct {
	Patch domain.TaskPatch
	ID    string
}

// MockTaskRepository is a test double for domain.TaskRepository.
// It is safe for concurrent use.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks      map[string]*domain.Task
	UpdateErrs map[string]error // Per-task UpdateTask failures
	ListErr    error
	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	Updates    []UpdateCall
	Scopes     []domain.TaskScope
	NoEcho     bool // UpdateTask returns nil like a 204 backend
	NextIDN    int
	mu         sync.Mutex
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository(tasks ...*domain.Task) *MockTaskRepository {
	m := &MockTaskRepository{
		Tasks:      make(map[string]*domain.Task),
		UpdateErrs: make(map[string]error),
		NextIDN:    100,
	}
	for _, t := range tasks {
		m.Tasks[t.ID] = t.Clone()
	}
	return m
}

// ListTasks returns the stored tasks inside the scope, ordered by id.
func (m *MockTaskRepository) ListTasks(_ context.Context, scope domain.TaskScope) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Scopes = append(m.Scopes, scope)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []*domain.Task
	for _, t := range m.Tasks {
		if inScope(t, scope) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func inScope(t *domain.Task, scope domain.TaskScope) bool {
	if scope.IsRange() {
		return !t.Date.Before(scope.From) && !t.Date.After(scope.To)
	}
	if scope.Date.IsZero() {
		return true
	}
	return t.Date.Equal(scope.Date)
}

// GetTask returns a copy of a stored task.
func (m *MockTaskRepository) GetTask(_ context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// CreateTask stores a copy of task under the next id.
func (m *MockTaskRepository) CreateTask(_ context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	c := task.Clone()
	c.ID = fmt.Sprintf("%d", m.NextIDN)
	m.NextIDN++
	m.Tasks[c.ID] = c
	return c.Clone(), nil
}

// UpdateTask applies patch to the stored task.
func (m *MockTaskRepository) UpdateTask(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Updates = append(m.Updates, UpdateCall{ID: id, Patch: patch})
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if err := m.UpdateErrs[id]; err != nil {
		return nil, err
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(t)
	if m.NoEcho {
		return nil, nil
	}
	return t.Clone(), nil
}

// DeleteTask removes a stored task.
func (m *MockTaskRepository) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// UpdatedIDs returns the ids passed to UpdateTask, sorted.
func (m *MockTaskRepository) UpdatedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(m.Updates))
	for i, u := range m.Updates {
		ids[i] = u.ID
	}
	slices.Sort(ids)
	return ids
}

// Stored returns a copy of a stored task, or nil.
func (m *MockTaskRepository) Stored(id string) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Tasks[id].Clone()
}

// MockBatchReorderer is a test double for domain.BatchReorderer.
type MockBatchReorderer struct {
	Err   error
	Calls [][]domain.TaskChange
}

// ReorderTasks records the changes.
func (m *MockBatchReorderer) ReorderTasks(_ context.Context, changes []domain.TaskChange) error {
	m.Calls = append(m.Calls, slices.Clone(changes))
	return m.Err
}

// MockCatalogRepository is a test double for domain.CatalogRepository.
// Calls records the order in which lists were requested.
type MockCatalogRepository struct {
	CategoriesErr error
	PrioritiesErr error
	TagsErr       error
	Calls         *[]string
	Categories    []domain.Category
	Priorities    []domain.Priority
	Tags          []string
}

func (m *MockCatalogRepository) record(name string) {
	if m.Calls != nil {
		*m.Calls = append(*m.Calls, name)
	}
}

// ListCategories returns the configured categories.
func (m *MockCatalogRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.record("categories")
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	return slices.Clone(m.Categories), nil
}

// ListPriorities returns the configured priorities.
func (m *MockCatalogRepository) ListPriorities(_ context.Context) ([]domain.Priority, error) {
	m.record("priorities")
	if m.PrioritiesErr != nil {
		return nil, m.PrioritiesErr
	}
	return slices.Clone(m.Priorities), nil
}

// ListTags returns the configured tags.
func (m *MockCatalogRepository) ListTags(_ context.Context) ([]string, error) {
	m.record("tags")
	if m.TagsErr != nil {
		return nil, m.TagsErr
	}
	return slices.Clone(m.Tags), nil
}

// RecordingTaskRepository wraps a MockTaskRepository and appends "tasks" to
// Calls on every ListTasks, so tests can assert load order across ports.
type RecordingTaskRepository struct {
	*MockTaskRepository
	Calls *[]string
}

// ListTasks records the call and delegates.
func (r *RecordingTaskRepository) ListTasks(ctx context.Context, scope domain.TaskScope) ([]*domain.Task, error) {
	*r.Calls = append(*r.Calls, "tasks")
	return r.MockTaskRepository.ListTasks(ctx, scope)
}

// MockNoteRepository is a test double for domain.NoteRepository.
// Fields are ordered to minimize memory padding.
type MockNoteRepository struct {
	Notes     map[string]*domain.Note // Keyed by YYYY-MM-DD
	GetErr    error
	CreateErr error
	UpdateErr error
	Created   int
	Updated   int
	NextIDN   int
}

// NewMockNoteRepository creates a new MockNoteRepository.
func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{Notes: make(map[string]*domain.Note), NextIDN: 1}
}

// GetNote returns the note for date or nil.
func (m *MockNoteRepository) GetNote(_ context.Context, date time.Time) (*domain.Note, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	n, ok := m.Notes[domain.FormatDate(date)]
	if !ok {
		return nil, nil
	}
	c := *n
	return &c, nil
}

// CreateNote stores a new note.
func (m *MockNoteRepository) CreateNote(_ context.Context, date time.Time, content string) (*domain.Note, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	n := &domain.Note{ID: fmt.Sprintf("n%d", m.NextIDN), Date: domain.Day(date), Content: content}
	m.NextIDN++
	m.Created++
	m.Notes[domain.FormatDate(date)] = n
	c := *n
	return &c, nil
}

// UpdateNote replaces the content of the note with id.
func (m *MockNoteRepository) UpdateNote(_ context.Context, id, content string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for _, n := range m.Notes {
		if n.ID == id {
			n.Content = content
			m.Updated++
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockLocalStateStore is a test double for domain.LocalStateStore.
// Update works on a copy and commits it only when fn succeeds.
type MockLocalStateStore struct {
	State     *domain.LocalState
	LoadErr   error
	UpdateErr error
	Saves     int
	mu        sync.Mutex
}

// NewMockLocalStateStore creates a store holding an empty state.
func NewMockLocalStateStore() *MockLocalStateStore {
	return &MockLocalStateStore{State: &domain.LocalState{Goals: domain.GoalMinutes{}}}
}

// Load returns a copy of the state.
func (m *MockLocalStateStore) Load() (*domain.LocalState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return copyState(m.State), nil
}

// Update applies fn to a copy and commits it on success.
func (m *MockLocalStateStore) Update(fn func(*domain.LocalState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	next := copyState(m.State)
	if err := fn(next); err != nil {
		return err
	}
	m.State = next
	m.Saves++
	return nil
}

func copyState(s *domain.LocalState) *domain.LocalState {
	c := &domain.LocalState{Goals: s.Goals.Clone()}
	if c.Goals == nil {
		c.Goals = domain.GoalMinutes{}
	}
	if s.Timer != nil {
		t := *s.Timer
		c.Timer = &t
	}
	return c
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string) { m.add("debug", category, msg) }

// Info records an info message.
func (m *MockLogger) Info(category, msg string) { m.add("info", category, msg) }

// Warn records a warning.
func (m *MockLogger) Warn(category, msg string) { m.add("warn", category, msg) }

// Error records an error.
func (m *MockLogger) Error(category, msg string) { m.add("error", category, msg) }

// Has reports whether a message at level was logged under category.
func (m *MockLogger) Has(level, category string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Level == level && e.Category == category {
			return true
		}
	}
	return false
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr error
	Info    domain.ConfigInfo
	Inits   int
}

// GlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) (string, error) {
	m.Inits++
	if m.InitErr != nil {
		return m.Info.Path, m.InitErr
	}
	m.Info.Exists = true
	m.Info.Content = domain.RenderConfigTemplate(cfg)
	return m.Info.Path, nil
}
