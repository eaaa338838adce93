package domain

import (
	"context"
	"time"
)

// TaskRepository is the backend's task resource.
type TaskRepository interface {
	// ListTasks returns the tasks in scope.
	ListTasks(ctx context.Context, scope TaskScope) ([]*Task, error)

	// GetTask returns a single task. Missing tasks yield ErrTaskNotFound.
	GetTask(ctx context.Context, id string) (*Task, error)

	// CreateTask creates a task and returns it with its backend ID.
	CreateTask(ctx context.Context, task *Task) (*Task, error)

	// UpdateTask applies a partial update and returns the stored task, or nil
	// when the backend does not echo it.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}

// BatchReorderer persists all changes of one board move in a single call.
// Backends that support it are used instead of per-task updates.
type BatchReorderer interface {
	ReorderTasks(ctx context.Context, changes []TaskChange) error
}

// CatalogRepository provides the reference lists tasks point to.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListPriorities(ctx context.Context) ([]Priority, error)
	ListTags(ctx context.Context) ([]string, error)
}

// NoteRepository manages the daily note.
type NoteRepository interface {
	// GetNote returns the note for date, or nil if there is none.
	GetNote(ctx context.Context, date time.Time) (*Note, error)

	// CreateNote creates the note for date.
	CreateNote(ctx context.Context, date time.Time, content string) (*Note, error)

	// UpdateNote replaces the content of an existing note.
	UpdateNote(ctx context.Context, id, content string) error
}

// LocalStateStore persists client-local state (goals, active timer).
type LocalStateStore interface {
	// Load returns the current state. A missing store yields an empty state.
	Load() (*LocalState, error)

	// Update runs fn on the current state under an exclusive lock and saves
	// the result unless fn returns an error.
	Update(fn func(*LocalState) error) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + explicit file).
	Load() (*Config, error)
}

// Logger records operational events.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
