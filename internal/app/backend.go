package app

import (
	"context"
	"time"

	"github.com/runoshun/worklog/internal/domain"
)

// unconfiguredBackend stands in for the API client when it cannot be built.
// Every call returns the construction error.
type unconfiguredBackend struct {
	err error
}

var _ backend = unconfiguredBackend{}

func (b unconfiguredBackend) ListTasks(context.Context, domain.TaskScope) ([]*domain.Task, error) {
	return nil, b.err
}

func (b unconfiguredBackend) GetTask(context.Context, string) (*domain.Task, error) {
	return nil, b.err
}

func (b unconfiguredBackend) CreateTask(context.Context, *domain.Task) (*domain.Task, error) {
	return nil, b.err
}

func (b unconfiguredBackend) UpdateTask(context.Context, string, domain.TaskPatch) (*domain.Task, error) {
	return nil, b.err
}

func (b unconfiguredBackend) DeleteTask(context.Context, string) error { return b.err }

func (b unconfiguredBackend) ReorderTasks(context.Context, []domain.TaskChange) error { return b.err }

func (b unconfiguredBackend) ListCategories(context.Context) ([]domain.Category, error) {
	return nil, b.err
}

func (b unconfiguredBackend) ListPriorities(context.Context) ([]domain.Priority, error) {
	return nil, b.err
}

func (b unconfiguredBackend) ListTags(context.Context) ([]string, error) { return nil, b.err }

func (b unconfiguredBackend) GetNote(context.Context, time.Time) (*domain.Note, error) {
	return nil, b.err
}

func (b unconfiguredBackend) CreateNote(context.Context, time.Time, string) (*domain.Note, error) {
	return nil, b.err
}

func (b unconfiguredBackend) UpdateNote(context.Context, string, string) error { return b.err }
