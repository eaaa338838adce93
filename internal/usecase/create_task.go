package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/worklog/internal/domain"
)

// CreateTaskInput contains the parameters for logging a new task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	Date       time.Time // Zero = today
	CategoryID *string
	PriorityID *string
	Title      string // Required
	StartTime  string // "HH:MM", required
	EndTime    string // "HH:MM", required; before StartTime crosses midnight
	Assignee   string
	Status     domain.Status // Empty = todo
	Tags       []string
}

// CreateTaskOutput contains the result of creating a task.
type CreateTaskOutput struct {
	Task *domain.Task
}

// CreateTask is the use case for logging a new task.
type CreateTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *CreateTask {
	return &CreateTask{tasks: tasks, clock: clock, logger: logger}
}

// Execute validates the input and creates the task.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	start, end, err := normalizeClocks(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	date := in.Date
	if date.IsZero() {
		date = uc.clock.Now()
	}

	task := &domain.Task{
		Title:      title,
		StartTime:  start,
		EndTime:    end,
		CategoryID: in.CategoryID,
		PriorityID: in.PriorityID,
		Date:       domain.Day(date),
		Tags:       domain.MergeTags(nil, in.Tags, nil),
		Assignee:   in.Assignee,
		Status:     status,
	}

	created, err := uc.tasks.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	uc.logger.Info("task", fmt.Sprintf("created task %s %q", created.ID, created.Title))

	return &CreateTaskOutput{Task: created}, nil
}

// normalizeClocks validates both ends and returns them as zero-padded HH:MM.
func normalizeClocks(start, end string) (string, string, error) {
	s, err := domain.ParseClock(start)
	if err != nil {
		return "", "", fmt.Errorf("start %q: %w", start, err)
	}
	e, err := domain.ParseClock(end)
	if err != nil {
		return "", "", fmt.Errorf("end %q: %w", end, err)
	}
	return domain.FormatClock(s), domain.FormatClock(e), nil
}
