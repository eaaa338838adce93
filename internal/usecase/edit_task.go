// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/usecase/shared"
)

// EditTaskInput contains the parameters for editing a task.
// All fields except TaskID are optional. Only non-nil/non-empty fields will be updated.
// Fields are ordered to minimize memory padding.
type EditTaskInput struct {
	Date          *time.Time
	Title         *string
	StartTime     *string
	EndTime       *string
	CategoryID    *string // New category (nil = no change)
	PriorityID    *string
	Assignee      *string
	Status        *domain.Status
	TaskID        string   // Task ID to edit (required)
	AddTags       []string // Tags to add
	RemoveTags    []string // Tags to remove
	ClearCategory bool
	ClearPriority bool
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task *domain.Task // The updated task
}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskRepository, logger domain.Logger) *EditTask {
	return &EditTask{tasks: tasks, logger: logger}
}

// Execute edits a task with the given input.
func (uc *EditTask) Execute(ctx context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	patch, err := uc.buildPatch(in)
	if err != nil {
		return nil, err
	}

	// Tag edits are relative, so the current tags are needed to send an absolute list.
	var current *domain.Task
	if len(in.AddTags) > 0 || len(in.RemoveTags) > 0 {
		current, err = shared.GetTask(ctx, uc.tasks, in.TaskID)
		if err != nil {
			return nil, err
		}
		tags := domain.MergeTags(current.Tags, in.AddTags, in.RemoveTags)
		if !slices.Equal(tags, current.Tags) {
			patch.Tags = tags
			patch.SetTags = true
		}
	}

	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	updated, err := uc.tasks.UpdateTask(ctx, in.TaskID, patch)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", in.TaskID, err)
	}
	if updated == nil {
		if current == nil {
			if current, err = shared.GetTask(ctx, uc.tasks, in.TaskID); err != nil {
				return nil, err
			}
		} else {
			patch.Apply(current)
		}
		updated = current
	}
	uc.logger.Info("task", fmt.Sprintf("edited task %s", in.TaskID))

	return &EditTaskOutput{Task: updated}, nil
}

func (uc *EditTask) buildPatch(in EditTaskInput) (domain.TaskPatch, error) {
	var p domain.TaskPatch

	if in.TaskID == "" {
		return p, domain.ErrTaskNotFound
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return p, domain.ErrEmptyTitle
		}
		p.Title = &title
	}
	for _, c := range []struct {
		src  *string
		dst  **string
		name string
	}{
		{in.StartTime, &p.StartTime, "start"},
		{in.EndTime, &p.EndTime, "end"},
	} {
		if c.src == nil {
			continue
		}
		m, err := domain.ParseClock(*c.src)
		if err != nil {
			return p, fmt.Errorf("%s %q: %w", c.name, *c.src, err)
		}
		v := domain.FormatClock(m)
		*c.dst = &v
	}
	if in.Date != nil {
		d := domain.Day(*in.Date)
		p.Date = &d
	}
	if in.ClearCategory {
		var none *string
		p.CategoryID = &none
	} else if in.CategoryID != nil {
		p.CategoryID = &in.CategoryID
	}
	if in.ClearPriority {
		var none *string
		p.PriorityID = &none
	} else if in.PriorityID != nil {
		p.PriorityID = &in.PriorityID
	}
	if in.Assignee != nil {
		p.Assignee = in.Assignee
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return p, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
		}
		p.Status = in.Status
	}
	return p, nil
}
