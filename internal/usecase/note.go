package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/worklog/internal/domain"
)

// ShowNoteInput contains the parameters for reading the daily note.
type ShowNoteInput struct {
	Date time.Time // Zero = today
}

// ShowNoteOutput contains the note, or nil if there is none.
type ShowNoteOutput struct {
	Date time.Time
	Note *domain.Note
}

// ShowNote reads the daily note.
type ShowNote struct {
	notes domain.NoteRepository
	clock domain.Clock
}

// NewShowNote creates a new ShowNote use case.
func NewShowNote(notes domain.NoteRepository, clock domain.Clock) *ShowNote {
	return &ShowNote{notes: notes, clock: clock}
}

// Execute fetches the note.
func (uc *ShowNote) Execute(ctx context.Context, in ShowNoteInput) (*ShowNoteOutput, error) {
	date := dayOrToday(in.Date, uc.clock)
	note, err := uc.notes.GetNote(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &ShowNoteOutput{Date: date, Note: note}, nil
}

// SaveNoteInput contains the parameters for saving the daily note.
type SaveNoteInput struct {
	Date    time.Time // Zero = today
	Content string
}

// SaveNoteOutput contains the stored note.
type SaveNoteOutput struct {
	Note    *domain.Note
	Created bool
}

// SaveNote creates or replaces the daily note.
type SaveNote struct {
	notes  domain.NoteRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewSaveNote creates a new SaveNote use case.
func NewSaveNote(notes domain.NoteRepository, clock domain.Clock, logger domain.Logger) *SaveNote {
	return &SaveNote{notes: notes, clock: clock, logger: logger}
}

// Execute updates the existing note for the date, or creates one.
func (uc *SaveNote) Execute(ctx context.Context, in SaveNoteInput) (*SaveNoteOutput, error) {
	date := dayOrToday(in.Date, uc.clock)
	existing, err := uc.notes.GetNote(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	if existing == nil {
		note, err := uc.notes.CreateNote(ctx, date, in.Content)
		if err != nil {
			return nil, fmt.Errorf("create note: %w", err)
		}
		uc.logger.Info("note", fmt.Sprintf("created note for %s", domain.FormatDate(date)))
		return &SaveNoteOutput{Note: note, Created: true}, nil
	}

	if err := uc.notes.UpdateNote(ctx, existing.ID, in.Content); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	existing.Content = in.Content
	uc.logger.Info("note", fmt.Sprintf("updated note for %s", domain.FormatDate(date)))
	return &SaveNoteOutput{Note: existing}, nil
}

func dayOrToday(date time.Time, clock domain.Clock) time.Time {
	if date.IsZero() {
		date = clock.Now()
	}
	return domain.Day(date)
}
