package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotFound         = errors.New("resource not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidClock     = errors.New("invalid clock time (want HH:MM)")
	ErrInvalidDate      = errors.New("invalid date (want YYYY-MM-DD)")
	ErrInvalidMove      = errors.New("invalid move")
	ErrInvalidGroupBy   = errors.New("invalid group key (want assignee or status)")
	ErrInvalidGoal      = errors.New("goal minutes must not be negative")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoActiveTimer    = errors.New("no active timer")
	ErrStateCorrupted   = errors.New("local state file is corrupted")
	ErrNoBaseURL        = errors.New("api base_url is not configured")
	ErrConfigExists     = errors.New("config file already exists")
)
