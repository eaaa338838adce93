package tui

import (
	"time"

	"github.com/runoshun/worklog/internal/usecase"
)

// Msg is the sealed interface for all dashboard messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgSummaryLoaded is sent when the day summary is loaded.
type MsgSummaryLoaded struct {
	Out *usecase.ShowSummaryOutput
}

func (MsgSummaryLoaded) sealed() {}

// MsgTimerLoaded is sent when the timer state is loaded.
type MsgTimerLoaded struct {
	Status *usecase.TimerStatusOutput
}

func (MsgTimerLoaded) sealed() {}

// MsgTick fires once a minute to credit the running timer.
type MsgTick struct {
	Time time.Time
}

func (MsgTick) sealed() {}

// MsgTimerChanged is sent after the timer was started, stopped or ticked.
type MsgTimerChanged struct {
	Notice string
	Reload bool // Actual minutes changed; the summary should be reloaded
}

func (MsgTimerChanged) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
