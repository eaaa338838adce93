package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/worklog/internal/domain"
)

// Colors defines the color palette for the dashboard.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Goal status colors
	Over    lipgloss.Color
	Under   lipgloss.Color
	OnTrack lipgloss.Color
	Tracked lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow

	Over:    lipgloss.Color("#D63031"),
	Under:   lipgloss.Color("#FDCB6E"),
	OnTrack: lipgloss.Color("#00B894"),
	Tracked: lipgloss.Color("#74B9FF"),
}

// Styles contains all the lipgloss styles for the dashboard.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Section      lipgloss.Style
	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	TaskTiming   lipgloss.Style
	Muted        lipgloss.Style
	Timer        lipgloss.Style
	Notice       lipgloss.Style
	Error        lipgloss.Style
	Footer       lipgloss.Style
}

// DefaultStyles returns the default dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary).
			MarginTop(1),
		TaskNormal: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),
		TaskSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),
		TaskTiming: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Success),
		Muted: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Timer: lipgloss.NewStyle().
			Foreground(Colors.Success),
		Notice: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		Error: lipgloss.NewStyle().
			Foreground(Colors.Error),
		Footer: lipgloss.NewStyle().
			MarginTop(1),
	}
}

// GoalStyle returns the style for a goal status.
func (s Styles) GoalStyle(status domain.GoalStatus) lipgloss.Style {
	base := lipgloss.NewStyle()
	switch status {
	case domain.GoalOver:
		return base.Foreground(Colors.Over)
	case domain.GoalUnder:
		return base.Foreground(Colors.Under)
	case domain.GoalOnTrack:
		return base.Foreground(Colors.OnTrack)
	case domain.GoalTracked:
		return base.Foreground(Colors.Tracked)
	default:
		return s.Muted
	}
}
