package tui

import (
	"fmt"
	"strings"

	"github.com/runoshun/worklog/internal/domain"
)

// View renders the dashboard.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("worklog  %s  %s",
		domain.FormatDate(m.date), m.date.Weekday())))
	b.WriteString("\n")

	if m.summary == nil {
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	} else {
		m.writeTotals(&b)
		m.writeTasks(&b)
		m.writeGoals(&b)
		m.writeCadence(&b)
	}

	m.writeTimer(&b)

	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = m.styles.Error.Render("Error: "+m.err.Error()) + "\n" + footer
	} else if m.notice != "" {
		footer = m.styles.Notice.Render(m.notice) + "\n" + footer
	}
	b.WriteString(m.styles.Footer.Render(footer))

	return m.styles.App.Render(b.String())
}

func (m *Model) writeTotals(b *strings.Builder) {
	s := m.summary.Summary
	fmt.Fprintf(b, "Total %s   Productive %s   Break %s   Score %d/100\n",
		domain.FormatMinutes(s.TotalMinutes),
		domain.FormatMinutes(s.ProductiveMinutes),
		domain.FormatMinutes(s.BreakMinutes),
		s.ProductivityScore)
	for _, w := range m.summary.Warnings {
		b.WriteString(m.styles.Notice.Render("! "+w) + "\n")
	}
}

func (m *Model) writeTasks(b *strings.Builder) {
	b.WriteString(m.styles.Section.Render("Tasks"))
	b.WriteString("\n")
	tasks := m.summary.Tasks
	if len(tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("  No tasks logged."))
		b.WriteString("\n")
		return
	}

	timing := ""
	if m.timer != nil && m.timer.Session != nil {
		timing = m.timer.Session.TaskID
	}
	for i, t := range tasks {
		cursor := "  "
		style := m.styles.TaskNormal
		if i == m.cursor {
			cursor = "> "
			style = m.styles.TaskSelected
		}
		marker := " "
		if t.ID == timing {
			marker = m.styles.TaskTiming.Render("●")
		}
		line := fmt.Sprintf("%s-%s %6s  %-14s %s",
			t.StartTime, t.EndTime,
			domain.FormatMinutes(domain.TaskDuration(t)),
			truncate(domain.CategoryName(m.summary.Categories, t.CategoryID), 14),
			t.Title)
		b.WriteString(cursor + marker + " " + style.Render(line) + "\n")
	}
}

func (m *Model) writeGoals(b *strings.Builder) {
	progress := m.summary.Goals.Progress
	if len(progress) == 0 {
		return
	}
	b.WriteString(m.styles.Section.Render("Goals"))
	b.WriteString("\n")
	for _, p := range progress {
		goal := "-"
		if p.Goal > 0 {
			goal = domain.FormatMinutes(p.Goal)
		}
		status := m.styles.GoalStyle(p.Status).Render(fmt.Sprintf("%-8s", p.Status.Display()))
		fmt.Fprintf(b, "  %-16s %7s / %-7s %4d%%  %s\n",
			truncate(p.Category.Name, 16), domain.FormatMinutes(p.Actual), goal, p.DisplayPercent, status)
	}
}

func (m *Model) writeCadence(b *strings.Builder) {
	a := m.summary.Cadence
	if a.Message == "" {
		return
	}
	b.WriteString(m.styles.Section.Render("Cadence"))
	b.WriteString("\n  " + a.Message + "\n")
}

func (m *Model) writeTimer(b *strings.Builder) {
	b.WriteString(m.styles.Section.Render("Timer"))
	b.WriteString("\n")
	if m.timer == nil || m.timer.Session == nil {
		b.WriteString(m.styles.Muted.Render("  Not running"))
		b.WriteString("\n")
		return
	}
	title := m.timer.Session.TaskID
	if m.timer.Task != nil {
		title = m.timer.Task.Title
	}
	b.WriteString(m.styles.Timer.Render(fmt.Sprintf("  %s  %s",
		title, domain.FormatMinutes(int(m.timer.Running.Minutes())))))
	b.WriteString("\n")
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
