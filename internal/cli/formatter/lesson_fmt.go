package formatter

import (
	"fmt"
	"strings"

	"github.com/goalgrid/goalgrid/internal/domain"
)

// Lesson renders a full lesson for terminal display.
func Lesson(l *domain.Lesson) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(fmt.Sprintf("%s — %s", l.Date, l.Title)))
	b.WriteString("\n\n")
	b.WriteString(StyleFg.Render(l.Lesson))
	b.WriteString("\n\n")

	if l.Quote != "" {
		b.WriteString(StylePurple.Render(l.Quote))
		b.WriteString("\n\n")
	}
	if l.Motivation != "" {
		b.WriteString(StyleGreen.Render(l.Motivation))
		b.WriteString("\n\n")
	}
	if l.SecretHacks != "" {
		b.WriteString(StyleBold.Render("Shortcuts"))
		b.WriteString("\n")
		b.WriteString(StyleFg.Render(l.SecretHacks))
		b.WriteString("\n\n")
	}
	if l.TinyRituals != "" {
		b.WriteString(StyleBold.Render("Daily rituals"))
		b.WriteString("\n")
		b.WriteString(StyleFg.Render(l.TinyRituals))
		b.WriteString("\n\n")
	}

	b.WriteString(Tasks(l.Tasks))
	if len(l.Tasks) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("Progress: %d%%", l.ProgressPct)))
		b.WriteString("\n")
	}
	return b.String()
}

// Tasks renders a task list with completion markers.
func Tasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return StyleDim.Render("No tasks yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleBold.Render("Tasks"))
	b.WriteString("\n")
	for _, t := range tasks {
		b.WriteString(TaskLine(t, false))
		b.WriteString("\n")
	}
	return b.String()
}

// TaskLine renders one task row, optionally highlighted as selected.
func TaskLine(t domain.Task, selected bool) string {
	marker := StyleDim.Render("[ ]")
	title := StyleFg.Render(t.Title)
	if t.Completed {
		marker = StyleGreen.Render("[x]")
		title = StyleDim.Render(t.Title)
	}
	line := fmt.Sprintf("%s %s", marker, title)
	if t.Description != "" {
		line += StyleDim.Render("  " + t.Description)
	}
	if selected {
		return StyleYellow.Render("> ") + line
	}
	return "  " + line
}
