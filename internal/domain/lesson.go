package domain

import "fmt"

// DateLayout is the calendar-date format used to key lessons.
const DateLayout = "2006-01-02"

// Lesson is the daily content unit for one user and one calendar date.
// Field names match the wire/document format, so the same struct is used
// at the API boundary and the store boundary.
type Lesson struct {
	Date            string `json:"date"`
	Title           string `json:"title"`
	Lesson          string `json:"lesson"`
	Summary         string `json:"summary"`
	Motivation      string `json:"motivation"`
	Quote           string `json:"quote"`
	SecretHacks     string `json:"secret_hacks_and_shortcuts"`
	TinyRituals     string `json:"tiny_daily_rituals_that_transform"`
	InfographicHTML string `json:"visual_infographic_html,omitempty"`
	Tasks           []Task `json:"tasks"`
	Completed       bool   `json:"completed"`
	ProgressPct     int    `json:"progress_percentage"`
}

// Task is a single actionable item embedded in a Lesson.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    int      `json:"priority"`
	CreatedAt   string   `json:"created_at,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TaskID builds the stable identifier for the nth task of a lesson.
// Tasks are numbered from 1 in sequence order.
func TaskID(date string, n int) string {
	return fmt.Sprintf("%s-task-%d", date, n)
}

// RecomputeProgress refreshes ProgressPct and Completed from the task list.
// A lesson with no tasks is never considered completed by progress alone.
func (l *Lesson) RecomputeProgress() {
	if len(l.Tasks) == 0 {
		l.ProgressPct = 0
		l.Completed = false
		return
	}
	done := 0
	for _, t := range l.Tasks {
		if t.Completed {
			done++
		}
	}
	l.ProgressPct = done * 100 / len(l.Tasks)
	l.Completed = done == len(l.Tasks)
}
