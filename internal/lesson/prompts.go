package lesson

import (
	"fmt"
	"strings"

	"github.com/goalgrid/goalgrid/internal/domain"
)

// lessonSystemPrompt instructs the model to produce a full daily lesson.
const lessonSystemPrompt = `You are an expert life coach writing one personal daily lesson.

You must output ONLY a JSON object with these exact fields, all strings:
- title: short, energizing lesson title
- lesson: the lesson body, 2-4 paragraphs of plain text
- summary: 1-2 sentence summary of the lesson
- motivation: a short motivational message addressed to the reader
- quote: one relevant quote with attribution
- secret_hacks_and_shortcuts: 2-3 practical shortcuts related to the lesson
- tiny_daily_rituals_that_transform: 2-3 small daily rituals to build the habit
- visual_infographic_html: a small self-contained HTML fragment illustrating the lesson

CRITICAL RULES:
1. Output ONLY the JSON object, no markdown, no explanation
2. Every field must be non-empty
3. Ground the lesson in the user's goals and recent progress when provided`

// rewriteTasksSystemPrompt instructs the model to rewrite an existing task list.
const rewriteTasksSystemPrompt = `You are a helpful life coach rewriting a user's task list.

You must output ONLY a JSON array of task objects, each with:
- title: short actionable task title
- description: one or two sentences of concrete instruction

CRITICAL RULES:
1. Follow the rewriting instructions exactly
2. Keep the list focused: between 1 and 7 tasks
3. Output ONLY the JSON array, no markdown, no explanation`

// summarySystemPrompt instructs the model to summarize the day's tasks.
const summarySystemPrompt = `You are an encouraging life coach.
Summarize the user's tasks for today in 2-3 motivating sentences of plain text.
Address the reader directly. Do not use JSON or markdown.`

func buildLessonUserPrompt(userID, date string, goals []string, reqCtx CreateContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the daily lesson for %s.\n", date)
	if len(goals) > 0 {
		b.WriteString("\nThe user's goals:\n")
		for _, g := range goals {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}
	if reqCtx.Focus != "" {
		fmt.Fprintf(&b, "\nToday's focus: %s\n", reqCtx.Focus)
	}
	if reqCtx.RecentProgress != "" {
		fmt.Fprintf(&b, "\nRecent progress: %s\n", reqCtx.RecentProgress)
	}
	return b.String()
}

// buildRewriteUserPrompt includes the full original task text so the model
// can use it as an editing basis.
func buildRewriteUserPrompt(tasks []domain.Task, instructions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instructions: %s\n\nTasks:\n", instructions)
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s", t.Title)
		if t.Description != "" {
			fmt.Fprintf(&b, ": %s", t.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func buildSummaryUserPrompt(lesson *domain.Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson: %s\n\nTasks for %s:\n", lesson.Title, lesson.Date)
	for _, t := range lesson.Tasks {
		status := "open"
		if t.Completed {
			status = "done"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", status, t.Title)
	}
	return b.String()
}
