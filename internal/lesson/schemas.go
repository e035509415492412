package lesson

import (
	"fmt"
	"strings"
)

// lessonContent is the JSON structure expected from a lesson generation call.
type lessonContent struct {
	Title           string `json:"title"`
	Lesson          string `json:"lesson"`
	Summary         string `json:"summary"`
	Motivation      string `json:"motivation"`
	Quote           string `json:"quote"`
	SecretHacks     string `json:"secret_hacks_and_shortcuts"`
	TinyRituals     string `json:"tiny_daily_rituals_that_transform"`
	InfographicHTML string `json:"visual_infographic_html"`
}

// validateLessonContent accepts partially-filled lessons; missing fields are
// patched from the fallback template later. Only a fully empty object is
// rejected.
func validateLessonContent(c lessonContent) error {
	if strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.Lesson) == "" {
		return fmt.Errorf("lesson content has neither title nor body")
	}
	return nil
}

// taskItem is one element of the JSON array expected from a task rewrite call.
type taskItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func validateTaskItems(items []taskItem) error {
	if len(items) == 0 {
		return fmt.Errorf("task list is empty")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Title) == "" && strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("task %d has neither title nor description", i)
		}
	}
	return nil
}
