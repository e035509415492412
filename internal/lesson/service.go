package lesson

import (
	"context"

	"github.com/goalgrid/goalgrid/internal/domain"
)

// CreateContext carries the caller-supplied context for lesson generation.
type CreateContext struct {
	Goals          []string `json:"goals,omitempty"`
	Focus          string   `json:"focus,omitempty"`
	RecentProgress string   `json:"recent_progress,omitempty"`
}

// Service orchestrates content generation and the lesson store for one
// user's daily lesson lifecycle.
//
// Oracle failures never escape this interface as errors: content calls
// degrade to fallback values, mutation calls report false and leave stored
// state untouched. Errors returned here are store or input failures.
type Service interface {
	// CreateDailyLesson generates and persists the lesson for (userID, date).
	// Idempotent: a second call for the same key overwrites the content
	// fields and clears the task list, it never duplicates the lesson.
	CreateDailyLesson(ctx context.Context, userID, date string, reqCtx CreateContext) (*domain.Lesson, error)

	// GetLesson returns the stored lesson, or store.ErrNotFound.
	GetLesson(ctx context.Context, userID, date string) (*domain.Lesson, error)

	// GenerateTasks replaces the lesson's tasks with count deterministic
	// placeholder tasks numbered from 1. Returns store.ErrNotFound when no
	// lesson exists at the key.
	GenerateTasks(ctx context.Context, userID, date string, count int) ([]domain.Task, error)

	// RegenerateTasksWithAI rewrites the current tasks under the given
	// instructions. Returns false, leaving stored tasks byte-for-byte
	// unchanged, when the lesson or its tasks are absent or the oracle
	// fails. New task ids are renumbered 1..N in output order.
	RegenerateTasksWithAI(ctx context.Context, userID, date, instructions string) (bool, error)

	// RegenerateLesson rewrites the lesson's content fields under the given
	// instructions and clears the task list. Returns false, leaving the
	// stored lesson unchanged, when the lesson is absent or the oracle fails.
	RegenerateLesson(ctx context.Context, userID, date, instructions string) (bool, error)

	// FetchTodaysTasks returns the task list for the server-local date.
	// Absent lesson yields an empty sequence, not an error.
	FetchTodaysTasks(ctx context.Context, userID string) ([]domain.Task, error)

	// SummarizeTasks produces a motivating summary of the lesson's current
	// tasks. Falls back to a fixed encouraging sentence when the lesson is
	// absent or the oracle fails. Never mutates stored state.
	SummarizeTasks(ctx context.Context, userID, date string) (string, error)

	// CompleteTask marks one task done, refreshes the lesson's progress, and
	// updates the user's completion counters when the lesson finishes.
	CompleteTask(ctx context.Context, userID, date, taskID string) (*domain.Lesson, error)
}
