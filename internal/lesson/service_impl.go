package lesson

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goalgrid/goalgrid/internal/domain"
	"github.com/goalgrid/goalgrid/internal/oracle"
	"github.com/goalgrid/goalgrid/internal/store"
)

type service struct {
	lessons  store.LessonStore
	client   oracle.Client
	observer UseCaseObserver
	now      func() time.Time
}

// NewService creates the daily-lesson service. The oracle client may be nil;
// every generation call then uses its fallback path.
func NewService(lessons store.LessonStore, client oracle.Client, observers ...UseCaseObserver) Service {
	return &service{
		lessons:  lessons,
		client:   client,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *service) CreateDailyLesson(ctx context.Context, userID, date string, reqCtx CreateContext) (lesson *domain.Lesson, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{"user": userID, "date": date}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-daily-lesson",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	user, err := s.lessons.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(reqCtx.Goals) > 0 {
		user.Goals = reqCtx.Goals
		if err := s.lessons.SaveUser(ctx, user); err != nil {
			return nil, err
		}
	}

	lesson = s.generateLesson(ctx, userID, date, user.Goals, reqCtx)
	fields["fallback"] = lesson.Title == FallbackLesson(date).Title

	if err := s.lessons.UpsertLesson(ctx, userID, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// generateLesson asks the oracle for lesson content and degrades to the
// fixed fallback template on any generation failure.
func (s *service) generateLesson(ctx context.Context, userID, date string, goals []string, reqCtx CreateContext) *domain.Lesson {
	if s.client == nil {
		return FallbackLesson(date)
	}

	resp, err := s.client.Generate(ctx, oracle.GenerateRequest{
		Task:         oracle.TaskLesson,
		SystemPrompt: lessonSystemPrompt,
		UserPrompt:   buildLessonUserPrompt(userID, date, goals, reqCtx),
	})
	if err != nil {
		return FallbackLesson(date)
	}

	content, err := oracle.ExtractJSON[lessonContent](resp.Text, validateLessonContent)
	if err != nil {
		return FallbackLesson(date)
	}

	lesson := &domain.Lesson{
		Date:            date,
		Title:           content.Title,
		Lesson:          content.Lesson,
		Summary:         content.Summary,
		Motivation:      content.Motivation,
		Quote:           content.Quote,
		SecretHacks:     content.SecretHacks,
		TinyRituals:     content.TinyRituals,
		InfographicHTML: content.InfographicHTML,
		Tasks:           []domain.Task{},
	}
	fillFromFallback(lesson)
	return lesson
}

func (s *service) GetLesson(ctx context.Context, userID, date string) (*domain.Lesson, error) {
	return s.lessons.GetLesson(ctx, userID, date)
}

func (s *service) GenerateTasks(ctx context.Context, userID, date string, count int) ([]domain.Task, error) {
	if count <= 0 {
		count = 3
	}
	lesson, err := s.lessons.GetLesson(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC().Format(time.RFC3339)
	tasks := make([]domain.Task, count)
	for i := range tasks {
		n := i + 1
		tasks[i] = domain.Task{
			ID:          domain.TaskID(date, n),
			Title:       fmt.Sprintf("Step %d", n),
			Description: fmt.Sprintf("Work through step %d of %q.", n, lesson.Title),
			Completed:   false,
			Priority:    n,
			CreatedAt:   createdAt,
		}
	}

	if err := s.lessons.ReplaceTasks(ctx, userID, date, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *service) RegenerateTasksWithAI(ctx context.Context, userID, date, instructions string) (ok bool, err error) {
	startedAt := s.now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "regenerate-tasks",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user": userID, "date": date, "replaced": ok},
		})
	}()

	lesson, err := s.lessons.GetLesson(ctx, userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(lesson.Tasks) == 0 || s.client == nil {
		return false, nil
	}

	resp, err := s.client.Generate(ctx, oracle.GenerateRequest{
		Task:         oracle.TaskRewrite,
		SystemPrompt: rewriteTasksSystemPrompt,
		UserPrompt:   buildRewriteUserPrompt(lesson.Tasks, instructions),
	})
	if err != nil {
		return false, nil
	}

	items, err := oracle.ExtractJSON[[]taskItem](resp.Text, validateTaskItems)
	if err != nil {
		return false, nil
	}

	createdAt := s.now().UTC().Format(time.RFC3339)
	tasks := make([]domain.Task, len(items))
	for i, item := range items {
		n := i + 1
		tasks[i] = domain.Task{
			ID:          domain.TaskID(date, n),
			Title:       domain.CoalesceStr(item.Title, item.Description),
			Description: item.Description,
			Completed:   false,
			Priority:    n,
			CreatedAt:   createdAt,
		}
	}

	if err := s.lessons.ReplaceTasks(ctx, userID, date, tasks); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) RegenerateLesson(ctx context.Context, userID, date, instructions string) (ok bool, err error) {
	startedAt := s.now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "regenerate-lesson",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user": userID, "date": date, "replaced": ok},
		})
	}()

	existing, err := s.lessons.GetLesson(ctx, userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if s.client == nil {
		return false, nil
	}

	prompt := fmt.Sprintf("Rewrite this daily lesson.\nInstructions: %s\n\nCurrent lesson JSON fields:\ntitle: %s\nlesson: %s\nsummary: %s\n",
		instructions, existing.Title, existing.Lesson, existing.Summary)
	resp, err := s.client.Generate(ctx, oracle.GenerateRequest{
		Task:         oracle.TaskLesson,
		SystemPrompt: lessonSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return false, nil
	}
	content, err := oracle.ExtractJSON[lessonContent](resp.Text, validateLessonContent)
	if err != nil {
		return false, nil
	}

	// Regenerated content replaces the lesson wholesale; tasks referencing
	// the old content are cleared rather than left stale.
	lesson := &domain.Lesson{
		Date:            date,
		Title:           content.Title,
		Lesson:          content.Lesson,
		Summary:         content.Summary,
		Motivation:      content.Motivation,
		Quote:           content.Quote,
		SecretHacks:     content.SecretHacks,
		TinyRituals:     content.TinyRituals,
		InfographicHTML: content.InfographicHTML,
		Tasks:           []domain.Task{},
	}
	fillFromFallback(lesson)

	if err := s.lessons.UpsertLesson(ctx, userID, lesson); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) FetchTodaysTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	lesson, err := s.lessons.GetLesson(ctx, userID, s.now().Format(domain.DateLayout))
	if errors.Is(err, store.ErrNotFound) {
		return []domain.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	if lesson.Tasks == nil {
		return []domain.Task{}, nil
	}
	return lesson.Tasks, nil
}

func (s *service) SummarizeTasks(ctx context.Context, userID, date string) (string, error) {
	lesson, err := s.lessons.GetLesson(ctx, userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return fallbackSummary, nil
	}
	if err != nil {
		return "", err
	}
	if s.client == nil || len(lesson.Tasks) == 0 {
		return fallbackSummary, nil
	}

	resp, err := s.client.Generate(ctx, oracle.GenerateRequest{
		Task:         oracle.TaskSummary,
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   buildSummaryUserPrompt(lesson),
	})
	if err != nil {
		return fallbackSummary, nil
	}
	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return fallbackSummary, nil
	}
	return summary, nil
}

func (s *service) CompleteTask(ctx context.Context, userID, date, taskID string) (*domain.Lesson, error) {
	lesson, err := s.lessons.GetLesson(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lesson.Tasks {
		if lesson.Tasks[i].ID == taskID {
			lesson.Tasks[i].Completed = true
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("task %s: %w", taskID, store.ErrNotFound)
	}

	wasCompleted := lesson.Completed
	lesson.RecomputeProgress()

	if err := s.lessons.UpsertLesson(ctx, userID, lesson); err != nil {
		return nil, err
	}

	if lesson.Completed && !wasCompleted {
		user, err := s.lessons.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		user.RecordLessonCompleted(date)
		if err := s.lessons.SaveUser(ctx, user); err != nil {
			return nil, err
		}
	}
	return lesson, nil
}
