package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goalgrid/goalgrid/internal/docstore"
	"github.com/goalgrid/goalgrid/internal/domain"
)

const (
	usersCollection = "users"
	lessonsField    = "lessons_by_date"
)

// LessonStore is the durable mapping from (user id, date) to a lesson
// document, with merge-on-write update semantics.
type LessonStore interface {
	// GetUser returns the user record, creating it with default counters on
	// first access.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// SaveUser merges the user's own fields back into the document, leaving
	// the lesson map untouched.
	SaveUser(ctx context.Context, u *domain.User) error

	// ListUsers returns all known user ids.
	ListUsers(ctx context.Context) ([]string, error)

	// GetLesson returns the lesson at (userID, date), or ErrNotFound.
	GetLesson(ctx context.Context, userID, date string) (*domain.Lesson, error)

	// UpsertLesson merges the lesson document into the slot keyed by its
	// date. Idempotent; later writes for the same key overwrite, never
	// duplicate.
	UpsertLesson(ctx context.Context, userID string, lesson *domain.Lesson) error

	// ReplaceTasks overwrites only the task sequence of the lesson at
	// (userID, date), leaving all other lesson fields untouched. Returns
	// ErrNotFound when no lesson exists at that key.
	ReplaceTasks(ctx context.Context, userID, date string, tasks []domain.Task) error
}

type lessonStore struct {
	docs docstore.Store
	now  func() time.Time
}

// NewLessonStore creates a LessonStore backed by the given document store.
func NewLessonStore(docs docstore.Store) LessonStore {
	return &lessonStore{docs: docs, now: time.Now}
}

func (s *lessonStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	doc, err := s.docs.Get(ctx, usersCollection, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		u := domain.NewUser(userID, s.now())
		if err := s.SaveUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", userID, err)
	}

	var u domain.User
	if err := fromDoc(doc, &u); err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	if u.ID == "" {
		u.ID = userID
	}
	return &u, nil
}

func (s *lessonStore) SaveUser(ctx context.Context, u *domain.User) error {
	doc, err := toDoc(u)
	if err != nil {
		return fmt.Errorf("user %s: %w", u.ID, err)
	}
	if err := s.docs.Set(ctx, usersCollection, u.ID, doc, true); err != nil {
		return fmt.Errorf("saving user %s: %w", u.ID, err)
	}
	return nil
}

func (s *lessonStore) ListUsers(ctx context.Context) ([]string, error) {
	ids, err := s.docs.Stream(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return ids, nil
}

func (s *lessonStore) GetLesson(ctx context.Context, userID, date string) (*domain.Lesson, error) {
	lessons, err := s.lessonsByDate(ctx, userID)
	if err != nil {
		return nil, err
	}
	raw, ok := lessons[date]
	if !ok {
		return nil, fmt.Errorf("lesson %s/%s: %w", userID, date, ErrNotFound)
	}

	var lesson domain.Lesson
	if err := fromDoc(raw, &lesson); err != nil {
		return nil, fmt.Errorf("lesson %s/%s: %w", userID, date, err)
	}
	if lesson.Date == "" {
		lesson.Date = date
	}
	return &lesson, nil
}

func (s *lessonStore) UpsertLesson(ctx context.Context, userID string, lesson *domain.Lesson) error {
	if lesson.Tasks == nil {
		lesson.Tasks = []domain.Task{}
	}
	doc, err := toDoc(lesson)
	if err != nil {
		return fmt.Errorf("lesson %s/%s: %w", userID, lesson.Date, err)
	}
	patch := map[string]any{
		lessonsField: map[string]any{lesson.Date: doc},
	}
	if err := s.docs.Set(ctx, usersCollection, userID, patch, true); err != nil {
		return fmt.Errorf("upserting lesson %s/%s: %w", userID, lesson.Date, err)
	}
	return nil
}

func (s *lessonStore) ReplaceTasks(ctx context.Context, userID, date string, tasks []domain.Task) error {
	lessons, err := s.lessonsByDate(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := lessons[date]; !ok {
		return fmt.Errorf("lesson %s/%s: %w", userID, date, ErrNotFound)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	taskDocs := make([]any, len(tasks))
	for i, t := range tasks {
		d, err := toDoc(t)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		taskDocs[i] = d
	}

	fields := map[string]any{
		lessonsField + "." + date + ".tasks": taskDocs,
	}
	if err := s.docs.Update(ctx, usersCollection, userID, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("lesson %s/%s: %w", userID, date, ErrNotFound)
		}
		return fmt.Errorf("replacing tasks %s/%s: %w", userID, date, err)
	}
	return nil
}

// lessonsByDate loads the user's dated-lesson map. A missing user document
// yields an empty map, not an error; lesson lookups report ErrNotFound at
// the lesson granularity.
func (s *lessonStore) lessonsByDate(ctx context.Context, userID string) (map[string]any, error) {
	doc, err := s.docs.Get(ctx, usersCollection, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", userID, err)
	}
	lessons, _ := doc[lessonsField].(map[string]any)
	if lessons == nil {
		lessons = map[string]any{}
	}
	return lessons, nil
}
