package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	u := NewUser("alice", now)
	assert.Equal(t, "alice", u.ID)
	assert.Equal(t, now.UTC(), u.CreatedAt)
	assert.Equal(t, 0, u.LessonsCompleted)
	assert.Equal(t, 0, u.Streak)
}

func TestRecordLessonCompleted_FirstLesson(t *testing.T) {
	u := NewUser("alice", time.Now())
	u.RecordLessonCompleted("2024-06-01")
	assert.Equal(t, 1, u.LessonsCompleted)
	assert.Equal(t, 1, u.Streak)
	assert.Equal(t, "2024-06-01", u.LastCompleted)
}

func TestRecordLessonCompleted_SameDayNoOp(t *testing.T) {
	u := NewUser("alice", time.Now())
	u.RecordLessonCompleted("2024-06-01")
	u.RecordLessonCompleted("2024-06-01")
	assert.Equal(t, 1, u.LessonsCompleted)
	assert.Equal(t, 1, u.Streak)
}

func TestRecordLessonCompleted_ConsecutiveDaysExtendStreak(t *testing.T) {
	u := NewUser("alice", time.Now())
	u.RecordLessonCompleted("2024-06-01")
	u.RecordLessonCompleted("2024-06-02")
	u.RecordLessonCompleted("2024-06-03")
	assert.Equal(t, 3, u.LessonsCompleted)
	assert.Equal(t, 3, u.Streak)
}

func TestRecordLessonCompleted_GapResetsStreak(t *testing.T) {
	u := NewUser("alice", time.Now())
	u.RecordLessonCompleted("2024-06-01")
	u.RecordLessonCompleted("2024-06-02")
	u.RecordLessonCompleted("2024-06-05")
	assert.Equal(t, 3, u.LessonsCompleted)
	assert.Equal(t, 1, u.Streak)
	assert.Equal(t, "2024-06-05", u.LastCompleted)
}
