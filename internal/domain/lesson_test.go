package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskID(t *testing.T) {
	assert.Equal(t, "2024-06-01-task-1", TaskID("2024-06-01", 1))
	assert.Equal(t, "2024-06-01-task-12", TaskID("2024-06-01", 12))
}

func TestRecomputeProgress_NoTasks(t *testing.T) {
	l := &Lesson{Completed: true, ProgressPct: 100}
	l.RecomputeProgress()
	assert.Equal(t, 0, l.ProgressPct)
	assert.False(t, l.Completed)
}

func TestRecomputeProgress_Partial(t *testing.T) {
	l := &Lesson{Tasks: []Task{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c"},
	}}
	l.RecomputeProgress()
	assert.Equal(t, 33, l.ProgressPct)
	assert.False(t, l.Completed)
}

func TestRecomputeProgress_AllDone(t *testing.T) {
	l := &Lesson{Tasks: []Task{
		{ID: "a", Completed: true},
		{ID: "b", Completed: true},
	}}
	l.RecomputeProgress()
	assert.Equal(t, 100, l.ProgressPct)
	assert.True(t, l.Completed)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-06-01"))
	assert.False(t, ValidDate("2024-6-1"))
	assert.False(t, ValidDate("June 1st"))
	assert.False(t, ValidDate(""))
}
