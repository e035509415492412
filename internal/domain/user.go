package domain

import "time"

// User is the per-user progress record. Users are created lazily on first
// access and never deleted.
type User struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	LessonsCompleted int       `json:"lessons_completed"`
	Streak           int       `json:"streak"`
	LastCompleted    string    `json:"last_completed,omitempty"` // lesson date, YYYY-MM-DD
	Goals            []string  `json:"goals,omitempty"`
}

// NewUser returns a User with default counters.
func NewUser(id string, now time.Time) *User {
	return &User{
		ID:        id,
		CreatedAt: now.UTC(),
	}
}

// RecordLessonCompleted updates the completion counter and streak for a
// lesson finished on the given date. The streak extends only when the
// previous completed lesson was the immediately preceding calendar day;
// completing the same day twice is a no-op.
func (u *User) RecordLessonCompleted(date string) {
	if u.LastCompleted == date {
		return
	}
	u.LessonsCompleted++
	if prev, err := time.Parse(DateLayout, u.LastCompleted); err == nil {
		if cur, err := time.Parse(DateLayout, date); err == nil && cur.Sub(prev) == 24*time.Hour {
			u.Streak++
			u.LastCompleted = date
			return
		}
	}
	u.Streak = 1
	u.LastCompleted = date
}
