package lesson

import "github.com/goalgrid/goalgrid/internal/domain"

// fallbackSummary is returned whenever the oracle cannot produce a summary.
const fallbackSummary = "You have a focused set of tasks today. Take them one at a time and keep your streak alive."

// FallbackLesson returns the fixed lesson used when content generation fails
// or returns an incomplete shape. Every field is non-empty so the caller
// always receives a usable lesson.
func FallbackLesson(date string) *domain.Lesson {
	return &domain.Lesson{
		Date:    date,
		Title:   "One Step Forward",
		Lesson:  "Progress is built from small, repeated actions. Pick the single most important thing you can do today and do it before anything else. Momentum follows motion, not the other way around.",
		Summary: "Do the most important thing first; momentum follows motion.",
		Motivation: "You don't need a perfect day, you need a started one. Begin with " +
			"the smallest possible version of the work.",
		Quote:           "\"The secret of getting ahead is getting started.\" - Mark Twain",
		SecretHacks:     "Put tomorrow's first task where you will literally trip over it. Shrink any task you keep avoiding until it takes under two minutes to start.",
		TinyRituals:     "Write down one priority each morning. Close the day by noting one thing that went well.",
		InfographicHTML: "<div><strong>Today:</strong> one priority &rarr; one action &rarr; one win</div>",
		Tasks:           []domain.Task{},
	}
}

// fillFromFallback replaces any empty content field of l with the
// corresponding fallback value, so partially-valid oracle output still
// yields a fully-populated lesson.
func fillFromFallback(l *domain.Lesson) {
	fb := FallbackLesson(l.Date)
	l.Title = domain.CoalesceStr(l.Title, fb.Title)
	l.Lesson = domain.CoalesceStr(l.Lesson, fb.Lesson)
	l.Summary = domain.CoalesceStr(l.Summary, fb.Summary)
	l.Motivation = domain.CoalesceStr(l.Motivation, fb.Motivation)
	l.Quote = domain.CoalesceStr(l.Quote, fb.Quote)
	l.SecretHacks = domain.CoalesceStr(l.SecretHacks, fb.SecretHacks)
	l.TinyRituals = domain.CoalesceStr(l.TinyRituals, fb.TinyRituals)
	l.InfographicHTML = domain.CoalesceStr(l.InfographicHTML, fb.InfographicHTML)
}
