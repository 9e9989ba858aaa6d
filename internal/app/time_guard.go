package app

import (
	"time"

	"quiz-scoring-engine/internal/domain"
)

// TimeCheck is the advisory outcome of comparing elapsed time to a quiz limit.
type TimeCheck struct {
	ElapsedSeconds int
	Exceeded       bool
}

// CheckTimeLimit measures whole seconds since startedAt. A zero startedAt
// (no session) counts as zero elapsed time. Exceeding the limit only sets a flag.
func CheckTimeLimit(quiz domain.Quiz, startedAt, now time.Time) TimeCheck {
	if startedAt.IsZero() {
		return TimeCheck{}
	}
	elapsed := int(now.Sub(startedAt) / time.Second)
	check := TimeCheck{ElapsedSeconds: elapsed}
	if quiz.TimeLimitSeconds != nil && elapsed > *quiz.TimeLimitSeconds {
		check.Exceeded = true
	}
	return check
}
