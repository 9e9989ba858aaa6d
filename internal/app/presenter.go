package app

import (
	"math/rand"
	"sort"

	"quiz-scoring-engine/internal/domain"
)

// ShuffleFunc permutes n elements through swap, like rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Presenter builds the player-facing view of a quiz.
type Presenter struct {
	shuffle ShuffleFunc
}

// NewPresenter returns a presenter backed by the global math/rand source,
// which is safe for concurrent use.
func NewPresenter() *Presenter {
	return &Presenter{shuffle: rand.Shuffle}
}

// NewPresenterWithShuffle is used by tests to control the permutation.
func NewPresenterWithShuffle(shuffle ShuffleFunc) *Presenter {
	return &Presenter{shuffle: shuffle}
}

// Present returns the questions in canonical or shuffled order, each with its
// answers in stored or shuffled order. Free-text questions carry no answers,
// since all of them are solutions. The quiz itself is never modified.
func (p *Presenter) Present(quiz domain.Quiz) []domain.PresentedQuestion {
	questions := quiz.CanonicalQuestions()
	if quiz.ShuffleQuestions {
		p.shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	out := make([]domain.PresentedQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, domain.PresentedQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Points:  q.Points,
			Answers: p.presentAnswers(q, quiz.ShuffleAnswers),
		})
	}
	return out
}

func (p *Presenter) presentAnswers(q domain.Question, shuffle bool) []domain.PresentedAnswer {
	if q.Type.FreeText() {
		return []domain.PresentedAnswer{}
	}
	ordered := make([]domain.Answer, len(q.Answers))
	copy(ordered, q.Answers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order() < ordered[j].Order()
	})
	if shuffle {
		p.shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}

	out := make([]domain.PresentedAnswer, 0, len(ordered))
	for _, a := range ordered {
		out = append(out, domain.PresentedAnswer{ID: a.ID, Text: a.Text})
	}
	return out
}
