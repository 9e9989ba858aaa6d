package app

import "quiz-scoring-engine/internal/domain"

// negativePenalty is deducted for each answered, incorrect question when a
// quiz enables negative points, regardless of the question's point value.
const negativePenalty = 1

// Scorecard is the outcome of folding a submission over a quiz.
type Scorecard struct {
	Score    int
	MaxScore int
	Verdicts []domain.QuestionVerdict
}

// ScoreSubmission scores answers against the quiz in canonical question order.
// The result is a pure function of its arguments.
func ScoreSubmission(quiz domain.Quiz, answers domain.Submission) Scorecard {
	questions := quiz.CanonicalQuestions()
	card := Scorecard{Verdicts: make([]domain.QuestionVerdict, 0, len(questions))}

	for _, question := range questions {
		card.MaxScore += question.Points
		verdict := domain.QuestionVerdict{QuestionID: question.ID}

		raw, answered := answers.Lookup(question.ID)
		if answered {
			verdict.Answered = true
			verdict.Correct = Evaluate(question.Type, question.CorrectAnswers(), raw)
			switch {
			case verdict.Correct:
				verdict.Awarded = question.Points
			case quiz.NegativePoints:
				verdict.Awarded = -negativePenalty
			}
			card.Score += verdict.Awarded
		}
		card.Verdicts = append(card.Verdicts, verdict)
	}

	if card.Score < 0 {
		card.Score = 0
	}
	return card
}
