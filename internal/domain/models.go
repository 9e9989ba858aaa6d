package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// AnonymousNickname is used when a player gives no nickname or has no session.
const AnonymousNickname = "Anonymous"

// QuestionType selects how a raw answer is checked.
type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
	ShortAnswer    QuestionType = "SHORT_ANSWER"
	Dropdown       QuestionType = "DROPDOWN"
	FillBlank      QuestionType = "FILL_BLANK"
	Sorting        QuestionType = "SORTING"
	Matching       QuestionType = "MATCHING"
)

// QuestionTypes lists every supported question type.
var QuestionTypes = []QuestionType{
	SingleChoice,
	MultipleChoice,
	TrueFalse,
	ShortAnswer,
	Dropdown,
	FillBlank,
	Sorting,
	Matching,
}

// Valid reports whether t is one of QuestionTypes.
func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FreeText reports whether the player types the answer instead of picking one.
// Every stored answer of a free-text question is an accepted solution.
func (t QuestionType) FreeText() bool {
	return t == ShortAnswer || t == FillBlank
}

// Answer is one possible answer of a question.
type Answer struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Correct    bool   `json:"isCorrect"`
	OrderIndex *int   `json:"orderIndex,omitempty"` // only meaningful for SORTING and MATCHING
}

// Order returns the order index, treating a missing one as 0.
func (a Answer) Order() int {
	if a.OrderIndex == nil {
		return 0
	}
	return *a.OrderIndex
}

// Question is a single quiz question with its answers.
type Question struct {
	ID         int64        `json:"id"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Points     int          `json:"points"`
	OrderIndex int          `json:"orderIndex"`
	Answers    []Answer     `json:"answers"`
}

// CorrectAnswers returns the answers flagged as correct, in stored order.
func (q Question) CorrectAnswers() []Answer {
	out := make([]Answer, 0, len(q.Answers))
	for _, a := range q.Answers {
		if a.Correct {
			out = append(out, a)
		}
	}
	return out
}

// Quiz is the read-only quiz definition handed to the engine by the catalog.
type Quiz struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Questions        []Question `json:"questions"`
	ShuffleQuestions bool       `json:"shuffleQuestions"`
	ShuffleAnswers   bool       `json:"shuffleAnswers"`
	NegativePoints   bool       `json:"negativePoints"`
	TimeLimitSeconds *int       `json:"timeLimitSeconds,omitempty"` // nil means unlimited
}

// CanonicalQuestions returns a copy of the questions sorted by OrderIndex.
func (q Quiz) CanonicalQuestions() []Question {
	out := make([]Question, len(q.Questions))
	copy(out, q.Questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// Validate checks the catalog data the scorer relies on: known question types
// and non-negative points, so that 0 <= score <= MaxScore holds.
func (q Quiz) Validate() error {
	for _, question := range q.Questions {
		if !question.Type.Valid() {
			return fmt.Errorf("%w: question %d has unknown type %q", ErrInvalidQuiz, question.ID, question.Type)
		}
		if question.Points < 0 {
			return fmt.Errorf("%w: question %d has negative points %d", ErrInvalidQuiz, question.ID, question.Points)
		}
	}
	return nil
}

// MaxScore is the sum of points over all questions.
func (q Quiz) MaxScore() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// Submission maps answer keys (see AnswerKey) to the raw submitted value.
type Submission map[string]string

// AnswerKey builds the submission key for a question.
func AnswerKey(questionID int64) string {
	return "answer_" + strconv.FormatInt(questionID, 10)
}

// Lookup returns the raw answer for a question. Empty values count as unanswered.
func (s Submission) Lookup(questionID int64) (string, bool) {
	raw, ok := s[AnswerKey(questionID)]
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

// Session is one player's in-progress attempt at a quiz.
type Session struct {
	ID        string    `json:"id"`
	QuizID    int64     `json:"quizId"`
	Nickname  string    `json:"nickname"`
	StartedAt time.Time `json:"startedAt"`
}

// AttemptResult is the immutable record of a completed attempt.
type AttemptResult struct {
	QuizID      int64     `json:"quizId"`
	Nickname    string    `json:"nickname"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"maxScore"`
	CompletedAt time.Time `json:"completedAt"`
}

// QuestionVerdict records how a single question was scored.
type QuestionVerdict struct {
	QuestionID int64 `json:"questionId"`
	Answered   bool  `json:"answered"`
	Correct    bool  `json:"correct"`
	Awarded    int   `json:"awarded"`
}

// ScoreResult is returned to the player after a submission.
type ScoreResult struct {
	QuizID            int64             `json:"quizId"`
	Nickname          string            `json:"nickname"`
	Score             int               `json:"score"`
	MaxScore          int               `json:"maxScore"`
	TimeLimitExceeded bool              `json:"timeLimitExceeded"`
	ElapsedSeconds    int               `json:"elapsedSeconds"`
	SessionFound      bool              `json:"sessionFound"`
	Verdicts          []QuestionVerdict `json:"verdicts,omitempty"`
}

// PresentedAnswer is an answer as shown to a player; correctness is never exposed.
// Free-text questions are presented without answers.
type PresentedAnswer struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// PresentedQuestion is a question as shown to a player.
type PresentedQuestion struct {
	ID      int64             `json:"id"`
	Text    string            `json:"text"`
	Type    QuestionType      `json:"type"`
	Points  int               `json:"points"`
	Answers []PresentedAnswer `json:"answers"`
}

// Presentation is what a player receives when starting a quiz.
type Presentation struct {
	QuizID           int64               `json:"quizId"`
	Title            string              `json:"title"`
	SessionID        string              `json:"sessionId"`
	Nickname         string              `json:"nickname"`
	TimeLimitSeconds *int                `json:"timeLimitSeconds,omitempty"`
	Questions        []PresentedQuestion `json:"questions"`
}

// RankingStats aggregates the attempts recorded for a quiz.
type RankingStats struct {
	QuizID       int64   `json:"quizId"`
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
}
