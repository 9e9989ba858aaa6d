package app

import (
	"sort"
	"strconv"
	"strings"

	"quiz-scoring-engine/internal/domain"
)

// evaluateFunc checks a raw answer against the correct answers of one question type.
type evaluateFunc func(correct []domain.Answer, raw string) bool

// Evaluate reports whether raw is a correct answer for a question of type t.
// Malformed answers and unknown types evaluate to false; Evaluate never fails.
func Evaluate(t domain.QuestionType, correct []domain.Answer, raw string) bool {
	fn, ok := evaluatorFor(t)
	if !ok {
		return false
	}
	return fn(correct, raw)
}

// evaluatorFor is the single dispatch point over question types. Adding a
// type to domain.QuestionTypes without a case here fails TestEvaluatorCoversEveryQuestionType.
func evaluatorFor(t domain.QuestionType) (evaluateFunc, bool) {
	switch t {
	case domain.SingleChoice, domain.TrueFalse, domain.Dropdown:
		return evaluateSingleID, true
	case domain.MultipleChoice:
		return evaluateIDSet, true
	case domain.ShortAnswer, domain.FillBlank:
		return evaluateText, true
	case domain.Sorting, domain.Matching:
		return evaluateSequence, true
	default:
		return nil, false
	}
}

func evaluateSingleID(correct []domain.Answer, raw string) bool {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	for _, a := range correct {
		if a.ID == id {
			return true
		}
	}
	return false
}

func evaluateIDSet(correct []domain.Answer, raw string) bool {
	selected := make(map[int64]struct{})
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return false
		}
		selected[id] = struct{}{}
	}

	expected := make(map[int64]struct{}, len(correct))
	for _, a := range correct {
		expected[a.ID] = struct{}{}
	}

	if len(selected) != len(expected) {
		return false
	}
	for id := range expected {
		if _, ok := selected[id]; !ok {
			return false
		}
	}
	return true
}

func evaluateText(correct []domain.Answer, raw string) bool {
	submitted := strings.TrimSpace(raw)
	for _, a := range correct {
		if strings.EqualFold(a.Text, submitted) {
			return true
		}
	}
	return false
}

func evaluateSequence(correct []domain.Answer, raw string) bool {
	ordered := make([]domain.Answer, len(correct))
	copy(ordered, correct)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order() < ordered[j].Order()
	})

	tokens := splitDropTrailing(raw, ",")
	submitted := make([]int64, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil {
			return false
		}
		submitted = append(submitted, id)
	}

	if len(submitted) != len(ordered) {
		return false
	}
	for i, a := range ordered {
		if submitted[i] != a.ID {
			return false
		}
	}
	return true
}

// splitDropTrailing splits s like strings.Split but drops trailing empty
// fields, so "1,2,3," yields three tokens. An empty s yields one empty token.
func splitDropTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	if s == "" {
		return parts
	}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}
