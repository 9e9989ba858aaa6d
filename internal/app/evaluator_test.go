package app

import (
	"testing"

	"quiz-scoring-engine/internal/domain"
)

func answer(id int64, text string, order int) domain.Answer {
	return domain.Answer{ID: id, Text: text, Correct: true, OrderIndex: &order}
}

func TestEvaluatorCoversEveryQuestionType(t *testing.T) {
	for _, qt := range domain.QuestionTypes {
		if _, ok := evaluatorFor(qt); !ok {
			t.Fatalf("question type %s has no evaluator", qt)
		}
	}
	if _, ok := evaluatorFor("ESSAY"); ok {
		t.Fatalf("unknown type must not resolve to an evaluator")
	}
}

func TestEvaluate(t *testing.T) {
	single := []domain.Answer{{ID: 2, Text: "Paris", Correct: true}}
	multi := []domain.Answer{{ID: 1, Correct: true}, {ID: 3, Correct: true}, {ID: 4, Correct: true}}
	planets := []domain.Answer{
		answer(1, "Mercury", 1),
		answer(2, "Venus", 2),
		answer(3, "Earth", 3),
		answer(4, "Mars", 4),
	}
	fox := []domain.Answer{{ID: 9, Text: "fox", Correct: true}}

	tests := []struct {
		name    string
		qt      domain.QuestionType
		correct []domain.Answer
		raw     string
		want    bool
	}{
		{"single correct", domain.SingleChoice, single, "2", true},
		{"single wrong", domain.SingleChoice, single, "3", false},
		{"single not a number", domain.SingleChoice, single, "x", false},
		{"single padded is malformed", domain.SingleChoice, single, " 2", false},
		{"true false", domain.TrueFalse, single, "2", true},
		{"dropdown", domain.Dropdown, single, "3", false},
		{"multi any order", domain.MultipleChoice, multi, "3,1,4", true},
		{"multi spaces and empties", domain.MultipleChoice, multi, " 4 , ,1,3,", true},
		{"multi duplicates collapse", domain.MultipleChoice, multi, "1,1,3,4", true},
		{"multi subset", domain.MultipleChoice, multi, "1,3", false},
		{"multi superset", domain.MultipleChoice, multi, "1,2,3,4", false},
		{"multi malformed", domain.MultipleChoice, multi, "1,three,4", false},
		{"short answer trims and folds case", domain.ShortAnswer, fox, "  FOX  ", true},
		{"fill blank", domain.FillBlank, fox, "fox", true},
		{"fill blank wrong", domain.FillBlank, fox, "dog", false},
		{"sorting in order", domain.Sorting, planets, "1,2,3,4", true},
		{"sorting with spaces", domain.Sorting, planets, "1, 2, 3, 4", true},
		{"sorting trailing comma", domain.Sorting, planets, "1,2,3,4,", true},
		{"sorting swapped", domain.Sorting, planets, "1,3,2,4", false},
		{"sorting too short", domain.Sorting, planets, "1,2,3", false},
		{"sorting malformed", domain.Sorting, planets, "1,2,x,4", false},
		{"sorting inner empty token", domain.Sorting, planets, "1,,2,3,4", false},
		{"matching", domain.Matching, planets, "1,2,3,4", true},
		{"unknown type", domain.QuestionType("ESSAY"), single, "2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.qt, tt.correct, tt.raw); got != tt.want {
				t.Fatalf("Evaluate(%s, %q) = %v, want %v", tt.qt, tt.raw, got, tt.want)
			}
		})
	}
}

func TestEvaluateSequenceIgnoresStorageOrder(t *testing.T) {
	stored := []domain.Answer{
		answer(3, "Earth", 3),
		answer(1, "Mercury", 1),
		answer(4, "Mars", 4),
		answer(2, "Venus", 2),
	}
	if !Evaluate(domain.Sorting, stored, "1,2,3,4") {
		t.Fatalf("expected order-index sequence to be correct regardless of storage order")
	}
	if Evaluate(domain.Sorting, stored, "3,1,4,2") {
		t.Fatalf("storage order must not be accepted as the answer")
	}
}

func TestEvaluateSequenceMissingOrderIndexSortsFirst(t *testing.T) {
	stored := []domain.Answer{
		answer(5, "second", 1),
		{ID: 6, Text: "first", Correct: true},
	}
	if !Evaluate(domain.Matching, stored, "6,5") {
		t.Fatalf("missing order index should sort as 0")
	}
}

func TestEvaluateIsRepeatable(t *testing.T) {
	correct := []domain.Answer{{ID: 1, Correct: true}, {ID: 2, Correct: true}}
	first := Evaluate(domain.MultipleChoice, correct, "2,1")
	for i := 0; i < 5; i++ {
		if Evaluate(domain.MultipleChoice, correct, "2,1") != first {
			t.Fatalf("evaluation changed between identical calls")
		}
	}
}
