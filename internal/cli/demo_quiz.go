package cli

import "quiz-scoring-engine/internal/domain"

// demoQuizzes serves as the catalog when no Postgres is configured and as the
// content of the seed command. Quiz 1 exercises every question type.
func demoQuizzes() map[int64]domain.Quiz {
	timeLimit := 600
	quiz := domain.Quiz{
		ID:               1,
		Title:            "All Question Types Test Quiz",
		TimeLimitSeconds: &timeLimit,
		Questions: []domain.Question{
			demoQuestion(1, 1, "What is the capital of France?", domain.SingleChoice, 1,
				demoAnswer(1, "London", false, 1),
				demoAnswer(2, "Paris", true, 2),
				demoAnswer(3, "Berlin", false, 3),
				demoAnswer(4, "Madrid", false, 4),
			),
			demoQuestion(2, 2, "Which of the following are programming languages? (Select all that apply)", domain.MultipleChoice, 2,
				demoAnswer(5, "Java", true, 1),
				demoAnswer(6, "Python", true, 2),
				demoAnswer(7, "HTML", false, 3),
				demoAnswer(8, "JavaScript", true, 4),
			),
			demoQuestion(3, 3, "The Earth is flat.", domain.TrueFalse, 1,
				demoAnswer(9, "True", false, 1),
				demoAnswer(10, "False", true, 2),
			),
			demoQuestion(4, 4, "What is 2 + 2? (Type the number)", domain.ShortAnswer, 1,
				demoAnswer(11, "4", true, 1),
			),
			demoQuestion(5, 5, "Select the largest planet in our solar system:", domain.Dropdown, 1,
				demoAnswer(12, "Mars", false, 1),
				demoAnswer(13, "Earth", false, 2),
				demoAnswer(14, "Jupiter", true, 3),
				demoAnswer(15, "Neptune", false, 4),
			),
			demoQuestion(6, 6, "Complete the sentence: The quick brown ___ jumps over the lazy dog.", domain.FillBlank, 1,
				demoAnswer(16, "fox", true, 1),
			),
			demoQuestion(7, 7, "Sort the planets from closest to farthest from the Sun:", domain.Sorting, 3,
				demoAnswer(17, "Mercury", true, 1),
				demoAnswer(18, "Venus", true, 2),
				demoAnswer(19, "Earth", true, 3),
				demoAnswer(20, "Mars", true, 4),
			),
			demoQuestion(8, 8, "Match the countries with their capitals:", domain.Matching, 2,
				demoAnswer(21, "France - Paris", true, 1),
				demoAnswer(22, "Germany - Berlin", true, 2),
				demoAnswer(23, "Italy - Rome", true, 3),
				demoAnswer(24, "Spain - Madrid", true, 4),
			),
		},
	}
	return map[int64]domain.Quiz{quiz.ID: quiz}
}

func demoQuestion(id int64, order int, text string, t domain.QuestionType, points int, answers ...domain.Answer) domain.Question {
	return domain.Question{
		ID:         id,
		Text:       text,
		Type:       t,
		Points:     points,
		OrderIndex: order,
		Answers:    answers,
	}
}

func demoAnswer(id int64, text string, correct bool, order int) domain.Answer {
	return domain.Answer{ID: id, Text: text, Correct: correct, OrderIndex: &order}
}
