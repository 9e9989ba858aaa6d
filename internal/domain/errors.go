package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQuiz is returned by catalog loaders for quiz data the scorer cannot use.
	ErrInvalidQuiz = errors.New("invalid quiz definition")
	// ErrInvalidQuizID is returned when a quiz identifier cannot be parsed.
	ErrInvalidQuizID = errors.New("invalid quiz id")
	// ErrSessionNotFound is returned when no active session exists for a handle.
	// Scoring treats it as an anonymous, untimed attempt.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrRankingStore wraps failures to persist or read ranking entries.
	ErrRankingStore = errors.New("ranking store failure")
)
