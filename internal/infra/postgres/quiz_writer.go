package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-scoring-engine/internal/domain"
)

// SaveQuiz upserts a quiz document into the quizzes table.
func SaveQuiz(ctx context.Context, db bun.IDB, quiz domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("save quiz %d: %w", quiz.ID, err)
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO quizzes (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`,
		quiz.ID, string(data))
	if err != nil {
		return fmt.Errorf("save quiz %d: %w", quiz.ID, err)
	}
	return nil
}
