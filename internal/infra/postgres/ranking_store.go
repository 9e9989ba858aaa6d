package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"quiz-scoring-engine/internal/domain"
)

// OpenBun opens a bun handle over the pgdriver connector.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type resultRow struct {
	bun.BaseModel `bun:"table:quiz_results,alias:qr"`

	ID          int64     `bun:"id,pk,autoincrement"`
	QuizID      int64     `bun:"quiz_id,notnull"`
	Nickname    string    `bun:"nickname,notnull"`
	Score       int       `bun:"score,notnull"`
	MaxScore    int       `bun:"max_score,notnull"`
	CompletedAt time.Time `bun:"completed_at,notnull"`
}

func (r resultRow) toDomain() domain.AttemptResult {
	return domain.AttemptResult{
		QuizID:      r.QuizID,
		Nickname:    r.Nickname,
		Score:       r.Score,
		MaxScore:    r.MaxScore,
		CompletedAt: r.CompletedAt,
	}
}

// RankingStore persists attempt results in quiz_results. The serial id records
// arrival order and breaks score ties.
type RankingStore struct {
	db *bun.DB
}

func NewRankingStore(db *bun.DB) *RankingStore {
	return &RankingStore{db: db}
}

func (s *RankingStore) Append(ctx context.Context, result domain.AttemptResult) error {
	row := &resultRow{
		QuizID:      result.QuizID,
		Nickname:    result.Nickname,
		Score:       result.Score,
		MaxScore:    result.MaxScore,
		CompletedAt: result.CompletedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *RankingStore) TopN(ctx context.Context, quizID int64, n int) ([]domain.AttemptResult, error) {
	if n <= 0 {
		return []domain.AttemptResult{}, nil
	}
	return s.list(ctx, quizID, n)
}

func (s *RankingStore) All(ctx context.Context, quizID int64) ([]domain.AttemptResult, error) {
	return s.list(ctx, quizID, 0)
}

func (s *RankingStore) Stats(ctx context.Context, quizID int64) (domain.RankingStats, error) {
	stats := domain.RankingStats{QuizID: quizID}
	err := s.db.NewSelect().
		Model((*resultRow)(nil)).
		ColumnExpr("COUNT(*)").
		ColumnExpr("COALESCE(AVG(score), 0)::float8").
		Where("quiz_id = ?", quizID).
		Scan(ctx, &stats.Attempts, &stats.AverageScore)
	if err != nil {
		return domain.RankingStats{}, fmt.Errorf("ranking stats: %w", err)
	}
	return stats, nil
}

// list returns ranked results; limit <= 0 means unbounded.
func (s *RankingStore) list(ctx context.Context, quizID int64, limit int) ([]domain.AttemptResult, error) {
	var rows []resultRow
	q := s.db.NewSelect().
		Model(&rows).
		Where("quiz_id = ?", quizID).
		OrderExpr("score DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	out := make([]domain.AttemptResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
