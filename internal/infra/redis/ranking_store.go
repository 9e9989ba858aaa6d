package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"quiz-scoring-engine/internal/domain"
)

// RankingStore appends attempt results to a Redis list per quiz.
// RPUSH is atomic, so concurrent appends from many instances are never lost,
// and list order is arrival order.
type RankingStore struct {
	client *redis.Client
}

func NewRankingStore(client *redis.Client) *RankingStore {
	return &RankingStore{client: client}
}

func (s *RankingStore) Append(ctx context.Context, result domain.AttemptResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.client.RPush(ctx, s.key(result.QuizID), data).Err(); err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

func (s *RankingStore) TopN(ctx context.Context, quizID int64, n int) ([]domain.AttemptResult, error) {
	if n <= 0 {
		return []domain.AttemptResult{}, nil
	}
	all, err := s.All(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *RankingStore) All(ctx context.Context, quizID int64) ([]domain.AttemptResult, error) {
	results, err := s.load(ctx, quizID)
	if err != nil {
		return nil, err
	}
	domain.SortRanking(results)
	return results, nil
}

func (s *RankingStore) Stats(ctx context.Context, quizID int64) (domain.RankingStats, error) {
	results, err := s.load(ctx, quizID)
	if err != nil {
		return domain.RankingStats{}, err
	}
	stats := domain.RankingStats{QuizID: quizID, Attempts: len(results)}
	if len(results) == 0 {
		return stats, nil
	}
	total := 0
	for _, r := range results {
		total += r.Score
	}
	stats.AverageScore = float64(total) / float64(len(results))
	return stats, nil
}

func (s *RankingStore) load(ctx context.Context, quizID int64) ([]domain.AttemptResult, error) {
	raw, err := s.client.LRange(ctx, s.key(quizID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	results := make([]domain.AttemptResult, 0, len(raw))
	for _, item := range raw {
		var r domain.AttemptResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("unmarshal attempt: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *RankingStore) key(quizID int64) string {
	return "quiz:" + strconv.FormatInt(quizID, 10) + ":results"
}
