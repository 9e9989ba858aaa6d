package memory

import (
	"context"
	"sync"

	"quiz-scoring-engine/internal/domain"
)

// RankingStore is an append-only, in-process implementation of app.RankingStore.
type RankingStore struct {
	mu      sync.RWMutex
	results []domain.AttemptResult
}

func NewRankingStore() *RankingStore {
	return &RankingStore{}
}

func (s *RankingStore) Append(_ context.Context, result domain.AttemptResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
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

func (s *RankingStore) All(_ context.Context, quizID int64) ([]domain.AttemptResult, error) {
	s.mu.RLock()
	out := make([]domain.AttemptResult, 0)
	for _, r := range s.results {
		if r.QuizID == quizID {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	// results are kept in arrival order, so a stable sort breaks ties by arrival
	domain.SortRanking(out)
	return out, nil
}

func (s *RankingStore) Stats(_ context.Context, quizID int64) (domain.RankingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.RankingStats{QuizID: quizID}
	total := 0
	for _, r := range s.results {
		if r.QuizID == quizID {
			stats.Attempts++
			total += r.Score
		}
	}
	if stats.Attempts > 0 {
		stats.AverageScore = float64(total) / float64(stats.Attempts)
	}
	return stats, nil
}
