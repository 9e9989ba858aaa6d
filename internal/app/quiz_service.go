package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quiz-scoring-engine/internal/domain"
)

// DefaultRankingSize is the number of entries returned when no limit is given.
const DefaultRankingSize = 10

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error)
}

// SessionRepository stores in-progress attempts between start and submit.
// Consume must hand out a given session at most once.
type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	Consume(ctx context.Context, sessionID string) (domain.Session, error)
}

// RankingStore is the append-only record of completed attempts.
// TopN and All order by score descending, ties by arrival order.
type RankingStore interface {
	Append(ctx context.Context, result domain.AttemptResult) error
	TopN(ctx context.Context, quizID int64, n int) ([]domain.AttemptResult, error)
	All(ctx context.Context, quizID int64) ([]domain.AttemptResult, error)
	Stats(ctx context.Context, quizID int64) (domain.RankingStats, error)
}

// Option configures a QuizService.
type Option func(*QuizService)

// WithClock replaces time.Now, for deterministic timing in tests.
func WithClock(now func() time.Time) Option { return func(s *QuizService) { s.now = now } }

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option { return func(s *QuizService) { s.logger = logger } }

// WithPresenter overrides the presentation randomizer.
func WithPresenter(p *Presenter) Option { return func(s *QuizService) { s.presenter = p } }

// WithRankingSize sets the default top-N size.
func WithRankingSize(n int) Option {
	return func(s *QuizService) {
		if n > 0 {
			s.rankingSize = n
		}
	}
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	quizzes     QuizRepository
	sessions    SessionRepository
	rankings    RankingStore
	presenter   *Presenter
	feed        *rankingFeed
	now         func() time.Time
	logger      *zap.Logger
	rankingSize int
}

func NewQuizService(quizzes QuizRepository, sessions SessionRepository, rankings RankingStore, opts ...Option) *QuizService {
	s := &QuizService{
		quizzes:     quizzes,
		sessions:    sessions,
		rankings:    rankings,
		presenter:   NewPresenter(),
		feed:        newRankingFeed(),
		now:         time.Now,
		logger:      zap.NewNop(),
		rankingSize: DefaultRankingSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a session for a player and returns the quiz as it should be shown.
func (s *QuizService) Start(ctx context.Context, quizID int64, nickname string) (domain.Presentation, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Presentation{}, err
	}

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = domain.AnonymousNickname
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		Nickname:  nickname,
		StartedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Presentation{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("quiz started",
		zap.Int64("quiz_id", quizID),
		zap.String("session_id", session.ID),
		zap.String("nickname", nickname),
	)

	return domain.Presentation{
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		SessionID:        session.ID,
		Nickname:         nickname,
		TimeLimitSeconds: quiz.TimeLimitSeconds,
		Questions:        s.presenter.Present(quiz),
	}, nil
}

// Submit scores a submission and records the attempt. If recording fails the
// computed result is still returned together with an ErrRankingStore error.
func (s *QuizService) Submit(ctx context.Context, quizID int64, sessionID string, answers domain.Submission) (domain.ScoreResult, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	session, found := s.consumeSession(ctx, quizID, sessionID)
	nickname := domain.AnonymousNickname
	var startedAt time.Time
	if found {
		nickname = session.Nickname
		startedAt = session.StartedAt
	}

	now := s.now()
	timing := CheckTimeLimit(quiz, startedAt, now)
	card := ScoreSubmission(quiz, answers)

	for _, v := range card.Verdicts {
		s.logger.Debug("question scored",
			zap.Int64("quiz_id", quizID),
			zap.Int64("question_id", v.QuestionID),
			zap.Bool("answered", v.Answered),
			zap.Bool("correct", v.Correct),
			zap.Int("awarded", v.Awarded),
		)
	}
	if timing.Exceeded {
		s.logger.Info("time limit exceeded",
			zap.Int64("quiz_id", quizID),
			zap.String("nickname", nickname),
			zap.Int("elapsed_seconds", timing.ElapsedSeconds),
		)
	}

	result := domain.ScoreResult{
		QuizID:            quizID,
		Nickname:          nickname,
		Score:             card.Score,
		MaxScore:          card.MaxScore,
		TimeLimitExceeded: timing.Exceeded,
		ElapsedSeconds:    timing.ElapsedSeconds,
		SessionFound:      found,
		Verdicts:          card.Verdicts,
	}

	attempt := domain.AttemptResult{
		QuizID:      quizID,
		Nickname:    nickname,
		Score:       card.Score,
		MaxScore:    card.MaxScore,
		CompletedAt: now,
	}
	if err := s.rankings.Append(ctx, attempt); err != nil {
		s.logger.Error("record attempt", zap.Int64("quiz_id", quizID), zap.Error(err))
		return result, fmt.Errorf("%w: %v", domain.ErrRankingStore, err)
	}

	s.publishRanking(ctx, quizID)
	return result, nil
}

// Abandon discards an unsubmitted session, e.g. when the player restarts the quiz.
// An unknown or already consumed session is not an error.
func (s *QuizService) Abandon(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	_, err := s.sessions.Consume(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("abandon session: %w", err)
	}
	s.logger.Info("session abandoned", zap.String("session_id", sessionID))
	return nil
}

// Ranking returns the top n attempts for a quiz; n <= 0 uses the default size.
func (s *QuizService) Ranking(ctx context.Context, quizID int64, n int) ([]domain.AttemptResult, error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.rankingSize
	}
	entries, err := s.rankings.TopN(ctx, quizID, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRankingStore, err)
	}
	return entries, nil
}

// Results returns every recorded attempt for a quiz in ranking order.
func (s *QuizService) Results(ctx context.Context, quizID int64) ([]domain.AttemptResult, error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	entries, err := s.rankings.All(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRankingStore, err)
	}
	return entries, nil
}

// Stats returns the attempt count and average score of a quiz.
func (s *QuizService) Stats(ctx context.Context, quizID int64) (domain.RankingStats, error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return domain.RankingStats{}, err
	}
	stats, err := s.rankings.Stats(ctx, quizID)
	if err != nil {
		return domain.RankingStats{}, fmt.Errorf("%w: %v", domain.ErrRankingStore, err)
	}
	return stats, nil
}

// Subscribe returns a channel that receives the quiz's top-N ranking, first
// immediately and then after every recorded attempt.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, quizID int64) (<-chan []domain.AttemptResult, func(), error) {
	initial, err := s.Ranking(ctx, quizID, s.rankingSize)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.feed.subscribe(quizID, initial)
	return ch, cancel, nil
}

func (s *QuizService) consumeSession(ctx context.Context, quizID int64, sessionID string) (domain.Session, bool) {
	if sessionID == "" {
		s.logger.Info("submission without session", zap.Int64("quiz_id", quizID))
		return domain.Session{}, false
	}

	session, err := s.sessions.Consume(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.logger.Info("session not found", zap.Int64("quiz_id", quizID), zap.String("session_id", sessionID))
		return domain.Session{}, false
	case err != nil:
		s.logger.Warn("consume session", zap.String("session_id", sessionID), zap.Error(err))
		return domain.Session{}, false
	case session.QuizID != quizID:
		s.logger.Info("session belongs to another quiz",
			zap.String("session_id", sessionID),
			zap.Int64("quiz_id", quizID),
			zap.Int64("session_quiz_id", session.QuizID),
		)
		return domain.Session{}, false
	}
	return session, true
}

func (s *QuizService) publishRanking(ctx context.Context, quizID int64) {
	if !s.feed.hasSubscribers(quizID) {
		return
	}
	entries, err := s.rankings.TopN(ctx, quizID, s.rankingSize)
	if err != nil {
		s.logger.Warn("refresh ranking feed", zap.Int64("quiz_id", quizID), zap.Error(err))
		return
	}
	s.feed.publish(quizID, entries)
}
