package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"quiz-scoring-engine/internal/app"
	"quiz-scoring-engine/internal/domain"
	"quiz-scoring-engine/internal/infra/memory"
)

func TestRESTStartSubmitRanking(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(memory.NewRankingStore()), zap.NewNop()))
	defer server.Close()

	var presentation domain.Presentation
	resp := postJSON(t, server.URL+"/quizzes/1/start", map[string]any{"nickname": "Alice"}, &presentation)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start status %d", resp.StatusCode)
	}
	if presentation.SessionID == "" || presentation.Nickname != "Alice" || len(presentation.Questions) != 1 {
		t.Fatalf("unexpected presentation: %+v", presentation)
	}

	var result submitResponse
	resp = postJSON(t, server.URL+"/quizzes/1/submit", map[string]any{
		"sessionId": presentation.SessionID,
		"answers":   map[string]string{"answer_1": "2"},
	}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status %d", resp.StatusCode)
	}
	if result.Score != 1 || result.MaxScore != 1 || result.Nickname != "Alice" || len(result.Warnings) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	var ranking []domain.AttemptResult
	resp = getJSON(t, server.URL+"/quizzes/1/ranking?limit=5", &ranking)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ranking status %d", resp.StatusCode)
	}
	if len(ranking) != 1 || ranking[0].Nickname != "Alice" {
		t.Fatalf("unexpected ranking: %+v", ranking)
	}

	var stats domain.RankingStats
	getJSON(t, server.URL+"/quizzes/1/stats", &stats)
	if stats.Attempts != 1 || stats.AverageScore != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRESTStartWithoutBody(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(memory.NewRankingStore()), zap.NewNop()))
	defer server.Close()

	resp, err := http.Post(server.URL+"/quizzes/1/start", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var presentation domain.Presentation
	_ = json.NewDecoder(resp.Body).Decode(&presentation)
	if resp.StatusCode != http.StatusOK || presentation.Nickname != domain.AnonymousNickname {
		t.Fatalf("expected anonymous start, got %d %+v", resp.StatusCode, presentation)
	}
}

func TestRESTErrors(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(memory.NewRankingStore()), zap.NewNop()))
	defer server.Close()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown quiz", http.MethodPost, "/quizzes/99/start", `{}`, http.StatusNotFound},
		{"invalid quiz id", http.MethodPost, "/quizzes/abc/submit", `{}`, http.StatusBadRequest},
		{"malformed submit", http.MethodPost, "/quizzes/1/submit", `{"answers":`, http.StatusBadRequest},
		{"invalid limit", http.MethodGet, "/quizzes/1/ranking?limit=x", "", http.StatusBadRequest},
		{"unknown quiz ranking", http.MethodGet, "/quizzes/99/results", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, server.URL+tt.path, bytes.NewBufferString(tt.body))
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestRESTSubmitWarnings(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(brokenRankings{}), zap.NewNop()))
	defer server.Close()

	var result submitResponse
	resp := postJSON(t, server.URL+"/quizzes/1/submit", map[string]any{
		"answers": map[string]string{"answer_1": "2"},
	}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status %d", resp.StatusCode)
	}
	if result.Score != 1 || result.Nickname != domain.AnonymousNickname {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != warnNotRecorded {
		t.Fatalf("expected not-recorded warning, got %v", result.Warnings)
	}
}

func TestNewSubmitResponseFlagsLateSubmission(t *testing.T) {
	resp := newSubmitResponse(domain.ScoreResult{TimeLimitExceeded: true}, nil)
	if len(resp.Warnings) != 1 || resp.Warnings[0] != warnTimeLimit {
		t.Fatalf("expected time limit warning, got %v", resp.Warnings)
	}
}

type brokenRankings struct{}

func (brokenRankings) Append(context.Context, domain.AttemptResult) error {
	return errors.New("connection refused")
}

func (brokenRankings) TopN(context.Context, int64, int) ([]domain.AttemptResult, error) {
	return nil, errors.New("connection refused")
}

func (brokenRankings) All(context.Context, int64) ([]domain.AttemptResult, error) {
	return nil, errors.New("connection refused")
}

func (brokenRankings) Stats(context.Context, int64) (domain.RankingStats, error) {
	return domain.RankingStats{}, errors.New("connection refused")
}

func newTestService(rankings app.RankingStore) *app.QuizService {
	return newTestServiceWithSessions(rankings, memory.NewSessionStore(time.Hour))
}

func newTestServiceWithSessions(rankings app.RankingStore, sessions app.SessionRepository) *app.QuizService {
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(sampleQuiz()), time.Minute)
	return app.NewQuizService(quizRepo, sessions, rankings)
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	_ = json.NewDecoder(resp.Body).Decode(out)
	return resp
}

func sampleQuiz() map[int64]domain.Quiz {
	return map[int64]domain.Quiz{
		1: {
			ID:    1,
			Title: "Arithmetic",
			Questions: []domain.Question{
				{
					ID:         1,
					Text:       "What is 2 + 2?",
					Type:       domain.SingleChoice,
					Points:     1,
					OrderIndex: 1,
					Answers: []domain.Answer{
						{ID: 1, Text: "3"},
						{ID: 2, Text: "4", Correct: true},
						{ID: 3, Text: "5"},
					},
				},
			},
		},
	}
}
