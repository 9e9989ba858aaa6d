package app

import (
	"sync"

	"quiz-scoring-engine/internal/domain"
)

// rankingFeed fans out ranking snapshots to live subscribers, per quiz.
type rankingFeed struct {
	mu          sync.Mutex
	subscribers map[int64]map[chan []domain.AttemptResult]struct{}
}

func newRankingFeed() *rankingFeed {
	return &rankingFeed{
		subscribers: make(map[int64]map[chan []domain.AttemptResult]struct{}),
	}
}

func (f *rankingFeed) subscribe(quizID int64, initial []domain.AttemptResult) (<-chan []domain.AttemptResult, func()) {
	ch := make(chan []domain.AttemptResult, 8)
	ch <- initial

	f.mu.Lock()
	subs, ok := f.subscribers[quizID]
	if !ok {
		subs = make(map[chan []domain.AttemptResult]struct{})
		f.subscribers[quizID] = subs
	}
	subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		subs := f.subscribers[quizID]
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(f.subscribers, quizID)
		}
	}
	return ch, cancel
}

func (f *rankingFeed) hasSubscribers(quizID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers[quizID]) > 0
}

func (f *rankingFeed) publish(quizID int64, ranking []domain.AttemptResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[quizID] {
		select {
		case ch <- ranking:
		default:
			// Slow subscriber: replace its oldest pending snapshot with the newest one.
			select {
			case <-ch:
			default:
			}
			ch <- ranking
		}
	}
}
