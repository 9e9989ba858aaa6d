package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quiz-scoring-engine/internal/app"
	"quiz-scoring-engine/internal/domain"
)

type WSHandler struct {
	service  *app.QuizService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Nickname string `json:"nickname"`
}

type submitPayload struct {
	Answers domain.Submission `json:"answers"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets. A connection plays one quiz:
// "start" opens a session held by the connection, "submit" consumes it, and
// ranking updates for the quiz are pushed as they happen.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID, err := parseQuizID(r.URL.Query().Get("quizId"))
	if err != nil {
		http.Error(w, "missing or invalid quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, cancel, err := h.service.Subscribe(r.Context(), quizID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	defer cancel()

	out := newOutbox(16)
	closeSignals := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer: gorilla connections do not support concurrent writes
	go func() {
		defer out.writerExited()
		for msg := range out.queue {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case ranking, ok := <-updates:
				if !ok {
					return
				}
				if !out.send(outboundMessage[any]{Type: "ranking", Payload: ranking}, closeSignals) {
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	// a restart discards the previous session; one left open on disconnect
	// expires with the session ttl
	var sessionID string
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var reply outboundMessage[any]
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply = errorMessage("invalid start payload")
				break
			}
			if err := h.service.Abandon(r.Context(), sessionID); err != nil {
				h.logger.Warn("discard previous session", zap.Error(err))
			}
			sessionID = ""
			presentation, err := h.service.Start(r.Context(), quizID, payload.Nickname)
			if err != nil {
				reply = errorMessage(err.Error())
				break
			}
			sessionID = presentation.SessionID
			reply = outboundMessage[any]{Type: "presentation", Payload: presentation}
		case "submit":
			var payload submitPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply = errorMessage("invalid submit payload")
				break
			}
			result, err := h.service.Submit(r.Context(), quizID, sessionID, payload.Answers)
			sessionID = ""
			if err != nil && !errors.Is(err, domain.ErrRankingStore) {
				reply = errorMessage(err.Error())
				break
			}
			reply = outboundMessage[any]{Type: "result", Payload: newSubmitResponse(result, err)}
		default:
			reply = errorMessage("unsupported message type")
		}
		if !out.send(reply, nil) {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	out.close()
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}

// outbox queues messages for the connection's writer goroutine. Once the
// writer has exited, sends fail instead of blocking.
type outbox struct {
	queue      chan outboundMessage[any]
	writerDone chan struct{}
}

func newOutbox(size int) *outbox {
	return &outbox{
		queue:      make(chan outboundMessage[any], size),
		writerDone: make(chan struct{}),
	}
}

// send queues msg and reports false if the writer is gone or stop is closed.
func (o *outbox) send(msg outboundMessage[any], stop <-chan struct{}) bool {
	select {
	case o.queue <- msg:
		return true
	case <-o.writerDone:
		return false
	case <-stop:
		return false
	}
}

// writerExited is deferred by the writer goroutine.
func (o *outbox) writerExited() {
	close(o.writerDone)
}

// close stops the writer after the queued messages and waits for it.
func (o *outbox) close() {
	close(o.queue)
	<-o.writerDone
}
