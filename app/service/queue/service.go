package queue

import (
	"log/slog"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service buffers inbound webhook events so the HTTP handler can return
// immediately. Overflow drops the event instead of blocking the webhook.
type Service struct {
	queue chan Event
}

type Event struct {
	UserID     string
	ReplyToken string
	Text       string
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan Event, bufferSize),
	}, nil
}

func (s *Service) Add(event Event) {
	defer func() {
		if r := recover(); r != nil {
			// send on closed queue during shutdown
		}
	}()

	select {
	case s.queue <- event:
	default:
		slog.Warn("event queue is full, dropping event", "user_id", event.UserID)
	}
}

func (s *Service) Channel() <-chan Event {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
