package engine

import (
	"context"
	"log/slog"
	"time"

	"linetutor/app/service/conversation"
	"linetutor/app/service/queue"

	"github.com/samber/do"
	"golang.org/x/sync/semaphore"
)

const maxConcurrentEvents = 8

// Service drains the event queue and dispatches each event on its own
// goroutine. Events for different users proceed concurrently, the
// conversation store serializes mutations itself.
type Service struct {
	conversationSvc *conversation.Service
	queueSvc        *queue.Service
	sem             *semaphore.Weighted
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		queueSvc:        do.MustInvoke[*queue.Service](di),
		sem:             semaphore.NewWeighted(maxConcurrentEvents),
	}, nil
}

func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.queueSvc.Channel():
			if !ok {
				return
			}

			if err := s.sem.Acquire(ctx, 1); err != nil {
				return
			}

			go s.handleEvent(ctx, event)
		}
	}
}

func (s *Service) handleEvent(ctx context.Context, event queue.Event) {
	defer s.sem.Release(1)

	start := time.Now()
	s.conversationSvc.ProcessEvent(ctx, event.UserID, event.ReplyToken, event.Text)

	slog.Info("Processed event",
		"user_id", event.UserID,
		"duration", time.Since(start))
}
