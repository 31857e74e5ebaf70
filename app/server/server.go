package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"linetutor/app/client/line"
	"linetutor/app/config"
	"linetutor/app/service/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

const version = "1.2.0"

// Service hosts the webhook endpoint. Transport only: it verifies the
// signature, parses events and enqueues them, orchestration happens in the
// engine and conversation services.
type Service struct {
	cfg        *config.Config
	lineClient *line.Client
	queueSvc   *queue.Service
	app        *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:        do.MustInvoke[*config.Config](di),
		lineClient: do.MustInvoke[*line.Client](di),
		queueSvc:   do.MustInvoke[*queue.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to LINE AI Search Bot v" + version + "!")
	})
	s.app.Post("/callback", s.handleCallback)

	return s, nil
}

func (s *Service) handleCallback(c *fiber.Ctx) error {
	signature := c.Get("X-Line-Signature")
	body := c.Body()

	if !s.lineClient.ValidateSignature(body, signature) {
		slog.Warn("Invalid webhook signature")
		return c.SendStatus(http.StatusBadRequest)
	}

	events, err := s.lineClient.ParseWebhook(body)
	if err != nil {
		slog.Warn("Failed to parse webhook body", "error", err)
		return c.SendStatus(http.StatusBadRequest)
	}

	for _, event := range events {
		if event.Type != "message" || event.Message.Type != line.MessageTypeText {
			continue
		}

		s.queueSvc.Add(queue.Event{
			UserID:     event.Source.UserID,
			ReplyToken: event.ReplyToken,
			Text:       event.Message.Text,
		})
	}

	return c.SendString("OK")
}

func (s *Service) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		if err := s.app.Shutdown(); err != nil {
			slog.Error("Failed to shut down webhook server", "error", err)
		}
	}()

	if err := s.app.Listen(s.cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Webhook server stopped", "error", err)
	}
}
