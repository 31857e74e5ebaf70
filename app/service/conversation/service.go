package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"linetutor/app/client/gemini"
	"linetutor/app/client/line"
	"linetutor/app/client/perplexity"
	"linetutor/app/config"

	"github.com/samber/do"
)

const (
	maxReasonDuration = 30 * time.Second

	apologyText = "抱歉，處理您的訊息時出現錯誤。請稍後再試。"
)

// Service runs the full turn for one inbound event: trigger check, history
// bookkeeping, search decision, optional search, final answer, reply.
type Service struct {
	store    *Store
	searcher Searcher
	replier  Replier

	decisionAgent *DecisionAgent
	replyAgent    *ReplyAgent
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(
		cfg,
		do.MustInvoke[*gemini.Client](di),
		do.MustInvoke[*perplexity.Client](di),
		do.MustInvoke[*line.Client](di),
	), nil
}

func NewService(cfg *config.Config, generator Generator, searcher Searcher, replier Replier) *Service {
	return &Service{
		store:         NewStore(),
		searcher:      searcher,
		replier:       replier,
		decisionAgent: NewDecisionAgent(generator, cfg.Gemini.DecisionModel),
		replyAgent:    NewReplyAgent(generator, cfg.Gemini.ReplyModel),
	}
}

// ProcessEvent handles one webhook event end to end. It never returns an
// error: untriggered messages are dropped, and any post-trigger fault is
// converted into a single apology reply. Even a failed apology send only
// gets logged.
func (s *Service) ProcessEvent(ctx context.Context, userID, replyToken, text string) {
	marker := TriggerType(text)
	if marker == "" {
		slog.Debug("Message did not match a trigger marker", "user_id", userID)
		return
	}

	content, _ := ExtractContent(text)
	if content == "" {
		slog.Debug("Trigger marker without content, ignoring", "user_id", userID)
		return
	}

	replyText, err := s.handleTriggered(ctx, marker, userID, content)
	if err == nil {
		if err = s.replier.Reply(ctx, replyToken, replyText); err == nil {
			slog.Info("Replied to message",
				"user_id", userID,
				"marker", marker)
			return
		}
	}

	slog.Error("Failed to process message",
		"user_id", userID,
		"marker", marker,
		"error", err)

	if sendErr := s.replier.Reply(ctx, replyToken, apologyText); sendErr != nil {
		slog.Error("Failed to send apology message",
			"user_id", userID,
			"error", sendErr)
	}
}

func (s *Service) handleTriggered(ctx context.Context, marker, userID, content string) (string, error) {
	// Direct search mode bypasses history and the model entirely.
	if marker == searchMarker {
		return s.searcher.Search(ctx, content), nil
	}

	s.store.Append(userID, content)
	historyStr := s.store.historyContext(userID)

	decision := s.decisionAgent.Decide(ctx, historyStr, content)

	var searchBlock string
	if decision.ShouldSearch && decision.Keyword != "" {
		slog.Info("Running search", "keyword", decision.Keyword)
		searchBlock = fmt.Sprintf("搜尋結果:\n%s\n\n", s.searcher.Search(ctx, decision.Keyword))
	}

	answer, err := s.replyAgent.Call(ctx, historyStr, content)
	if err != nil {
		return "", fmt.Errorf("replyAgent.Call: %w", err)
	}

	s.store.Append(userID, answer)

	return searchBlock + answer, nil
}

// ClearHistory drops all stored turns for a user.
func (s *Service) ClearHistory(userID string) {
	s.store.Clear(userID)
}
