package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"swap-service/internal/logger"
)

// MatchEvent is the payload delivered to the match webhook.
type MatchEvent struct {
	ChatID   int   `json:"chat_id"`
	UserOne  int   `json:"user_one"`
	UserTwo  int   `json:"user_two"`
	MatchIDs []int `json:"match_ids"`
}

// Notifier announces newly created matches to an external consumer
// (e.g. a push-notification service). Delivery is best-effort.
type Notifier interface {
	MatchCreated(ctx context.Context, event MatchEvent)
}

// NewWebhookNotifier builds a webhook notifier, or a noop one when no URL
// is configured.
func NewWebhookNotifier(url string) Notifier {
	if url == "" {
		return noopNotifier{}
	}
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &webhookNotifier{client: client, url: url}
}

type webhookNotifier struct {
	client *resty.Client
	url    string
}

func (n *webhookNotifier) MatchCreated(ctx context.Context, event MatchEvent) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(n.url)
	if err != nil {
		logger.Log.Warn("match webhook delivery failed", zap.Error(err))
		return
	}
	if resp.IsError() {
		logger.Log.Warn("match webhook rejected",
			zap.Int("status", resp.StatusCode()),
			zap.Int("chat_id", event.ChatID))
	}
}

type noopNotifier struct{}

func (noopNotifier) MatchCreated(ctx context.Context, event MatchEvent) {}
