package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.MatchNotifier = (*Webhook)(nil)

// Webhook posts one JSON Message per party to an HTTP endpoint, such as a mailer.
type Webhook struct {
	client *resty.Client
	url    string
	logger *logger.Logger
}

func NewWebhook(url string, timeout time.Duration, logger *logger.Logger) *Webhook {
	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Webhook{client: c, url: url, logger: logger}
}

// NotifyMatch attempts delivery to both parties even if the first one fails.
// Failures are joined and marked as ErrDependencyFailure.
func (n *Webhook) NotifyMatch(ctx context.Context, a, b model.Profile) error {
	var errs []error
	for _, m := range messagesFor(a, b) {
		if err := n.send(ctx, m); err != nil {
			n.logger.Error("Notifier: webhook delivery failed",
				"recipient_id", m.RecipientID,
				"error", err.Error())
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrDependencyFailure, errors.Join(errs...))
	}
	return nil
}

func (n *Webhook) send(ctx context.Context, m Message) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(&m).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("notify %s: %w", m.RecipientID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("notify %s: webhook status %d", m.RecipientID, resp.StatusCode())
	}
	return nil
}
