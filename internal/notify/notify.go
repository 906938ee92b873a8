// Package notify tells both parties of a mutual match about each other.
package notify

import (
	"context"

	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

// Message is the notification delivered to one party of a match.
type Message struct {
	RecipientID    string `json:"recipient_id"`
	RecipientEmail string `json:"recipient_email"`
	MatchID        string `json:"match_id"`
	MatchEmail     string `json:"match_email"`
	FirstName      string `json:"first_name"`
}

// messagesFor builds one message per party, each naming the other.
func messagesFor(a, b model.Profile) [2]Message {
	return [2]Message{
		{
			RecipientID:    a.ID.String(),
			RecipientEmail: a.Email,
			MatchID:        b.ID.String(),
			MatchEmail:     b.Email,
			FirstName:      b.FirstName,
		},
		{
			RecipientID:    b.ID.String(),
			RecipientEmail: b.Email,
			MatchID:        a.ID.String(),
			MatchEmail:     a.Email,
			FirstName:      a.FirstName,
		},
	}
}

var _ model.MatchNotifier = (*Log)(nil)

// Log writes matches to the server log instead of delivering them.
type Log struct {
	logger *logger.Logger
}

func NewLog(logger *logger.Logger) *Log {
	return &Log{logger: logger}
}

func (n *Log) NotifyMatch(_ context.Context, a, b model.Profile) error {
	for _, m := range messagesFor(a, b) {
		n.logger.Info("Notifier: mutual match",
			"recipient_id", m.RecipientID,
			"recipient_email", m.RecipientEmail,
			"match_email", m.MatchEmail)
	}
	return nil
}
