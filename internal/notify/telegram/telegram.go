// Package telegram delivers notifications through the Telegram bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"

	tb "gopkg.in/tucnak/telebot.v2"
)

// Notifier sends plain-text messages to a single Telegram chat.
type Notifier struct {
	client *tb.Bot
	chat   *tb.Chat
}

// Option is a function that configures a Notifier.
type Option func(*tb.Settings)

// WithAPIURL overrides the Telegram API endpoint.
func WithAPIURL(url string) Option {
	return func(s *tb.Settings) {
		s.URL = url
	}
}

// WithClient sets the HTTP client used for API calls.
func WithClient(client *http.Client) Option {
	return func(s *tb.Settings) {
		s.Client = client
	}
}

// New creates a Notifier for the given bot token and destination chat.
// Creating the bot performs a getMe call, so a bad token fails here rather
// than on the first send.
func New(token string, chatID int64, options ...Option) (*Notifier, error) {
	settings := tb.Settings{Token: token}
	for _, option := range options {
		option(&settings)
	}

	client, err := tb.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Notifier{client: client, chat: &tb.Chat{ID: chatID}}, nil
}

// Notify sends text to the configured chat.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.client.Send(n.chat, text); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
