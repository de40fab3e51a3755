package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ProductRadar/internal/locales"
	"ProductRadar/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// supergroupPrefix marks channel ids whose numeric form permits deep links.
const supergroupPrefix = "-100"

// Publisher sends channel messages via the Telegram bot API.
type Publisher struct {
	botToken  string
	channelID string
	language  string
	apiBase   string
	client    *http.Client
	logger    *slog.Logger
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher registers bot token, destination channel and output language.
// A nil client gets a sane default.
func NewPublisher(client *http.Client, botToken, channelID, language string, logger *slog.Logger) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		botToken:  botToken,
		channelID: channelID,
		language:  language,
		apiBase:   defaultAPIBase,
		client:    client,
		logger:    logger,
	}
}

// Publish posts a Markdown message and returns its message identifier.
func (p *Publisher) Publish(ctx context.Context, text string) (int64, error) {
	form := url.Values{}
	form.Set("chat_id", p.channelID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	var result struct {
		MessageID int64 `json:"message_id"`
	}
	if err := p.call(ctx, "sendMessage", form, &result); err != nil {
		return 0, err
	}

	p.logger.Debug("message sent", "message_id", result.MessageID)
	return result.MessageID, nil
}

// Pin marks a message as pinned without notifying subscribers.
func (p *Publisher) Pin(ctx context.Context, messageID int64) error {
	form := url.Values{}
	form.Set("chat_id", p.channelID)
	form.Set("message_id", strconv.FormatInt(messageID, 10))
	form.Set("disable_notification", "true")

	if err := p.call(ctx, "pinChatMessage", form, nil); err != nil {
		return err
	}

	p.logger.Debug("message pinned", "message_id", messageID)
	return nil
}

// Probe verifies bot identity via getMe. Loud mode additionally posts a
// visible test message to the channel.
func (p *Publisher) Probe(ctx context.Context, silent bool) error {
	var identity struct {
		FirstName string `json:"first_name"`
		Username  string `json:"username"`
	}
	if err := p.call(ctx, "getMe", url.Values{}, &identity); err != nil {
		return fmt.Errorf("bot identity check: %w", err)
	}
	p.logger.Info("bot identity verified", "name", identity.FirstName, "username", identity.Username)

	if silent {
		return nil
	}

	text := "🤖 " + locales.Text(p.language, "connection_test", "Bot connection test successful!")
	if _, err := p.Publish(ctx, text); err != nil {
		return fmt.Errorf("send test message: %w", err)
	}
	return nil
}

// MessageLink derives a t.me deep link from the channel id and a message id.
// Only the numeric supergroup form (-100…) yields one; opaque @handles do
// not, and the caller falls back to plain text.
func (p *Publisher) MessageLink(messageID int64) (string, bool) {
	if !strings.HasPrefix(p.channelID, supergroupPrefix) {
		return "", false
	}
	numeric := p.channelID[len(supergroupPrefix):]
	if numeric == "" {
		return "", false
	}
	return fmt.Sprintf("https://t.me/c/%s/%d", numeric, messageID), true
}

// call executes one bot API method and decodes its result payload.
func (p *Publisher) call(ctx context.Context, method string, form url.Values, result any) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", p.apiBase, p.botToken, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}

	if !envelope.OK {
		if envelope.Description == "" {
			envelope.Description = resp.Status
		}
		return fmt.Errorf("telegram %s: %s", method, envelope.Description)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
