// Package telegram is a minimal Bot API client covering what the listing
// publisher needs: channel posts, caption edits, deletions and direct
// messages.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

func (c *Client) LoggerComponent() string {
	return "Telegram.Client"
}

func NewClient(apiURL, token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, errors.New("bot token is required")
	}

	c := &Client{
		apiURL:     apiURL,
		token:      token,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}

	for _, o := range opts {
		o(c)
	}

	c.logger = c.logger.With().Str("component", c.LoggerComponent()).Logger()

	return c, nil
}

type ClientOption func(*Client)

func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

type InlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type replyMarkup struct {
	InlineKeyboard [][]InlineButton `json:"inline_keyboard"`
}

func buttonMarkup(buttons ...InlineButton) *replyMarkup {
	m := &replyMarkup{InlineKeyboard: [][]InlineButton{}}
	if len(buttons) > 0 {
		m.InlineKeyboard = append(m.InlineKeyboard, buttons)
	}
	return m
}

// SendMessage sends a plain text message and returns the message id.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (int64, error) {
	out := struct {
		MessageID int64 `json:"message_id"`
	}{}

	err := c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}, &out)

	return out.MessageID, err
}

// SendPhoto posts a photo with a caption and an optional url button,
// returning the message id.
func (c *Client) SendPhoto(ctx context.Context, chatID, photoURL, caption string, buttons ...InlineButton) (int64, error) {
	out := struct {
		MessageID int64 `json:"message_id"`
	}{}

	err := c.call(ctx, "sendPhoto", map[string]interface{}{
		"chat_id":      chatID,
		"photo":        photoURL,
		"caption":      caption,
		"parse_mode":   "HTML",
		"reply_markup": buttonMarkup(buttons...),
	}, &out)

	return out.MessageID, err
}

// EditMessageCaption rewrites the caption and buttons of a channel post.
func (c *Client) EditMessageCaption(ctx context.Context, chatID, messageID, caption string, buttons ...InlineButton) error {
	return c.call(ctx, "editMessageCaption", map[string]interface{}{
		"chat_id":      chatID,
		"message_id":   messageID,
		"caption":      caption,
		"parse_mode":   "HTML",
		"reply_markup": buttonMarkup(buttons...),
	}, nil)
}

// DeleteMessage removes a channel post.
func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	return c.call(ctx, "deleteMessage", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
	}, nil)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (c *Client) call(ctx context.Context, method string, params map[string]interface{}, out interface{}) error {
	l := c.logger.With().Str("method", method).Logger()

	reqBody, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "json encode")
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		l.Error().Err(err).Msg("Call failed")
		return errors.Wrap(err, "do request")
	}
	defer func() {
		_ = res.Body.Close()
	}()

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		return errors.Wrap(err, "body decode")
	}

	if !ar.OK {
		l.Error().Str("description", ar.Description).Msg("Bot API error")
		return errors.Errorf("bot api: %s", ar.Description)
	}

	if out != nil {
		if err := json.Unmarshal(ar.Result, out); err != nil {
			return errors.Wrap(err, "result decode")
		}
	}

	return nil
}
