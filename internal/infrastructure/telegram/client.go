package telegram

import (
	"context"
	"fmt"
	"strconv"

	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Client wraps tgbotapi.BotAPI.
type Client struct {
	api *tgbotapi.BotAPI
	log logger.Logger
}

// Option customizes how the bot API is constructed.
type Option func(*options)

type options struct {
	endpoint string
	debug    bool
}

// WithEndpoint overrides the Bot API endpoint format (see tgbotapi.APIEndpoint).
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithDebug makes the SDK log every request.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// NewClient authorizes against the Bot API with token.
func NewClient(token string, log logger.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: telegram token must be set", appErrors.ErrInvalidConfig)
	}
	o := options{endpoint: tgbotapi.APIEndpoint}
	for _, opt := range opts {
		opt(&o)
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, o.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = o.debug

	log = log.With(zap.String("channel", constant.ChannelTelegram))
	log.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return &Client{api: api, log: log}, nil
}

// Username is the bot's own handle. Group commands addressed to any other "@name" are ignored.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Notify sends text to the chat behind id.
func (c *Client) Notify(ctx context.Context, id entity.RecipientID, text string) error {
	chatID, err := strconv.ParseInt(id.NativeID(), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a telegram chat id", appErrors.ErrInvalidRecipient, id)
	}
	return c.Send(ctx, chatID, text)
}

// Send posts a plain text message to chatID.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("%w: telegram send to %d: %v", appErrors.ErrNotifyFailed, chatID, err)
	}
	c.log.Debug("message sent", zap.Int64("chat_id", chatID))
	return nil
}

// Updates starts long polling. Call StopUpdates to end it.
func (c *Client) Updates(timeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	return c.api.GetUpdatesChan(u)
}

// StopUpdates ends long polling started by Updates.
func (c *Client) StopUpdates() {
	c.api.StopReceivingUpdates()
}
