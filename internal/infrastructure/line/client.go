package line

import (
	"context"
	"fmt"
	"net/http"

	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"go.uber.org/zap"
)

// Client wraps the linebot.Client.
type Client struct {
	bot *linebot.Client
	log logger.Logger
}

// NewClient creates a LINE Messaging API client. opts are passed to the SDK,
// e.g. linebot.WithEndpointBase to point it at a test server.
func NewClient(channelSecret, channelToken string, log logger.Logger, opts ...linebot.ClientOption) (*Client, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, fmt.Errorf("%w: LINE channel secret and access token must both be set", appErrors.ErrInvalidConfig)
	}
	bot, err := linebot.New(channelSecret, channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE bot client: %w", err)
	}
	log.Info("LINE bot client created")
	return &Client{
		bot: bot,
		log: log.With(zap.String("channel", constant.ChannelLINE)),
	}, nil
}

// Notify pushes text to the LINE user behind id.
func (c *Client) Notify(ctx context.Context, id entity.RecipientID, text string) error {
	to := id.NativeID()
	if to == "" {
		return fmt.Errorf("%w: %q", appErrors.ErrInvalidRecipient, id)
	}
	if _, err := c.bot.PushMessage(to, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("%w: line push to %s: %v", appErrors.ErrNotifyFailed, to, err)
	}
	c.log.Debug("push message sent", zap.String("to", to))
	return nil
}

// Reply answers a webhook event. Each text becomes one message bubble.
func (c *Client) Reply(ctx context.Context, replyToken string, texts ...string) error {
	if len(texts) == 0 {
		return nil
	}
	messages := make([]linebot.SendingMessage, 0, len(texts))
	for _, t := range texts {
		messages = append(messages, linebot.NewTextMessage(t))
	}
	if _, err := c.bot.ReplyMessage(replyToken, messages...).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("%w: line reply: %v", appErrors.ErrNotifyFailed, err)
	}
	c.log.Debug("reply message sent")
	return nil
}

// ParseRequest verifies the signature and decodes incoming webhook events.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.bot.ParseRequest(r)
}
