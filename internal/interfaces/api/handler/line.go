package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"dailyreminder/internal/application/service"
	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
	"dailyreminder/internal/interfaces/command"
	"dailyreminder/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
	"go.uber.org/zap"
)

const welcomeText = "Thanks for adding me! Your daily reminder starts at %s. Send /help to see the commands."

// LineClient is the part of the LINE client the webhook handler needs.
type LineClient interface {
	ParseRequest(r *http.Request) ([]*linebot.Event, error)
	Reply(ctx context.Context, replyToken string, texts ...string) error
}

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient      LineClient
	scheduleService service.ScheduleService
	commands        *command.Handler
	log             logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient LineClient,
	scheduleService service.ScheduleService,
	commands *command.Handler,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient:      lineClient,
		scheduleService: scheduleService,
		commands:        commands,
		log:             log.With(zap.String("channel", constant.ChannelLINE)),
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		if event.Source == nil || event.Source.UserID == "" {
			h.log.Debug("event without user source ignored", zap.String("type", string(event.Type)))
			continue
		}
		recipient, err := entity.NewRecipientID(constant.ChannelLINE, event.Source.UserID)
		if err != nil {
			h.log.Warn("invalid LINE user id", zap.Error(err))
			continue
		}

		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, recipient, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, recipient, event)
		case linebot.EventTypeUnfollow:
			h.handleUnfollowEvent(ctx, recipient)
		default:
			h.log.Debug("unhandled event type", zap.String("type", string(event.Type)))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handleFollowEvent registers the default time and greets the user.
func (h *LineHandler) handleFollowEvent(ctx context.Context, recipient entity.RecipientID, event *linebot.Event) {
	h.log.Info("user followed the bot", zap.Stringer("recipient", recipient))

	t, err := h.scheduleService.Register(ctx, recipient)
	if err != nil {
		// Error already logged by service
		return
	}
	if err := h.lineClient.Reply(ctx, event.ReplyToken, fmt.Sprintf(welcomeText, t)); err != nil {
		h.log.Error("failed to send follow reply", err, zap.Stringer("recipient", recipient))
	}
}

// handleUnfollowEvent drops the schedule; a blocked bot cannot deliver anyway.
func (h *LineHandler) handleUnfollowEvent(ctx context.Context, recipient entity.RecipientID) {
	h.log.Info("user unfollowed or blocked the bot", zap.Stringer("recipient", recipient))
	if err := h.scheduleService.DeleteSchedule(ctx, recipient); err != nil {
		h.log.Error("failed to delete schedule on unfollow", err, zap.Stringer("recipient", recipient))
	}
}

// handleMessageEvent routes text messages to the command handler.
func (h *LineHandler) handleMessageEvent(ctx context.Context, recipient entity.RecipientID, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Debug("non-text message ignored", zap.Stringer("recipient", recipient))
		return
	}

	reply, handled := h.commands.Handle(ctx, recipient, message.Text)
	if !handled {
		return
	}
	if err := h.lineClient.Reply(ctx, event.ReplyToken, reply); err != nil {
		h.log.Error("failed to send command reply", err, zap.Stringer("recipient", recipient))
	}
}
