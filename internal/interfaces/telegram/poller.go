package telegram

import (
	"context"
	"strconv"

	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
	"dailyreminder/internal/interfaces/command"
	"dailyreminder/internal/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// longPollTimeout is the getUpdates timeout in seconds.
const longPollTimeout = 60

// Bot is the part of the Telegram client the poller needs.
type Bot interface {
	Updates(timeout int) tgbotapi.UpdatesChannel
	StopUpdates()
	Send(ctx context.Context, chatID int64, text string) error
}

// Poller reads Telegram updates and answers chat commands.
type Poller struct {
	bot      Bot
	commands *command.Handler
	log      logger.Logger
}

// NewPoller creates a new Poller.
func NewPoller(bot Bot, commands *command.Handler, log logger.Logger) *Poller {
	return &Poller{
		bot:      bot,
		commands: commands,
		log:      log.With(zap.String("channel", constant.ChannelTelegram)),
	}
}

// Run consumes updates until ctx is done or the update channel closes.
// Updates are handled one at a time, in arrival order.
func (p *Poller) Run(ctx context.Context) error {
	updates := p.bot.Updates(longPollTimeout)
	defer p.bot.StopUpdates()
	p.log.Info("telegram long polling started")

	for {
		select {
		case <-ctx.Done():
			p.log.Info("telegram long polling stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			p.handleUpdate(ctx, update)
		}
	}
}

func (p *Poller) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	recipient, err := entity.NewRecipientID(constant.ChannelTelegram, strconv.FormatInt(msg.Chat.ID, 10))
	if err != nil {
		p.log.Warn("invalid telegram chat id", zap.Error(err))
		return
	}

	reply, handled := p.commands.Handle(ctx, recipient, msg.Text)
	if !handled {
		return
	}
	if err := p.bot.Send(ctx, msg.Chat.ID, reply); err != nil {
		p.log.Error("failed to send command reply", err, zap.Stringer("recipient", recipient))
	}
}
