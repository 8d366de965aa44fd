package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailyreminder/internal/application/dto"
	"dailyreminder/internal/application/service"
	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	"go.uber.org/zap"
)

// Command names, without the leading slash.
const (
	cmdStart          = "start"
	cmdHelp           = "help"
	cmdSetSchedule    = "set_schedule"
	cmdViewSchedule   = "view_schedule"
	cmdDeleteSchedule = "delete_schedule"
	cmdUpdateSchedule = "update_schedule"
)

// Handler maps chat commands onto ScheduleService calls. It is shared by every transport.
type Handler struct {
	scheduleService service.ScheduleService
	log             logger.Logger
	botUsername     string
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithBotUsername makes the handler ignore "/cmd@other_bot" commands meant for another bot.
func WithBotUsername(username string) HandlerOption {
	return func(h *Handler) {
		h.botUsername = username
	}
}

// NewHandler creates a new Handler.
func NewHandler(scheduleService service.ScheduleService, log logger.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		scheduleService: scheduleService,
		log:             log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle runs the command in text for recipient and returns the reply to show.
// handled is false when text is not a slash command, so the caller can ignore it.
func (h *Handler) Handle(ctx context.Context, recipient entity.RecipientID, text string) (reply string, handled bool) {
	name, args, ok := Parse(text, h.botUsername)
	if !ok {
		return "", false
	}
	h.log.Debug("command received", zap.Stringer("recipient", recipient), zap.String("command", name))

	switch name {
	case cmdStart:
		return h.start(ctx, recipient), true
	case cmdHelp:
		return helpText, true
	case cmdSetSchedule:
		return h.setSchedule(ctx, recipient, args), true
	case cmdViewSchedule:
		return h.viewSchedule(ctx, recipient), true
	case cmdDeleteSchedule:
		return h.deleteSchedule(ctx, recipient), true
	case cmdUpdateSchedule:
		return h.updateSchedule(ctx, recipient, args), true
	default:
		return unknownText, true
	}
}

// Parse splits "/name@bot arg1 arg2" into its lower-cased name and arguments.
// When botUsername is set, a command addressed to a different bot is not ok.
func Parse(text, botUsername string) (name string, args []string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}
	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		target := name[at+1:]
		if botUsername != "" && !strings.EqualFold(target, botUsername) {
			return "", nil, false
		}
		name = name[:at]
	}
	if name == "" {
		return "", nil, false
	}
	return strings.ToLower(name), fields[1:], true
}

func (h *Handler) start(ctx context.Context, recipient entity.RecipientID) string {
	if _, err := h.scheduleService.Register(ctx, recipient); err != nil {
		return failureText
	}
	return helpText
}

func (h *Handler) setSchedule(ctx context.Context, recipient entity.RecipientID, args []string) string {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}
	t, err := h.scheduleService.SetTime(ctx, dto.SetScheduleRequest{RecipientID: recipient, Time: raw})
	if err != nil {
		if isUsageError(err) {
			return setUsageText
		}
		return failureText
	}
	return fmt.Sprintf(setOKText, t)
}

func (h *Handler) viewSchedule(ctx context.Context, recipient entity.RecipientID) string {
	resp, err := h.scheduleService.GetSchedule(ctx, recipient)
	if err != nil {
		return failureText
	}
	if !resp.IsSet {
		return viewNotSetText
	}
	return fmt.Sprintf(viewText, resp.TimeOfDay)
}

func (h *Handler) deleteSchedule(ctx context.Context, recipient entity.RecipientID) string {
	if err := h.scheduleService.DeleteSchedule(ctx, recipient); err != nil {
		return failureText
	}
	return deleteOKText
}

func (h *Handler) updateSchedule(ctx context.Context, recipient entity.RecipientID, args []string) string {
	if len(args) < 2 {
		return updateUsageText
	}
	resp, err := h.scheduleService.UpdateTime(ctx, dto.UpdateScheduleRequest{
		RecipientID: recipient,
		OldTime:     args[0],
		NewTime:     args[1],
	})
	if err != nil {
		if isUsageError(err) {
			return updateUsageText
		}
		return failureText
	}
	if !resp.Replaced {
		return fmt.Sprintf(updateMismatchText, resp.OldTime)
	}
	return fmt.Sprintf(updateOKText, resp.OldTime, resp.NewTime)
}

func isUsageError(err error) bool {
	return errors.Is(err, appErrors.ErrInvalidTimeFormat) || errors.Is(err, appErrors.ErrMissingArgument)
}
