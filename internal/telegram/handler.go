package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sachnun/translator-bot/internal/relay"
	"github.com/sachnun/translator-bot/internal/types"
)

// Relayer handles one translation unit of work.
type Relayer interface {
	Handle(ctx context.Context, msg types.IncomingMessage) error
}

// Handler dispatches updates to the command replies or to the relay.
type Handler struct {
	relay  Relayer
	sender relay.Sender
	selfID int64
	logger *zap.Logger

	welcome string
	help    string
}

// NewHandler returns a Handler. pivotName is the display name of the default
// target language, used in the /start and /help replies.
func NewHandler(r Relayer, sender relay.Sender, selfID int64, pivotName string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		relay:   r,
		sender:  sender,
		selfID:  selfID,
		logger:  logger,
		welcome: fmt.Sprintf("Welcome to Translation Bot! Send me any text to translate to %s.", pivotName),
		help: fmt.Sprintf("Simply send me any text message and I'll translate it to %s.\n"+
			"Reply to one of my translations to translate your reply into that message's language.", pivotName),
	}
}

// HandleUpdate processes one update. Updates without a text message are ignored.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	message := update.Message
	if message == nil {
		h.logger.Debug("ignoring update without message", zap.Int("update_id", update.UpdateID))
		return nil
	}

	if message.IsCommand() {
		if reply, ok := h.commandReply(message.Command()); ok {
			return h.reply(ctx, message, reply)
		}
	}

	in, ok := ToIncoming(message, h.selfID)
	if !ok {
		return nil
	}
	return h.relay.Handle(ctx, in)
}

// commandReply returns the fixed reply for a known command. Unknown commands
// are translated like any other text.
func (h *Handler) commandReply(command string) (string, bool) {
	switch command {
	case "start":
		return h.welcome, true
	case "help":
		return h.help, true
	case "ping":
		return "Pong!", true
	}
	return "", false
}

func (h *Handler) reply(ctx context.Context, message *tgbotapi.Message, text string) error {
	if message.Chat == nil {
		return nil
	}
	if _, err := h.sender.Send(ctx, message.Chat.ID, types.Payload{Text: text}, message.MessageID); err != nil {
		h.logger.Error("failed to send command reply", zap.String("command", message.Command()), zap.Error(err))
		return err
	}
	return nil
}
