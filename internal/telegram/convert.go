package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sachnun/translator-bot/internal/types"
)

// ToIncoming converts a Telegram message. The bool is false for messages
// without text. selfID is the bot's own user id.
func ToIncoming(m *tgbotapi.Message, selfID int64) (types.IncomingMessage, bool) {
	if m == nil || m.Chat == nil || m.Text == "" {
		return types.IncomingMessage{}, false
	}
	in := types.IncomingMessage{
		ID:     m.MessageID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}
	if m.From != nil {
		in.SenderID = m.From.ID
	}
	if r := m.ReplyToMessage; r != nil {
		in.ReplyTo = &types.ReplyContext{
			MessageID: r.MessageID,
			Text:      r.Text,
			FromSelf:  r.From != nil && r.From.IsBot && r.From.ID == selfID,
		}
		for _, e := range r.Entities {
			if e.Offset == 0 {
				in.ReplyTo.LeadEntities = append(in.ReplyTo.LeadEntities, e.Type)
			}
		}
	}
	return in, true
}
