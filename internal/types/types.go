// internal/types/types.go

package types

// LanguageCode names a natural language, e.g. "en", "id", "zh-CN".
type LanguageCode = string

// AutoDetect asks a provider to detect the source language itself.
const AutoDetect LanguageCode = "auto"

// ParseModeHTML is the markup dialect used for every translation payload.
const ParseModeHTML = "HTML"

// DirectionDecision is the resolved translation direction for one incoming message.
type DirectionDecision struct {
	SourceLanguage LanguageCode
	TargetLanguage LanguageCode
	// SourceForced is never set by the resolver; only the target can be forced.
	SourceForced bool
	// TargetForced reports that the target came from a reply-chain override.
	TargetForced bool
	// TargetFlag is the flag glyph recovered with the override, empty otherwise.
	TargetFlag string
}

// ReplyContext is the message an incoming message replies to.
type ReplyContext struct {
	MessageID int
	Text      string
	// FromSelf is true when the replied-to message was sent by this bot.
	FromSelf bool
	// LeadEntities lists the types of the formatting entities that start at
	// offset 0 of Text ("expandable_blockquote", "bold", "code", ...).
	LeadEntities []string
}

// IncomingMessage is a text message handed to the relay for one handling cycle.
type IncomingMessage struct {
	ID       int
	ChatID   int64
	SenderID int64
	Text     string
	ReplyTo  *ReplyContext
}

// OutgoingTranslationRecord is the state recovered by re-parsing a header message
// the bot sent earlier: the language (and its glyph) a reply to it is translated into.
type OutgoingTranslationRecord struct {
	TargetLanguage  LanguageCode
	TargetFlagGlyph string
}

// Payload is one outbound message body.
type Payload struct {
	Text string
	// ParseMode is empty for plain text.
	ParseMode string
}
