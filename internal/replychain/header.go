package replychain

import (
	"regexp"
	"strings"

	"github.com/sachnun/translator-bot/internal/catalog"
	"github.com/sachnun/translator-bot/internal/types"
)

// Both patterns are anchored to the start of the message, after an optional
// opening blockquote and bold tag, so only the first line of a header message
// is ever considered.
var (
	// v1: "🇮🇩 Indonesian (id) → ..."; the last "(code)" before the arrow wins.
	headerV1 = regexp.MustCompile(`^\s*(?:<blockquote[^>]*>)?\s*(?:<b>)?\s*([\x{1F1E6}-\x{1F1FF}]{2})[^→\n]*\(([a-z]{2,3}(?:-[A-Za-z0-9]{2,4})?)\)\s*→`)
	// v0: "🇮🇩 Indonesian → ..." or "🇮🇩 id → ...".
	headerV0 = regexp.MustCompile(`^\s*(?:<blockquote[^>]*>)?\s*(?:<b>)?\s*([\x{1F1E6}-\x{1F1FF}]{2})\s*([\p{L}\p{N}_-]+)\s*→`)
)

// Entity types Telegram reports for the quotation block a header opens with.
const (
	entityBlockquote           = "blockquote"
	entityExpandableBlockquote = "expandable_blockquote"
)

// IsHeaderMessage reports whether reply is a header message: its rendered
// HTML opens with a blockquote, or the platform reports a blockquote entity
// at offset 0. Continuations open with a code block and never qualify,
// whatever their text says.
func IsHeaderMessage(reply types.ReplyContext) bool {
	if strings.HasPrefix(strings.TrimSpace(reply.Text), "<blockquote") {
		return true
	}
	for _, e := range reply.LeadEntities {
		if e == entityBlockquote || e == entityExpandableBlockquote {
			return true
		}
	}
	return false
}

// ParseReply recovers the direction record from a replied-to message.
// Only header messages yield a record.
func ParseReply(reply types.ReplyContext, cat *catalog.Catalog) (types.OutgoingTranslationRecord, bool) {
	if !IsHeaderMessage(reply) {
		return types.OutgoingTranslationRecord{}, false
	}
	return ParseHeader(reply.Text, cat)
}

// ParseHeader recovers the language and flag a reply to text should be
// translated into. text may be the rendered HTML or the plain text the
// platform returns for a replied-to message. The bool is false when text
// is not a header message.
func ParseHeader(text string, cat *catalog.Catalog) (types.OutgoingTranslationRecord, bool) {
	if m := headerV1.FindStringSubmatch(text); m != nil {
		return types.OutgoingTranslationRecord{TargetLanguage: m[2], TargetFlagGlyph: m[1]}, true
	}
	if cat == nil {
		return types.OutgoingTranslationRecord{}, false
	}
	if m := headerV0.FindStringSubmatch(text); m != nil {
		if code, ok := cat.CodeForName(m[2]); ok {
			return types.OutgoingTranslationRecord{TargetLanguage: code, TargetFlagGlyph: m[1]}, true
		}
	}
	return types.OutgoingTranslationRecord{}, false
}
