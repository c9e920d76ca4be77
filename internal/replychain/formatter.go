// Package replychain renders translation replies and recovers the direction
// embedded in a previously sent header message.
package replychain

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/sachnun/translator-bot/internal/catalog"
	"github.com/sachnun/translator-bot/internal/types"
)

// OriginalQuoteLimit caps the quoted original text, in runes.
const OriginalQuoteLimit = 1000

// DefaultFailureNotice is sent when a unit of work fails.
const DefaultFailureNotice = "Sorry, translation failed."

const (
	arrow        = "→"
	invisibleTag = "\u200e"
)

// Formatter renders outbound payloads. It only reads from its catalog.
type Formatter struct {
	catalog *catalog.Catalog
}

// NewFormatter returns a Formatter using cat for names and flags.
func NewFormatter(cat *catalog.Catalog) *Formatter {
	if cat == nil {
		cat = catalog.New(nil)
	}
	return &Formatter{catalog: cat}
}

// HeaderLine is the first line of a header message:
//
//	{srcFlag} {srcName} ({srcCode}) → {tgtFlag} {tgtName} ({tgtCode})
func (f *Formatter) HeaderLine(d types.DirectionDecision) string {
	targetFlag := d.TargetFlag
	if targetFlag == "" {
		targetFlag = f.catalog.Flag(d.TargetLanguage)
	}
	return fmt.Sprintf("%s %s (%s) %s %s %s (%s)",
		f.catalog.Flag(d.SourceLanguage),
		html.EscapeString(f.catalog.DisplayName(d.SourceLanguage)),
		html.EscapeString(d.SourceLanguage),
		arrow,
		targetFlag,
		html.EscapeString(f.catalog.DisplayName(d.TargetLanguage)),
		html.EscapeString(d.TargetLanguage),
	)
}

// Header renders the first message of a reply chain.
func (f *Formatter) Header(d types.DirectionDecision, original, firstChunk string, senderID int64) types.Payload {
	var b strings.Builder
	b.WriteString("<blockquote expandable><b>")
	b.WriteString(f.HeaderLine(d))
	b.WriteString("</b>\n<i>")
	b.WriteString(html.EscapeString(quote(original)))
	b.WriteString("</i></blockquote>\n\n<code>")
	b.WriteString(html.EscapeString(firstChunk))
	b.WriteString("</code>\n")
	fmt.Fprintf(&b, `<a href="tg://user?id=%d">%s</a>`, senderID, invisibleTag)
	return types.Payload{Text: b.String(), ParseMode: types.ParseModeHTML}
}

// HeaderOverhead is the visible length in runes of the header Header renders
// for d and original, not counting the first chunk. The platform limit
// applies to visible text, so markup is not counted.
func (f *Formatter) HeaderOverhead(d types.DirectionDecision, original string) int {
	line := utf8.RuneCountInString(html.UnescapeString(f.HeaderLine(d)))
	// newline after the line, blank line before the chunk, newline and tag after it
	return line + utf8.RuneCountInString(quote(original)) + 4 + utf8.RuneCountInString(invisibleTag)
}

// Continuation renders a chunk after the first. It carries no header, so a
// reply to it never yields an override.
func (f *Formatter) Continuation(chunk string) types.Payload {
	return types.Payload{
		Text:      "<code>" + html.EscapeString(chunk) + "</code>",
		ParseMode: types.ParseModeHTML,
	}
}

// FailureNotice renders the plain-text notice sent when a unit of work fails.
func FailureNotice(text string) types.Payload {
	if strings.TrimSpace(text) == "" {
		text = DefaultFailureNotice
	}
	return types.Payload{Text: text}
}

func quote(s string) string {
	r := []rune(s)
	if len(r) <= OriginalQuoteLimit {
		return s
	}
	return string(r[:OriginalQuoteLimit]) + "..."
}
