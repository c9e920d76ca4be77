package replychain

import (
	"html"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sachnun/translator-bot/internal/catalog"
	"github.com/sachnun/translator-bot/internal/types"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// plainText mimics the entity-stripped text Telegram returns for a replied-to message.
func plainText(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

func TestHeaderHaloDunia(t *testing.T) {
	f := NewFormatter(catalog.New(nil))
	d := types.DirectionDecision{SourceLanguage: "id", TargetLanguage: "en"}

	p := f.Header(d, "Halo dunia", "Hello world", 42)

	if p.ParseMode != types.ParseModeHTML {
		t.Fatalf("parse mode = %q", p.ParseMode)
	}
	wantLine := "<b>🇮🇩 Indonesian (id) → 🇬🇧 English (en)</b>"
	if !strings.Contains(p.Text, wantLine) {
		t.Fatalf("header line missing in %q", p.Text)
	}
	if !strings.Contains(p.Text, "<i>Halo dunia</i></blockquote>") {
		t.Fatalf("original not quoted verbatim: %q", p.Text)
	}
	if !strings.Contains(p.Text, "<code>Hello world</code>") {
		t.Fatalf("translation missing: %q", p.Text)
	}
	if !strings.Contains(p.Text, `<a href="tg://user?id=42">`+"\u200e</a>") {
		t.Fatalf("sender anchor missing: %q", p.Text)
	}
	if !strings.HasPrefix(p.Text, "<blockquote expandable>") {
		t.Fatalf("header must open the message: %q", p.Text)
	}
}

func TestHeaderUsesOverrideFlag(t *testing.T) {
	f := NewFormatter(nil)
	d := types.DirectionDecision{SourceLanguage: "en", TargetLanguage: "ja", TargetForced: true, TargetFlag: "🇺🇳"}

	line := f.HeaderLine(d)
	if line != "🇬🇧 English (en) → 🇺🇳 Japanese (ja)" {
		t.Fatalf("HeaderLine() = %q", line)
	}
}

func TestHeaderEscapesUserInput(t *testing.T) {
	f := NewFormatter(catalog.New(nil))
	d := types.DirectionDecision{SourceLanguage: "en", TargetLanguage: "id"}
	original := `<script>alert("x")</script> & <b>bold</b>`
	chunk := `</code><a href="https://evil.example">click</a>`

	header := f.Header(d, original, chunk, 1)
	cont := f.Continuation(chunk)

	for _, p := range []types.Payload{header, cont} {
		for _, bad := range []string{"<script>", "<a href=\"https://evil", "<b>bold", "</code><a"} {
			if strings.Contains(p.Text, bad) {
				t.Fatalf("unescaped input %q in %q", bad, p.Text)
			}
		}
	}
	if !strings.Contains(header.Text, "&lt;script&gt;") {
		t.Fatalf("expected escaped original in %q", header.Text)
	}
	if got := plainText(cont.Text); got != chunk {
		t.Fatalf("continuation body = %q, want %q", got, chunk)
	}
}

func TestHeaderTruncatesLongOriginal(t *testing.T) {
	f := NewFormatter(nil)
	d := types.DirectionDecision{SourceLanguage: "en", TargetLanguage: "id"}
	original := strings.Repeat("ü", OriginalQuoteLimit+10)

	p := f.Header(d, original, "x", 1)

	start := strings.Index(p.Text, "<i>") + len("<i>")
	end := strings.Index(p.Text, "</i>")
	quoted := p.Text[start:end]
	if !strings.HasSuffix(quoted, "...") {
		t.Fatalf("long original not marked as cut")
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(quoted, "...")); n != OriginalQuoteLimit {
		t.Fatalf("quoted %d runes, want %d", n, OriginalQuoteLimit)
	}

	short := f.Header(d, strings.Repeat("a", OriginalQuoteLimit), "x", 1)
	if strings.Contains(short.Text, "...") {
		t.Fatalf("original at the limit must not be cut")
	}
}

func TestContinuation(t *testing.T) {
	p := NewFormatter(nil).Continuation("part two")
	if p.Text != "<code>part two</code>" || p.ParseMode != types.ParseModeHTML {
		t.Fatalf("Continuation() = %+v", p)
	}
}

func TestFailureNotice(t *testing.T) {
	if p := FailureNotice(""); p.Text != DefaultFailureNotice || p.ParseMode != "" {
		t.Fatalf("FailureNotice(\"\") = %+v", p)
	}
	if p := FailureNotice("Gagal."); p.Text != "Gagal." {
		t.Fatalf("FailureNotice(custom) = %+v", p)
	}
}

func TestHeaderOverhead(t *testing.T) {
	f := NewFormatter(catalog.New(nil))
	tests := []struct {
		name     string
		d        types.DirectionDecision
		original string
	}{
		{name: "short", d: types.DirectionDecision{SourceLanguage: "id", TargetLanguage: "en"}, original: "Halo dunia"},
		{name: "escaped", d: types.DirectionDecision{SourceLanguage: "en", TargetLanguage: "id"}, original: `a < b & "c"`},
		{name: "truncated", d: types.DirectionDecision{SourceLanguage: "zh-TW", TargetLanguage: "id"}, original: strings.Repeat("字", 1500)},
		{name: "forced flag", d: types.DirectionDecision{SourceLanguage: "id", TargetLanguage: "ko", TargetForced: true, TargetFlag: "🇰🇷"}, original: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := "tëxt & more"
			visible := utf8.RuneCountInString(plainText(f.Header(tt.d, tt.original, chunk, 9).Text))
			if got, want := f.HeaderOverhead(tt.d, tt.original), visible-utf8.RuneCountInString(chunk); got != want {
				t.Fatalf("HeaderOverhead() = %d, want %d", got, want)
			}
		})
	}
}
