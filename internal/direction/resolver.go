// Package direction decides which language an incoming message is translated into.
package direction

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sachnun/translator-bot/internal/catalog"
	"github.com/sachnun/translator-bot/internal/replychain"
	"github.com/sachnun/translator-bot/internal/types"
)

// DetectFunc returns the language code of text.
type DetectFunc func(ctx context.Context, text string) (types.LanguageCode, error)

// Config holds the process-wide direction bias.
type Config struct {
	// Pivot is the default target for text outside PivotGroup.
	Pivot types.LanguageCode `mapstructure:"pivot"`
	// Secondary is the default target for text written in a PivotGroup language.
	Secondary types.LanguageCode `mapstructure:"secondary"`
	// PivotGroup lists languages treated as the pivot, e.g. Indonesian and Malay.
	PivotGroup []types.LanguageCode `mapstructure:"pivot_group"`
	// RejectNoOpOverride ignores an override whose target equals the detected source.
	RejectNoOpOverride bool `mapstructure:"reject_noop_override"`
}

// DefaultConfig is the Indonesian/English bias.
func DefaultConfig() Config {
	return Config{
		Pivot:      "id",
		Secondary:  "en",
		PivotGroup: []types.LanguageCode{"id", "ms"},
	}
}

// Resolver computes a DirectionDecision per incoming message. It holds no
// per-message state.
type Resolver struct {
	cfg     Config
	catalog *catalog.Catalog
}

// NewResolver returns a Resolver. Empty fields of cfg take DefaultConfig values.
func NewResolver(cfg Config, cat *catalog.Catalog) *Resolver {
	def := DefaultConfig()
	if cfg.Pivot == "" {
		cfg.Pivot = def.Pivot
	}
	if cfg.Secondary == "" {
		cfg.Secondary = def.Secondary
	}
	if len(cfg.PivotGroup) == 0 {
		cfg.PivotGroup = def.PivotGroup
	}
	return &Resolver{cfg: cfg, catalog: cat}
}

// Resolve picks source and target languages for msg. Detection always runs
// and decides the source; a reply to one of our header messages decides the target.
func (r *Resolver) Resolve(ctx context.Context, msg types.IncomingMessage, detect DetectFunc) (types.DirectionDecision, error) {
	override, hasOverride := r.Override(msg)

	source, err := detect(ctx, msg.Text)
	if err != nil {
		return types.DirectionDecision{}, fmt.Errorf("%w: %w", types.ErrDetectionFailed, err)
	}
	source = strings.TrimSpace(source)
	if source == "" || source == types.AutoDetect {
		return types.DirectionDecision{}, fmt.Errorf("%w: no usable language code", types.ErrDetectionFailed)
	}

	if hasOverride && r.cfg.RejectNoOpOverride && sameLanguage(override.TargetLanguage, source) {
		hasOverride = false
	}
	if hasOverride {
		return types.DirectionDecision{
			SourceLanguage: source,
			TargetLanguage: override.TargetLanguage,
			TargetForced:   true,
			TargetFlag:     override.TargetFlagGlyph,
		}, nil
	}
	return types.DirectionDecision{
		SourceLanguage: source,
		TargetLanguage: r.DefaultTarget(source),
	}, nil
}

// Override parses the replied-to message when it is a header message of ours.
// Replies to continuation chunks never yield an override.
func (r *Resolver) Override(msg types.IncomingMessage) (types.OutgoingTranslationRecord, bool) {
	if msg.ReplyTo == nil || !msg.ReplyTo.FromSelf {
		return types.OutgoingTranslationRecord{}, false
	}
	return replychain.ParseReply(*msg.ReplyTo, r.catalog)
}

// DefaultTarget applies the pivot rule to a detected source language.
func (r *Resolver) DefaultTarget(source types.LanguageCode) types.LanguageCode {
	if slices.ContainsFunc(r.cfg.PivotGroup, func(code types.LanguageCode) bool {
		return sameLanguage(code, source)
	}) {
		return r.cfg.Secondary
	}
	return r.cfg.Pivot
}

// sameLanguage compares base codes, so "zh-CN" and "zh" are the same language.
func sameLanguage(a, b types.LanguageCode) bool {
	return strings.EqualFold(base(a), base(b))
}

func base(code types.LanguageCode) string {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	b, _, _ := strings.Cut(code, "-")
	return b
}
