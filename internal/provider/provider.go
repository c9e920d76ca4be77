// Package provider talks to external translation services.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sachnun/translator-bot/internal/types"
)

// Result is one translation.
type Result struct {
	Text           string
	DetectedSource types.LanguageCode
	// Provider names the service that produced Text.
	Provider string
}

// Translator translates text. source may be types.AutoDetect.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text string, source, target types.LanguageCode) (Result, error)
}

// Detector detects the language of text.
type Detector interface {
	Detect(ctx context.Context, text string) (types.LanguageCode, error)
}

// Chain tries its members in order until one succeeds.
type Chain struct {
	members []Translator
	logger  *zap.Logger
}

// NewChain returns a Chain over members. A nil logger discards output.
func NewChain(logger *zap.Logger, members ...Translator) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{members: members, logger: logger}
}

// Name lists the members, e.g. "google,libretranslate".
func (c *Chain) Name() string {
	names := make([]string, len(c.members))
	for i, m := range c.members {
		names[i] = m.Name()
	}
	return strings.Join(names, ",")
}

// Translate returns the first successful member result. When every member
// fails the error wraps types.ErrTranslationFailed and each member error.
func (c *Chain) Translate(ctx context.Context, text string, source, target types.LanguageCode) (Result, error) {
	if len(c.members) == 0 {
		return Result{}, fmt.Errorf("%w: no providers configured", types.ErrTranslationFailed)
	}
	var errs []error
	for _, m := range c.members {
		res, err := m.Translate(ctx, text, source, target)
		if err == nil && res.Text == "" && text != "" {
			err = errors.New("empty translation")
		}
		if err != nil {
			c.logger.Warn("translation provider failed",
				zap.String("provider", m.Name()), zap.String("target", target), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		if res.Provider == "" {
			res.Provider = m.Name()
		}
		return res, nil
	}
	return Result{}, fmt.Errorf("%w: %w", types.ErrTranslationFailed, errors.Join(errs...))
}

// Detect asks each member that can detect languages, in order.
func (c *Chain) Detect(ctx context.Context, text string) (types.LanguageCode, error) {
	var errs []error
	for _, m := range c.members {
		d, ok := m.(Detector)
		if !ok {
			continue
		}
		code, err := d.Detect(ctx, text)
		if err == nil && code == "" {
			err = errors.New("no language detected")
		}
		if err != nil {
			c.logger.Warn("language detection failed", zap.String("provider", m.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return code, nil
	}
	if len(errs) == 0 {
		return "", errors.New("no provider supports detection")
	}
	return "", errors.Join(errs...)
}

// statusError reads a non-2xx response into an error.
func statusError(service string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s returned status %d: %s", service, resp.StatusCode, strings.TrimSpace(string(body)))
}
