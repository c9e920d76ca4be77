package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sachnun/translator-bot/internal/types"
)

// DefaultGoogleEndpoint is the public web translate endpoint.
const DefaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google uses the keyless web translate endpoint.
type Google struct {
	Endpoint string
	Client   *http.Client
}

// NewGoogle returns a Google provider. An empty endpoint uses DefaultGoogleEndpoint.
func NewGoogle(endpoint string, timeout time.Duration) *Google {
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	return &Google{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (g *Google) Name() string { return "google" }

// Translate posts text as a form so long messages do not overflow the URL.
func (g *Google) Translate(ctx context.Context, text string, source, target types.LanguageCode) (Result, error) {
	if source == "" {
		source = types.AutoDetect
	}
	params := url.Values{
		"client": {"gtx"},
		"sl":     {source},
		"tl":     {target},
		"dt":     {"t"},
	}
	form := url.Values{"q": {text}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint+"?"+params.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create google request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("error making request to google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, statusError("google", resp)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("error decoding google response: %w", err)
	}
	return parseGoogle(raw)
}

// Detect translates into English and keeps only the detected source.
func (g *Google) Detect(ctx context.Context, text string) (types.LanguageCode, error) {
	res, err := g.Translate(ctx, text, types.AutoDetect, "en")
	if err != nil {
		return "", err
	}
	return res.DetectedSource, nil
}

// parseGoogle reads [[["translated","original",...],...],null,"detected",...].
func parseGoogle(raw []json.RawMessage) (Result, error) {
	if len(raw) == 0 {
		return Result{}, fmt.Errorf("empty google response")
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return Result{}, fmt.Errorf("unexpected google segments: %w", err)
	}
	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(seg[0], &s); err == nil {
			b.WriteString(s)
		}
	}

	res := Result{Text: b.String(), Provider: "google"}
	if len(raw) > 2 {
		var detected string
		if err := json.Unmarshal(raw[2], &detected); err == nil {
			res.DetectedSource = detected
		}
	}
	return res, nil
}
