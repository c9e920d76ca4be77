package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sachnun/translator-bot/internal/types"
)

// LibreTranslate talks to a LibreTranslate server.
type LibreTranslate struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
	Format string `json:"format,omitempty"`
	APIKey string `json:"api_key,omitempty"`
}

type libreTranslateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage *struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	} `json:"detectedLanguage,omitempty"`
	Error string `json:"error,omitempty"`
}

type libreDetection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// NewLibreTranslate returns a client for the server at baseURL.
func NewLibreTranslate(baseURL, apiKey string, timeout time.Duration) *LibreTranslate {
	return &LibreTranslate{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

func (l *LibreTranslate) Translate(ctx context.Context, text string, source, target types.LanguageCode) (Result, error) {
	if source == "" {
		source = types.AutoDetect
	}
	var out libreTranslateResponse
	err := l.post(ctx, "/translate", libreRequest{Q: text, Source: source, Target: target, Format: "text", APIKey: l.APIKey}, &out)
	if err != nil {
		return Result{}, err
	}
	if out.Error != "" {
		return Result{}, fmt.Errorf("libretranslate: %s", out.Error)
	}
	res := Result{Text: out.TranslatedText, DetectedSource: source, Provider: l.Name()}
	if out.DetectedLanguage != nil {
		res.DetectedSource = out.DetectedLanguage.Language
	}
	if res.DetectedSource == types.AutoDetect {
		res.DetectedSource = ""
	}
	return res, nil
}

// Detect returns the most confident detection.
func (l *LibreTranslate) Detect(ctx context.Context, text string) (types.LanguageCode, error) {
	var out []libreDetection
	if err := l.post(ctx, "/detect", libreRequest{Q: text, APIKey: l.APIKey}, &out); err != nil {
		return "", err
	}
	best := libreDetection{Confidence: -1}
	for _, d := range out {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return best.Language, nil
}

func (l *LibreTranslate) post(ctx context.Context, path string, payload libreRequest, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal libretranslate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create libretranslate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send libretranslate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("libretranslate", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode libretranslate response: %w", err)
	}
	return nil
}
