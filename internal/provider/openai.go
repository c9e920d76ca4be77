package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sachnun/translator-bot/internal/catalog"
	"github.com/sachnun/translator-bot/internal/types"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI translates through an OpenAI compatible chat completions API.
type OpenAI struct {
	Key      string
	Endpoint string
	Model    string
	Client   *http.Client
	catalog  *catalog.Catalog
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatQuery struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAI returns an OpenAI provider. cat supplies language names for the prompt.
func NewOpenAI(key, endpoint, model string, timeout time.Duration, cat *catalog.Catalog) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if cat == nil {
		cat = catalog.New(nil)
	}
	return &OpenAI{
		Key:      key,
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		Client:   &http.Client{Timeout: timeout},
		catalog:  cat,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Translate(ctx context.Context, text string, source, target types.LanguageCode) (Result, error) {
	from := "the detected language"
	if source != "" && source != types.AutoDetect {
		from = o.catalog.DisplayName(source)
	}
	system := fmt.Sprintf("Translate the user's message from %s into %s. Reply with the translation only.",
		from, o.catalog.DisplayName(target))

	content, err := o.complete(ctx, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: text},
	})
	if err != nil {
		return Result{}, err
	}
	res := Result{Text: content, Provider: o.Name()}
	if source != types.AutoDetect {
		res.DetectedSource = source
	}
	return res, nil
}

// Detect asks the model for a bare language code.
func (o *OpenAI) Detect(ctx context.Context, text string) (types.LanguageCode, error) {
	content, err := o.complete(ctx, []chatMessage{
		{Role: "system", Content: "Identify the language of the user's message. Reply with its ISO 639-1 code only, for example: en"},
		{Role: "user", Content: text},
	})
	if err != nil {
		return "", err
	}
	code := strings.ToLower(strings.Trim(strings.TrimSpace(content), ".\"'`"))
	if code == "" || strings.ContainsAny(code, " \n") {
		return "", fmt.Errorf("unusable language code %q", content)
	}
	return code, nil
}

func (o *OpenAI) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatQuery{Model: o.Model, Messages: messages, Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("failed to marshal OpenAI query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.Endpoint+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create OpenAI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.Key)

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request to OpenAI: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result chatResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned in OpenAI response")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
