// Package webhook receives Telegram updates over HTTP.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SecretHeader carries the secret token configured with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

const maxBody = 1 << 20

// UpdateHandler processes one decoded update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Handler serves the webhook endpoint.
type Handler struct {
	updates UpdateHandler
	secret  string
	logger  *zap.Logger
}

// New returns a Handler. An empty secret accepts every request.
func New(updates UpdateHandler, secret string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{updates: updates, secret: secret, logger: logger}
}

// NewMux routes the webhook at "/" and a liveness probe at "/healthz".
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		h.logger.Warn("cannot read webhook body", zap.Error(err))
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	// a unit of work runs to completion even if Telegram hangs up
	status := h.Process(context.WithoutCancel(r.Context()), r.Header.Get(SecretHeader), body)
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Process handles one raw update and returns the HTTP status to answer with.
// Failures after decoding still answer 200: the user has already been
// notified and a retried delivery would translate the message twice.
func (h *Handler) Process(ctx context.Context, secret string, body []byte) int {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		h.logger.Warn("rejected webhook call with bad secret token")
		return http.StatusUnauthorized
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		h.logger.Warn("cannot parse update", zap.Error(err))
		return http.StatusBadRequest
	}

	if err := h.updates.HandleUpdate(ctx, update); err != nil {
		h.logger.Info("update handled with error", zap.Int("update_id", update.UpdateID), zap.Error(err))
	}
	return http.StatusOK
}
