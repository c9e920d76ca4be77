// Package telegram connects the relay to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sachnun/translator-bot/internal/types"
)

// Config holds the bot transport settings.
type Config struct {
	Token         string        `mapstructure:"token"`
	APIEndpoint   string        `mapstructure:"api_endpoint"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	RateBurst     int           `mapstructure:"rate_burst"`
	WebhookURL    string        `mapstructure:"webhook_url"`
	PollTimeout   int           `mapstructure:"poll_timeout"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
}

// API is the part of *tgbotapi.BotAPI the client uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client sends payloads with a shared outbound rate limit.
type Client struct {
	api     API
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewBot authenticates against the Bot API.
func NewBot(cfg Config) (*tgbotapi.BotAPI, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is not set")
	}
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 70 * time.Second
	}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return bot, nil
}

// NewClient wraps api. A non-positive rate disables throttling.
func NewClient(api API, cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{api: api, limiter: rate.NewLimiter(limit, burst), logger: logger}
}

// Send delivers p to chatID, replying to replyTo when it is non-zero.
// Notifications and link previews are always disabled.
func (c *Client) Send(ctx context.Context, chatID int64, p types.Payload, replyTo int) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, p.Text)
	msg.ParseMode = p.ParseMode
	msg.DisableNotification = true
	msg.DisableWebPagePreview = true
	msg.ReplyToMessageID = replyTo

	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("sending telegram message: %w", err)
	}
	c.logger.Debug("message sent",
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", sent.MessageID),
		zap.Int("reply_to", replyTo))
	return sent.MessageID, nil
}

// RegisterWebhook points Telegram at url.
func RegisterWebhook(bot *tgbotapi.BotAPI, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := bot.Request(wh); err != nil {
		return fmt.Errorf("setting webhook: %w", err)
	}
	return nil
}

// Poll receives updates by long polling until ctx is done. Each update is
// handled in its own goroutine; units already started are not canceled and
// Poll waits for them before returning.
func Poll(ctx context.Context, bot *tgbotapi.BotAPI, timeout int, handle func(context.Context, tgbotapi.Update)) error {
	// getUpdates is refused while a webhook is active
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("removing webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	if u.Timeout <= 0 {
		u.Timeout = 60
	}
	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	var wg sync.WaitGroup
	defer wg.Wait()
	unitCtx := context.WithoutCancel(ctx)
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				handle(unitCtx, update)
			}()
		case <-ctx.Done():
			return nil
		}
	}
}
