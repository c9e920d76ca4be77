// Package app wires the bot together from a config.Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sachnun/translator-bot/internal/catalog"
	"github.com/sachnun/translator-bot/internal/config"
	"github.com/sachnun/translator-bot/internal/delivery"
	"github.com/sachnun/translator-bot/internal/direction"
	"github.com/sachnun/translator-bot/internal/provider"
	"github.com/sachnun/translator-bot/internal/relay"
	"github.com/sachnun/translator-bot/internal/replychain"
	"github.com/sachnun/translator-bot/internal/secrets"
	"github.com/sachnun/translator-bot/internal/telegram"
	"github.com/sachnun/translator-bot/internal/webhook"
)

// App holds the running collaborators.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Catalog *catalog.Catalog
	Bot     *tgbotapi.BotAPI
	Client  *telegram.Client
	Relay   *relay.Relay
	Handler *telegram.Handler
	Webhook *webhook.Handler
}

// New resolves secrets, connects to Telegram and builds the App.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := secrets.NewStore(cfg.KeyVault.Name)
	if err != nil {
		return nil, err
	}
	if err := resolveSecrets(ctx, store, &cfg); err != nil {
		return nil, err
	}

	bot, err := telegram.NewBot(cfg.Telegram)
	if err != nil {
		return nil, err
	}
	logger.Info("telegram bot connected", zap.String("username", bot.Self.UserName), zap.Int64("bot_id", bot.Self.ID))

	var reporter relay.Reporter
	if cfg.S3.Bucket != "" {
		client, err := delivery.NewS3Client(cfg.S3)
		if err != nil {
			return nil, err
		}
		reporter = delivery.NewS3Reporter(client, cfg.S3.Bucket, cfg.S3.Prefix)
	}

	a, err := Assemble(cfg, logger, bot, bot.Self.ID, reporter)
	if err != nil {
		return nil, err
	}
	a.Bot = bot
	return a, nil
}

// Assemble builds the App around an already connected bot API.
// reporter may be nil.
func Assemble(cfg config.Config, logger *zap.Logger, api telegram.API, selfID int64, reporter relay.Reporter) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}

	translators, err := buildProviders(cfg, cat)
	if err != nil {
		return nil, err
	}
	chain := provider.NewChain(logger.Named("provider"), translators...)
	logger.Info("translation providers configured", zap.String("chain", chain.Name()))

	client := telegram.NewClient(api, cfg.Telegram, logger.Named("telegram"))
	rel := relay.New(cfg.Relay, relay.Deps{
		Resolver:   direction.NewResolver(cfg.Direction, cat),
		Translator: chain,
		Detector:   chain,
		Formatter:  replychain.NewFormatter(cat),
		Sender:     client,
		Reporter:   reporter,
		Logger:     logger.Named("relay"),
	})
	handler := telegram.NewHandler(rel, client, selfID, cat.DisplayName(cfg.Direction.Pivot), logger.Named("telegram"))

	return &App{
		Config:  cfg,
		Logger:  logger,
		Catalog: cat,
		Client:  client,
		Relay:   rel,
		Handler: handler,
		Webhook: webhook.New(handler, cfg.Server.WebhookSecret, logger.Named("webhook")),
	}, nil
}

func buildProviders(cfg config.Config, cat *catalog.Catalog) ([]provider.Translator, error) {
	out := make([]provider.Translator, 0, len(cfg.Translate.Providers))
	for _, name := range cfg.Translate.Providers {
		switch name {
		case config.ProviderGoogle:
			out = append(out, provider.NewGoogle(cfg.Google.Endpoint, cfg.Translate.Timeout))
		case config.ProviderLibreTranslate:
			out = append(out, provider.NewLibreTranslate(cfg.LibreTranslate.Endpoint, cfg.LibreTranslate.APIKey, cfg.Translate.Timeout))
		case config.ProviderOpenAI:
			out = append(out, provider.NewOpenAI(cfg.OpenAI.Key, cfg.OpenAI.Endpoint, cfg.OpenAI.Model, cfg.Translate.Timeout, cat))
		default:
			return nil, fmt.Errorf("unknown translation provider %q", name)
		}
	}
	return out, nil
}

// resolveSecrets fills credentials missing from the config from the
// environment or Key Vault.
func resolveSecrets(ctx context.Context, store *secrets.Store, cfg *config.Config) error {
	if err := store.Fill(ctx, &cfg.Telegram.Token, "TELEGRAM_TOKEN"); err != nil {
		return err
	}
	for _, p := range cfg.Translate.Providers {
		switch p {
		case config.ProviderOpenAI:
			if err := store.Fill(ctx, &cfg.OpenAI.Key, "OPENAI_KEY"); err != nil {
				return err
			}
		case config.ProviderLibreTranslate:
			// the key is optional for self-hosted servers
			if err := store.FillOptional(ctx, &cfg.LibreTranslate.APIKey, "LIBRETRANSLATE_API_KEY"); err != nil {
				return err
			}
		}
	}
	return nil
}

// HandleUpdate passes one update to the handler.
func (a *App) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if err := a.Handler.HandleUpdate(ctx, update); err != nil {
		a.Logger.Debug("update finished with error", zap.Int("update_id", update.UpdateID), zap.Error(err))
	}
}

// Serve runs the webhook server until ctx is done, then shuts it down.
func (a *App) Serve(ctx context.Context) error {
	if a.Bot != nil && a.Config.Telegram.WebhookURL != "" {
		if err := telegram.RegisterWebhook(a.Bot, a.Config.Telegram.WebhookURL); err != nil {
			return err
		}
		a.Logger.Info("webhook registered", zap.String("url", a.Config.Telegram.WebhookURL))
	}

	srv := &http.Server{
		Addr:              a.Config.Server.Addr,
		Handler:           webhook.NewMux(a.Webhook),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	a.Logger.Info("server started", zap.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")
	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.Logger.Info("server exiting")
	return nil
}

// Poll receives updates by long polling until ctx is done.
func (a *App) Poll(ctx context.Context) error {
	if a.Bot == nil {
		return errors.New("polling needs a connected bot")
	}
	a.Logger.Info("polling for updates")
	return telegram.Poll(ctx, a.Bot, a.Config.Telegram.PollTimeout, a.HandleUpdate)
}
