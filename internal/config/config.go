// Package config loads the bot configuration from defaults, an optional
// config file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sachnun/translator-bot/internal/chunker"
	"github.com/sachnun/translator-bot/internal/delivery"
	"github.com/sachnun/translator-bot/internal/direction"
	"github.com/sachnun/translator-bot/internal/logging"
	"github.com/sachnun/translator-bot/internal/relay"
	"github.com/sachnun/translator-bot/internal/replychain"
	"github.com/sachnun/translator-bot/internal/telegram"
)

// Known translation provider names.
const (
	ProviderGoogle         = "google"
	ProviderLibreTranslate = "libretranslate"
	ProviderOpenAI         = "openai"
)

type Config struct {
	Telegram       telegram.Config  `mapstructure:"telegram"`
	Server         ServerConfig     `mapstructure:"server"`
	Relay          relay.Config     `mapstructure:"relay"`
	Direction      direction.Config `mapstructure:"direction"`
	Translate      TranslateConfig  `mapstructure:"translate"`
	Google         GoogleConfig     `mapstructure:"google"`
	LibreTranslate LibreConfig      `mapstructure:"libretranslate"`
	OpenAI         OpenAIConfig     `mapstructure:"openai"`
	Catalog        CatalogConfig    `mapstructure:"catalog"`
	S3             delivery.Config  `mapstructure:"s3"`
	KeyVault       KeyVaultConfig   `mapstructure:"keyvault"`
	Log            logging.Config   `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	WebhookSecret   string        `mapstructure:"webhook_secret"`
}

type TranslateConfig struct {
	// Providers are tried in order.
	Providers []string      `mapstructure:"providers"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type GoogleConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type LibreConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

type OpenAIConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Key      string `mapstructure:"key"`
	Model    string `mapstructure:"model"`
}

type CatalogConfig struct {
	File string `mapstructure:"file"`
}

type KeyVaultConfig struct {
	Name string `mapstructure:"name"`
}

// envAliases binds keys to the variable names used by existing deployments.
// The first name wins when several are set.
var envAliases = map[string][]string{
	"telegram.token":  {"TELEGRAM_TOKEN", "BOT_TOKEN"},
	"openai.key":      {"OPENAI_KEY", "OPENAI_API_KEY"},
	"openai.endpoint": {"OPENAI_ENDPOINT"},
	"s3.bucket":       {"S3_BUCKET", "BUCKET_NAME"},
	"s3.region":       {"S3_REGION", "AWS_REGION"},
	"s3.endpoint":     {"S3_ENDPOINT", "AWS_ENDPOINT_URL_S3"},
	"keyvault.name":   {"KEYVAULT_NAME", "KEY_VAULT_NAME"},
}

// SetDefaults registers every key so environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.api_endpoint", "")
	v.SetDefault("telegram.rate_per_second", 25.0)
	v.SetDefault("telegram.rate_burst", 5)
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.http_timeout", 70*time.Second)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.webhook_secret", "")

	v.SetDefault("relay.chunk_size", chunker.DefaultChunkSize)
	v.SetDefault("relay.failure_notice", replychain.DefaultFailureNotice)

	def := direction.DefaultConfig()
	v.SetDefault("direction.pivot", def.Pivot)
	v.SetDefault("direction.secondary", def.Secondary)
	v.SetDefault("direction.pivot_group", def.PivotGroup)
	v.SetDefault("direction.reject_noop_override", false)

	v.SetDefault("translate.providers", []string{ProviderGoogle})
	v.SetDefault("translate.timeout", 15*time.Second)
	v.SetDefault("google.endpoint", "")
	v.SetDefault("libretranslate.endpoint", "")
	v.SetDefault("libretranslate.api_key", "")
	v.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	v.SetDefault("openai.key", "")
	v.SetDefault("openai.model", "")

	v.SetDefault("catalog.file", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "logs")
	v.SetDefault("keyvault.name", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are not an error; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration into a Config. configFile may be empty.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize trims list entries, which may come from comma separated env values.
func normalize(cfg *Config) {
	cfg.Translate.Providers = trimAll(cfg.Translate.Providers)
	cfg.Direction.PivotGroup = trimAll(cfg.Direction.PivotGroup)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if len(c.Translate.Providers) == 0 {
		errs = append(errs, errors.New("translate.providers must name at least one provider"))
	}
	for _, p := range c.Translate.Providers {
		switch p {
		case ProviderGoogle, ProviderOpenAI:
		case ProviderLibreTranslate:
			if c.LibreTranslate.Endpoint == "" {
				errs = append(errs, errors.New("libretranslate.endpoint is required for the libretranslate provider"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown translation provider %q", p))
		}
	}
	if c.Relay.ChunkSize <= 0 || c.Relay.ChunkSize > chunker.MessageLimit {
		errs = append(errs, fmt.Errorf("relay.chunk_size must be between 1 and %d", chunker.MessageLimit))
	}
	if strings.TrimSpace(c.Direction.Pivot) == "" || strings.TrimSpace(c.Direction.Secondary) == "" {
		errs = append(errs, errors.New("direction.pivot and direction.secondary must be set"))
	}
	return errors.Join(errs...)
}
