package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Relay.ChunkSize != 2048 || cfg.Relay.FailureNotice != "Sorry, translation failed." {
		t.Errorf("relay = %+v", cfg.Relay)
	}
	if cfg.Direction.Pivot != "id" || cfg.Direction.Secondary != "en" || !reflect.DeepEqual(cfg.Direction.PivotGroup, []string{"id", "ms"}) {
		t.Errorf("direction = %+v", cfg.Direction)
	}
	if cfg.Direction.RejectNoOpOverride {
		t.Error("reject_noop_override must default to false")
	}
	if !reflect.DeepEqual(cfg.Translate.Providers, []string{"google"}) || cfg.Translate.Timeout != 15*time.Second {
		t.Errorf("translate = %+v", cfg.Translate)
	}
	if cfg.S3.Prefix != "logs" || cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("s3/log = %+v %+v", cfg.S3, cfg.Log)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("TRANSLATE_PROVIDERS", "libretranslate, google")
	t.Setenv("LIBRETRANSLATE_ENDPOINT", "http://libre:5000")
	t.Setenv("DIRECTION_REJECT_NOOP_OVERRIDE", "true")
	t.Setenv("RELAY_CHUNK_SIZE", "1000")
	t.Setenv("BUCKET_NAME", "bot-logs")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if !reflect.DeepEqual(cfg.Translate.Providers, []string{"libretranslate", "google"}) {
		t.Errorf("providers = %q", cfg.Translate.Providers)
	}
	if !cfg.Direction.RejectNoOpOverride || cfg.Relay.ChunkSize != 1000 {
		t.Errorf("direction/relay = %+v %+v", cfg.Direction, cfg.Relay)
	}
	if cfg.S3.Bucket != "bot-logs" || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("s3/server = %+v %+v", cfg.S3, cfg.Server)
	}
}

func TestLoadTokenPrecedence(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "primary")
	t.Setenv("BOT_TOKEN", "secondary")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.Token != "primary" {
		t.Fatalf("token = %q, want primary", cfg.Telegram.Token)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	data := `
direction:
  pivot: es
  secondary: en
  pivot_group: [es, pt]
translate:
  providers: [openai, google]
openai:
  model: gpt-4o
log:
  format: console
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Direction.Pivot != "es" || !reflect.DeepEqual(cfg.Direction.PivotGroup, []string{"es", "pt"}) {
		t.Errorf("direction = %+v", cfg.Direction)
	}
	if !reflect.DeepEqual(cfg.Translate.Providers, []string{"openai", "google"}) || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("translate/openai = %+v %+v", cfg.Translate, cfg.OpenAI)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"TRANSLATE_PROVIDERS": "babelfish"}},
		{name: "libre without endpoint", env: map[string]string{"TRANSLATE_PROVIDERS": "libretranslate"}},
		{name: "chunk too large", env: map[string]string{"RELAY_CHUNK_SIZE": "5000"}},
		{name: "chunk zero", env: map[string]string{"RELAY_CHUNK_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(viper.New(), ""); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TRANSLATOR_TEST_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TRANSLATOR_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("TRANSLATOR_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("env = %q", got)
	}
}
