package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
  admin_id: 1234567
database:
  path: /tmp/support.db
voice:
  download_timeout: 10s
scheduler:
  tasks:
    sql_maintenance:
      enabled: false
messages:
  acknowledgement: "Thanks!"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.AdminUserID != 1234567 {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Database.Path != "/tmp/support.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Voice.DownloadTimeout != 10*time.Second {
		t.Errorf("voice.download_timeout = %v", cfg.Voice.DownloadTimeout)
	}
	if cfg.Messages.Acknowledgement != "Thanks!" {
		t.Errorf("messages.acknowledgement = %q", cfg.Messages.Acknowledgement)
	}
	if cfg.Messages.NotAuthorized != DefaultMessages.NotAuthorized {
		t.Errorf("messages.not_authorized = %q, want default", cfg.Messages.NotAuthorized)
	}

	sql := cfg.Scheduler.Tasks["sql_maintenance"]
	if sql.Enabled || sql.Schedule != DefaultTasks["sql_maintenance"].Schedule {
		t.Errorf("sql_maintenance = %+v, want disabled with default schedule", sql)
	}
	if !cfg.Scheduler.Tasks["voice_cleanup"].Enabled {
		t.Error("voice_cleanup should keep its default")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "t"
  admin_id: 1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Logger.Level != DefaultLogLevel {
		t.Errorf("log.level = %q", cfg.Logger.Level)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Voice.Engine != DefaultVoiceEngine || cfg.Voice.ChunkFrames != DefaultVoiceChunkFrames {
		t.Errorf("voice = %+v", cfg.Voice)
	}
	if len(cfg.FAQ) != 6 || cfg.FAQ[0].Key != "faq1" {
		t.Errorf("faq = %+v", cfg.FAQ)
	}
	if len(cfg.Telegram.Commands) != len(DefaultCommands) {
		t.Errorf("commands = %+v", cfg.Telegram.Commands)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "env-token")
	t.Setenv("BOT_TELEGRAM_ADMIN_ID", "42")
	t.Setenv("BOT_VOICE_STALE_AFTER", "2h")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Telegram.Token != "env-token" || cfg.Telegram.AdminUserID != 42 {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Voice.StaleAfter != 2*time.Hour {
		t.Errorf("voice.stale_after = %v", cfg.Voice.StaleAfter)
	}
	if !cfg.IsAdmin(42) || cfg.IsAdmin(43) || cfg.IsAdmin(0) {
		t.Error("IsAdmin mismatch")
	}
}

func TestLoadConfigCustomFAQ(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "t"
  admin_id: 1
faq:
  - key: shipping
    question: "Сроки Доставки"
    answer: "3-5 дней"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.FAQ) != 1 || cfg.FAQ[0].Key != "shipping" || cfg.FAQ[0].Answer != "3-5 дней" {
		t.Fatalf("faq = %+v", cfg.FAQ)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing token", body: "telegram:\n  admin_id: 1\n"},
		{name: "missing admin", body: "telegram:\n  token: t\n"},
		{name: "negative admin", body: "telegram:\n  token: t\n  admin_id: -5\n"},
		{name: "bad log level", body: "telegram:\n  token: t\n  admin_id: 1\nlog:\n  level: verbose\n"},
		{name: "unknown engine", body: "telegram:\n  token: t\n  admin_id: 1\nvoice:\n  engine: whisper\n"},
		{name: "gemini without key", body: "telegram:\n  token: t\n  admin_id: 1\nvoice:\n  engine: gemini\n"},
		{name: "zero chunk", body: "telegram:\n  token: t\n  admin_id: 1\nvoice:\n  chunk_frames: 0\n"},
		{
			name: "duplicate faq keys",
			body: "telegram:\n  token: t\n  admin_id: 1\nfaq:\n  - {key: a, question: q, answer: x}\n  - {key: a, question: r, answer: y}\n",
		},
		{
			name: "reserved faq key",
			body: "telegram:\n  token: t\n  admin_id: 1\nfaq:\n  - {key: back_to_faq, question: q, answer: x}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoadConfigGeminiEngine(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: t
  admin_id: 1
voice:
  engine: gemini
gemini:
  api_key: key
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.Model != DefaultGeminiModel {
		t.Errorf("gemini.model = %q", cfg.Gemini.Model)
	}
}
