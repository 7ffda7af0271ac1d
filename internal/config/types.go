// Package config loads, defaults and validates the bot configuration. Values
// come from a YAML file and can be overridden by BOT_-prefixed environment
// variables (for example BOT_TELEGRAM_TOKEN or BOT_TELEGRAM_ADMIN_ID).
package config

import (
	"errors"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/supportbot/internal/faq"
)

// ErrConfiguration wraps every loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config is the root configuration of the support bot.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Voice     VoiceConfig     `mapstructure:"voice"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	FAQ       []faq.Entry     `mapstructure:"faq"       validate:"required,min=1,unique=Key,dive"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot credentials and the administrator identity.
type TelegramConfig struct {
	Token       string          `mapstructure:"token"    validate:"required"`
	AdminUserID int64           `mapstructure:"admin_id" validate:"required,gt=0"`
	Workers     int             `mapstructure:"workers"  validate:"min=1,max=64"`
	Commands    []CommandConfig `mapstructure:"commands" validate:"dive"`

	// BotInfo is filled at startup from getMe.
	BotInfo *models.User `mapstructure:"-"`
}

// CommandConfig is one entry of the bot command menu.
type CommandConfig struct {
	Command     string `mapstructure:"command"     validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
}

// DatabaseConfig locates the SQLite message store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// VoiceConfig configures voice message transcription.
type VoiceConfig struct {
	Engine           string        `mapstructure:"engine"            validate:"oneof=vosk gemini"`
	ModelPath        string        `mapstructure:"model_path"`
	FFmpegPath       string        `mapstructure:"ffmpeg_path"       validate:"required"`
	TempDir          string        `mapstructure:"temp_dir"`
	ChunkFrames      int           `mapstructure:"chunk_frames"      validate:"min=1"`
	FlushFinal       bool          `mapstructure:"flush_final"`
	DownloadTimeout  time.Duration `mapstructure:"download_timeout"  validate:"min=1s"`
	TranscodeTimeout time.Duration `mapstructure:"transcode_timeout" validate:"min=1s"`
	StaleAfter       time.Duration `mapstructure:"stale_after"       validate:"min=1m"`
}

// GeminiConfig configures the Gemini transcription engine.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	Prompt string `mapstructure:"prompt"`
}

// SchedulerConfig lists scheduled maintenance tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds every user-visible text. Welcome takes the HTML
// mention of the user; AdminNotification takes the handle and the question.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"            validate:"required"`
	Help              string `mapstructure:"help"               validate:"required"`
	Acknowledgement   string `mapstructure:"acknowledgement"    validate:"required"`
	AdminNotification string `mapstructure:"admin_notification" validate:"required"`
	NotAuthorized     string `mapstructure:"not_authorized"     validate:"required"`
	NoMessages        string `mapstructure:"no_messages"        validate:"required"`
	FAQPrompt         string `mapstructure:"faq_prompt"         validate:"required"`
	FAQBackButton     string `mapstructure:"faq_back_button"    validate:"required"`
	FAQNotFound       string `mapstructure:"faq_not_found"      validate:"required"`
	UnrecognizedVoice string `mapstructure:"unrecognized_voice" validate:"required"`
}

// IsAdmin reports whether userID is the configured administrator.
func (c *Config) IsAdmin(userID int64) bool {
	return userID != 0 && userID == c.Telegram.AdminUserID
}
