package config

import (
	"time"

	"github.com/edgard/supportbot/internal/faq"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultTelegramWorkers = 1

	DefaultDBPath = "messages.db"

	DefaultVoiceEngine           = "vosk"
	DefaultVoiceModelPath        = "model"
	DefaultVoiceFFmpegPath       = "ffmpeg"
	DefaultVoiceChunkFrames      = 4000
	DefaultVoiceDownloadTimeout  = 30 * time.Second
	DefaultVoiceTranscodeTimeout = time.Minute
	DefaultVoiceStaleAfter       = time.Hour

	DefaultGeminiModel  = "gemini-2.0-flash"
	DefaultGeminiPrompt = "Transcribe the speech in this audio recording verbatim. Reply with the transcript only, without comments. Reply with an empty message if there is no speech."
)

// DefaultMessages are the user-visible texts of the bot.
var DefaultMessages = MessagesConfig{
	Welcome: "Привет, %s! Я бот поддержки. Напиши свой вопрос — я постараюсь помочь.",
	Help: "/start – Начать диалог\n" +
		"/help – Показать помощь\n" +
		"/messages – Показать последние сообщения\n" +
		"/faq – Часто задаваемые вопросы",
	Acknowledgement:   "Спасибо за обращение! Мы передадим ваш вопрос специалисту.",
	AdminNotification: "❗ Новый вопрос от @%s:\n%s",
	NotAuthorized:     "Нет доступа.",
	NoMessages:        "Сообщений нет.",
	FAQPrompt:         "Выберите вопрос из списка:",
	FAQBackButton:     "🔙 Назад в список",
	FAQNotFound:       "Ошибка: вопрос не найден.",
	UnrecognizedVoice: "[голосовое сообщение не распознано]",
}

// DefaultCommands is the command menu published to Telegram.
var DefaultCommands = []CommandConfig{
	{Command: "start", Description: "Начать диалог"},
	{Command: "help", Description: "Показать помощь"},
	{Command: "messages", Description: "Показать последние сообщения"},
	{Command: "faq", Description: "Часто задаваемые вопросы"},
}

// DefaultTasks are the scheduled maintenance tasks.
var DefaultTasks = map[string]TaskConfig{
	"sql_maintenance": {Enabled: true, Schedule: "0 0 4 * * *"},
	"voice_cleanup":   {Enabled: true, Schedule: "0 */30 * * * *"},
}

// defaults maps every configuration key to its default value. Registering a
// key here also makes it overridable from the environment.
func defaults() map[string]any {
	tasks := make(map[string]any, len(DefaultTasks))
	for name, task := range DefaultTasks {
		tasks[name] = map[string]any{"enabled": task.Enabled, "schedule": task.Schedule}
	}

	commands := make([]map[string]any, 0, len(DefaultCommands))
	for _, c := range DefaultCommands {
		commands = append(commands, map[string]any{"command": c.Command, "description": c.Description})
	}

	entries := faq.DefaultEntries()
	faqList := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		faqList = append(faqList, map[string]any{"key": e.Key, "question": e.Question, "answer": e.Answer})
	}

	return map[string]any{
		"log.level": DefaultLogLevel,
		"log.json":  DefaultLogJSON,

		"telegram.token":    "",
		"telegram.admin_id": 0,
		"telegram.workers":  DefaultTelegramWorkers,
		"telegram.commands": commands,

		"database.path": DefaultDBPath,

		"voice.engine":            DefaultVoiceEngine,
		"voice.model_path":        DefaultVoiceModelPath,
		"voice.ffmpeg_path":       DefaultVoiceFFmpegPath,
		"voice.temp_dir":          "",
		"voice.chunk_frames":      DefaultVoiceChunkFrames,
		"voice.flush_final":       false,
		"voice.download_timeout":  DefaultVoiceDownloadTimeout,
		"voice.transcode_timeout": DefaultVoiceTranscodeTimeout,
		"voice.stale_after":       DefaultVoiceStaleAfter,

		"gemini.api_key": "",
		"gemini.model":   DefaultGeminiModel,
		"gemini.prompt":  DefaultGeminiPrompt,

		"scheduler.tasks": tasks,

		"messages.welcome":            DefaultMessages.Welcome,
		"messages.help":               DefaultMessages.Help,
		"messages.acknowledgement":    DefaultMessages.Acknowledgement,
		"messages.admin_notification": DefaultMessages.AdminNotification,
		"messages.not_authorized":     DefaultMessages.NotAuthorized,
		"messages.no_messages":        DefaultMessages.NoMessages,
		"messages.faq_prompt":         DefaultMessages.FAQPrompt,
		"messages.faq_back_button":    DefaultMessages.FAQBackButton,
		"messages.faq_not_found":      DefaultMessages.FAQNotFound,
		"messages.unrecognized_voice": DefaultMessages.UnrecognizedVoice,

		"faq": faqList,
	}
}
