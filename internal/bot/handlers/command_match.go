package handlers

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/supportbot/internal/config"
)

// matchCommand matches messages starting with /command or
// /command@<bot username>. Commands addressed to another bot are not matched.
// The bot username is read at match time because it is only known after getMe.
func matchCommand(command string, cfg *config.Config) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		name, target, ok := leadingCommand(update.Message)
		if !ok || name != command {
			return false
		}
		if target == "" {
			return true
		}
		if cfg == nil || cfg.Telegram.BotInfo == nil {
			return false
		}
		return strings.EqualFold(target, cfg.Telegram.BotInfo.Username)
	}
}

// leadingCommand splits the bot_command entity at offset 0 into its name and
// optional @target. Entity offsets count UTF-16 units, but a command at the
// start of the text is ASCII, so byte slicing is safe once bounds are checked.
func leadingCommand(msg *models.Message) (name, target string, ok bool) {
	for _, e := range msg.Entities {
		if e.Type != models.MessageEntityTypeBotCommand || e.Offset != 0 {
			continue
		}
		if e.Length < 2 || e.Length > len(msg.Text) {
			return "", "", false
		}
		name, target, _ = strings.Cut(msg.Text[1:e.Length], "@")
		return name, target, true
	}
	return "", "", false
}
