// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that checks if the message sender is the configured admin user.
// If not, it sends a "Not Authorized" message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if authorize(ctx, deps, bot, update) {
				next(ctx, bot, update)
			}
		}
	}
}

// authorize reports whether the update may proceed, replying with the
// not-authorized text when it may not.
func authorize(ctx context.Context, deps HandlerDeps, m Messenger, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}
	if deps.Config.IsAdmin(userID) {
		return true
	}

	chatID := update.Message.Chat.ID
	log := deps.Logger.With("middleware", "AdminOnly")
	log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

	_, err := m.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   deps.Config.Messages.NotAuthorized,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
	}
	return false
}
