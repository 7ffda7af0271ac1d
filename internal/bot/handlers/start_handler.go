package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")
	if err := h.handle(ctx, b, update); err != nil {
		log.ErrorContext(ctx, "Failed to handle /start", "error", err, "update_id", update.ID)
	}
}

func (h startHandler) handle(ctx context.Context, m Messenger, update *models.Update) error {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return nil
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", update.Message.From.ID)

	welcome := fmt.Sprintf(h.deps.Config.Messages.Welcome, mentionHTML(update.Message.From))
	_, err := m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        welcome,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: &models.ForceReply{ForceReply: true, Selective: true},
	})
	if err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	log.DebugContext(ctx, "Successfully sent welcome message", "chat_id", chatID)
	return nil
}

// mentionHTML links the user's display name to their profile.
func mentionHTML(u *models.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, u.ID, html.EscapeString(name))
}
