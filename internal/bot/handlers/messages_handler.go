package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// recentMessagesLimit is how many records /messages shows.
const recentMessagesLimit = 5

// NewMessagesHandler returns a handler for the admin-only /messages command.
func NewMessagesHandler(deps HandlerDeps) bot.HandlerFunc {
	return messagesHandler{deps}.Handle
}

type messagesHandler struct {
	deps HandlerDeps
}

func (h messagesHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if err := h.handle(ctx, b, update); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to handle /messages", "handler", "messages", "error", err, "update_id", update.ID)
	}
}

func (h messagesHandler) handle(ctx context.Context, m Messenger, update *models.Update) error {
	log := h.deps.Logger.With("handler", "messages")

	if update.Message == nil {
		log.WarnContext(ctx, "Messages handler received update with nil message", "update_id", update.ID)
		return nil
	}
	chatID := update.Message.Chat.ID

	messages, err := h.deps.Store.GetRecentMessages(ctx, recentMessagesLimit)
	if err != nil {
		return fmt.Errorf("failed to load recent messages: %w", err)
	}
	log.InfoContext(ctx, "Listing recent messages", "chat_id", chatID, "count", len(messages))

	text := h.deps.Config.Messages.NoMessages
	if len(messages) > 0 {
		lines := make([]string, 0, len(messages))
		for _, msg := range messages {
			lines = append(lines, fmt.Sprintf("@%s: %s", msg.Username, msg.Text))
		}
		text = strings.Join(lines, "\n\n")
	}

	if _, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("failed to send recent messages: %w", err)
	}
	return nil
}
