package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"

	"github.com/edgard/supportbot/internal/database"
)

// conversationHandler answers free-form questions from the FAQ and
// escalates the rest to the administrator.
type conversationHandler struct {
	deps HandlerDeps
}

// HandleText is the single entry point for typed and transcribed questions.
// It stores the question, replies with the first matching FAQ answer, or
// acknowledges it and notifies the administrator.
func (h conversationHandler) HandleText(ctx context.Context, m Messenger, chatID, userID int64, username, text string) error {
	log := h.deps.Logger.With("handler", "conversation", "chat_id", chatID, "user_id", userID)
	msgs := h.deps.Config.Messages

	if username == "" {
		username = database.AnonymousUsername
	}

	// An empty transcript never matches; the placeholder keeps stored and
	// forwarded text non-empty.
	normalized := strings.ToLower(text)
	stored, forwarded := normalized, text
	if strings.TrimSpace(normalized) == "" {
		normalized = ""
		stored, forwarded = msgs.UnrecognizedVoice, msgs.UnrecognizedVoice
	}

	record := &database.Message{UserID: userID, Username: username, Text: stored}
	if err := h.deps.Store.SaveMessage(ctx, record); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	if entry, ok := h.deps.FAQ.Match(normalized); ok {
		log.InfoContext(ctx, "Answered from FAQ", "faq_key", entry.Key, "message_id", record.ID)
		if _, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: entry.Answer}); err != nil {
			return fmt.Errorf("failed to send FAQ answer: %w", err)
		}
		return nil
	}

	log.InfoContext(ctx, "No FAQ match, escalating", "message_id", record.ID)
	if _, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: msgs.Acknowledgement}); err != nil {
		return fmt.Errorf("failed to send acknowledgement: %w", err)
	}

	if h.deps.Config.IsAdmin(userID) {
		return nil
	}

	notice := fmt.Sprintf(msgs.AdminNotification, username, forwarded)
	if _, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: h.deps.Config.Telegram.AdminUserID, Text: notice}); err != nil {
		return fmt.Errorf("failed to notify administrator: %w", err)
	}
	return nil
}
