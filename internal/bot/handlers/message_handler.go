package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMessageHandler returns the default handler. It routes plain text and
// voice messages to the conversation handler and ignores everything else,
// including commands no other handler claimed.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps: deps, conversation: conversationHandler{deps}}.Handle
}

type messageHandler struct {
	deps         HandlerDeps
	conversation conversationHandler
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if err := h.handle(ctx, b, update); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to handle message", "handler", "message", "error", err, "update_id", update.ID)
	}
}

func (h messageHandler) handle(ctx context.Context, m Messenger, update *models.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}

	switch {
	case msg.Voice != nil:
		return h.handleVoice(ctx, m, msg)
	case msg.Text != "" && !startsWithCommand(msg):
		return h.conversation.HandleText(ctx, m, msg.Chat.ID, msg.From.ID, msg.From.Username, msg.Text)
	default:
		h.deps.Logger.DebugContext(ctx, "Ignoring unsupported message", "handler", "message", "update_id", update.ID)
		return nil
	}
}

func (h messageHandler) handleVoice(ctx context.Context, m Messenger, msg *models.Message) error {
	log := h.deps.Logger.With("handler", "voice", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	if h.deps.Transcriber == nil {
		log.WarnContext(ctx, "Voice message received but transcription is not configured")
		return nil
	}

	text, err := h.deps.Transcriber.Transcribe(ctx, m, msg.Voice.FileID)
	if err != nil {
		return fmt.Errorf("failed to transcribe voice message: %w", err)
	}
	log.InfoContext(ctx, "Voice message transcribed", "recognized", text != "")

	return h.conversation.HandleText(ctx, m, msg.Chat.ID, msg.From.ID, msg.From.Username, text)
}

func startsWithCommand(msg *models.Message) bool {
	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeBotCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}
