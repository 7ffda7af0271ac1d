package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/supportbot/internal/faq"
)

// NewFAQHandler returns a handler for the /faq command.
func NewFAQHandler(deps HandlerDeps) bot.HandlerFunc {
	return faqHandler{deps}.Handle
}

// NewFAQCallbackHandler returns a handler for presses on the FAQ menu buttons.
func NewFAQCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return faqHandler{deps}.HandleCallback
}

type faqHandler struct {
	deps HandlerDeps
}

func (h faqHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if err := h.handle(ctx, b, update); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to handle /faq", "handler", "faq", "error", err, "update_id", update.ID)
	}
}

func (h faqHandler) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if err := h.handleCallback(ctx, b, update); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to handle FAQ callback", "handler", "faq_callback", "error", err, "update_id", update.ID)
	}
}

func (h faqHandler) handle(ctx context.Context, m Messenger, update *models.Update) error {
	if update.Message == nil {
		return nil
	}

	_, err := m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.deps.Config.Messages.FAQPrompt,
		ReplyMarkup: h.listMarkup(),
	})
	if err != nil {
		return fmt.Errorf("failed to send FAQ list: %w", err)
	}
	return nil
}

func (h faqHandler) handleCallback(ctx context.Context, m Messenger, update *models.Update) error {
	cq := update.CallbackQuery
	if cq == nil {
		return nil
	}
	log := h.deps.Logger.With("handler", "faq_callback", "user_id", cq.From.ID, "data", cq.Data)

	if _, err := m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}

	params := editTarget(cq)
	if params == nil {
		log.WarnContext(ctx, "Callback query without a message to edit")
		return nil
	}

	switch entry, ok := h.deps.FAQ.Lookup(cq.Data); {
	case cq.Data == faq.BackToListKey:
		params.Text = h.deps.Config.Messages.FAQPrompt
		params.ReplyMarkup = h.listMarkup()
	case ok:
		params.Text = fmt.Sprintf("🧾 <b>%s</b>\n\n%s",
			html.EscapeString(faq.Capitalize(entry.Question)), html.EscapeString(entry.Answer))
		params.ParseMode = models.ParseModeHTML
		params.ReplyMarkup = h.backMarkup()
	default:
		log.InfoContext(ctx, "Unknown FAQ key requested")
		params.Text = h.deps.Config.Messages.FAQNotFound
	}

	if _, err := m.EditMessageText(ctx, params); err != nil {
		return fmt.Errorf("failed to edit FAQ message: %w", err)
	}
	return nil
}

// listMarkup renders one button per entry in declaration order.
func (h faqHandler) listMarkup() *models.InlineKeyboardMarkup {
	entries := h.deps.FAQ.Entries()
	rows := make([][]models.InlineKeyboardButton, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: faq.Capitalize(e.Question), CallbackData: e.Key},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (h faqHandler) backMarkup() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: h.deps.Config.Messages.FAQBackButton, CallbackData: faq.BackToListKey}},
	}}
}

// editTarget addresses the message that carried the pressed button, or
// returns nil when Telegram did not include one.
func editTarget(cq *models.CallbackQuery) *bot.EditMessageTextParams {
	switch {
	case cq.Message.Message != nil:
		return &bot.EditMessageTextParams{ChatID: cq.Message.Message.Chat.ID, MessageID: cq.Message.Message.ID}
	case cq.Message.InaccessibleMessage != nil:
		return &bot.EditMessageTextParams{ChatID: cq.Message.InaccessibleMessage.Chat.ID, MessageID: cq.Message.InaccessibleMessage.MessageID}
	case cq.InlineMessageID != "":
		return &bot.EditMessageTextParams{InlineMessageID: cq.InlineMessageID}
	default:
		return nil
	}
}
