package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/supportbot/internal/config"
	"github.com/edgard/supportbot/internal/database"
	"github.com/edgard/supportbot/internal/faq"
	"github.com/edgard/supportbot/internal/voice"
)

const (
	testAdminID = int64(1000)
	testUserID  = int64(42)
	testChatID  = int64(4242)
)

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []*bot.SendMessageParams
	edited   []*bot.EditMessageTextParams
	answered []string
	sendErr  error
}

func (f *fakeMessenger) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, params)
	return &models.Message{ID: len(f.sent)}, nil
}

func (f *fakeMessenger) EditMessageText(_ context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, params)
	return &models.Message{}, nil
}

func (f *fakeMessenger) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, params.CallbackQueryID)
	return true, nil
}

func (f *fakeMessenger) GetFile(_ context.Context, params *bot.GetFileParams) (*models.File, error) {
	return &models.File{FileID: params.FileID, FilePath: "voice.oga"}, nil
}

func (f *fakeMessenger) FileDownloadLink(file *models.File) string {
	return "http://localhost/" + file.FilePath
}

// sentTo returns the texts sent to chatID in order.
func (f *fakeMessenger) sentTo(chatID int64) []string {
	var out []string
	for _, p := range f.sent {
		if p.ChatID == chatID {
			out = append(out, p.Text)
		}
	}
	return out
}

type fakeStore struct {
	mu        sync.Mutex
	messages  []*database.Message
	saveErr   error
	readCalls int
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) SaveMessage(_ context.Context, m *database.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	m.ID = int64(len(s.messages) + 1)
	cp := *m
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *fakeStore) GetRecentMessages(_ context.Context, limit int) ([]*database.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readCalls++
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	out := []*database.Message{}
	for i := len(s.messages) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.messages[i])
	}
	return out, nil
}

func (s *fakeStore) RunSQLMaintenance(context.Context) error { return nil }

func (s *fakeStore) Size(context.Context) (int64, error) { return 0, nil }

type fakeTranscriber struct {
	text   string
	err    error
	fileID string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ voice.FileSource, fileID string) (string, error) {
	f.fileID = fileID
	return f.text, f.err
}

func testDeps(t *testing.T) (HandlerDeps, *fakeStore) {
	t.Helper()
	table, err := faq.NewTable(faq.DefaultEntries())
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	cfg := &config.Config{
		Telegram: config.TelegramConfig{AdminUserID: testAdminID},
		Messages: config.DefaultMessages,
	}
	store := &fakeStore{}
	return HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Store:  store,
		FAQ:    table,
	}, store
}

func textUpdate(userID int64, username, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: testChatID},
			From: &models.User{ID: userID, Username: username, FirstName: "Анна"},
			Text: text,
		},
	}
}

func commandUpdate(userID int64, command string) *models.Update {
	u := textUpdate(userID, "user", command)
	u.Message.Entities = []models.MessageEntity{{Type: models.MessageEntityTypeBotCommand, Offset: 0, Length: len(command)}}
	return u
}
