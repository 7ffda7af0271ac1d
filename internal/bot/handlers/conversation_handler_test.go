package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/edgard/supportbot/internal/database"
	"github.com/edgard/supportbot/internal/faq"
)

func TestHandleTextAnswersFromFAQ(t *testing.T) {
	deps, store := testDeps(t)
	m := &fakeMessenger{}

	err := conversationHandler{deps}.HandleText(context.Background(), m, testChatID, testUserID, "buyer", "Как оформить заказ?")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	want := faq.DefaultEntries()[0].Answer
	if got := m.sentTo(testChatID); len(got) != 1 || got[0] != want {
		t.Fatalf("replies = %q, want [%q]", got, want)
	}
	if len(m.sentTo(testAdminID)) != 0 {
		t.Fatal("administrator must not be notified on a match")
	}
	if len(store.messages) != 1 {
		t.Fatalf("stored %d messages, want 1", len(store.messages))
	}
	rec := store.messages[0]
	if rec.UserID != testUserID || rec.Username != "buyer" || rec.Text != "как оформить заказ?" {
		t.Fatalf("stored = %+v", rec)
	}
}

func TestHandleTextEscalatesUnmatched(t *testing.T) {
	deps, store := testDeps(t)
	m := &fakeMessenger{}

	err := conversationHandler{deps}.HandleText(context.Background(), m, testChatID, testUserID, "buyer", "Где мой пакет")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	if got := m.sentTo(testChatID); len(got) != 1 || got[0] != deps.Config.Messages.Acknowledgement {
		t.Fatalf("replies = %q", got)
	}
	notices := m.sentTo(testAdminID)
	if len(notices) != 1 {
		t.Fatalf("admin notices = %d, want exactly 1", len(notices))
	}
	if notices[0] != "❗ Новый вопрос от @buyer:\nГде мой пакет" {
		t.Fatalf("notice = %q", notices[0])
	}
	if len(store.messages) != 1 || store.messages[0].Text != "где мой пакет" {
		t.Fatalf("stored = %+v", store.messages)
	}
}

func TestHandleTextAdminIsNotNotifiedAboutThemselves(t *testing.T) {
	deps, _ := testDeps(t)
	m := &fakeMessenger{}

	if err := (conversationHandler{deps}).HandleText(context.Background(), m, testAdminID, testAdminID, "boss", "где мой пакет"); err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if len(m.sent) != 1 || m.sent[0].Text != deps.Config.Messages.Acknowledgement {
		t.Fatalf("sent = %d messages, want only the acknowledgement", len(m.sent))
	}
}

func TestHandleTextAnonymousSender(t *testing.T) {
	deps, store := testDeps(t)
	m := &fakeMessenger{}

	if err := (conversationHandler{deps}).HandleText(context.Background(), m, testChatID, testUserID, "", "вопрос"); err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if store.messages[0].Username != database.AnonymousUsername {
		t.Fatalf("username = %q", store.messages[0].Username)
	}
	if notices := m.sentTo(testAdminID); len(notices) != 1 || !strings.Contains(notices[0], "@anonymous") {
		t.Fatalf("notices = %q", notices)
	}
}

func TestHandleTextEmptyTranscript(t *testing.T) {
	deps, store := testDeps(t)
	m := &fakeMessenger{}

	if err := (conversationHandler{deps}).HandleText(context.Background(), m, testChatID, testUserID, "buyer", "  "); err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	placeholder := deps.Config.Messages.UnrecognizedVoice
	if store.messages[0].Text != placeholder {
		t.Fatalf("stored = %q", store.messages[0].Text)
	}
	if got := m.sentTo(testChatID); len(got) != 1 || got[0] != deps.Config.Messages.Acknowledgement {
		t.Fatalf("replies = %q", got)
	}
	if notices := m.sentTo(testAdminID); len(notices) != 1 || !strings.HasSuffix(notices[0], placeholder) {
		t.Fatalf("notices = %q", notices)
	}
}

func TestHandleTextStoreFailureAborts(t *testing.T) {
	deps, store := testDeps(t)
	store.saveErr = errors.New("disk full")
	m := &fakeMessenger{}

	if err := (conversationHandler{deps}).HandleText(context.Background(), m, testChatID, testUserID, "buyer", "как оформить заказ"); err == nil {
		t.Fatal("expected error")
	}
	if len(m.sent) != 0 {
		t.Fatal("no reply expected after a store failure")
	}
}

func TestHandleTextSendFailure(t *testing.T) {
	deps, store := testDeps(t)
	m := &fakeMessenger{sendErr: errors.New("network")}

	if err := (conversationHandler{deps}).HandleText(context.Background(), m, testChatID, testUserID, "buyer", "привет"); err == nil {
		t.Fatal("expected error")
	}
	if len(store.messages) != 1 {
		t.Fatal("message must be stored before replying")
	}
}
