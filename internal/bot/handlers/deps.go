package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/supportbot/internal/config"
	"github.com/edgard/supportbot/internal/database"
	"github.com/edgard/supportbot/internal/faq"
	"github.com/edgard/supportbot/internal/voice"
)

// Transcriber turns a Telegram voice file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, src voice.FileSource, fileID string) (string, error)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	Store       database.Store
	FAQ         *faq.Table
	Transcriber Transcriber
}
