package main

import (
	"context"
	"log/slog"

	"github.com/edgard/supportbot/internal/bot/handlers"
	"github.com/edgard/supportbot/internal/config"
	"github.com/edgard/supportbot/internal/gemini"
	"github.com/edgard/supportbot/internal/voice"
	"github.com/edgard/supportbot/internal/voice/vosk"
)

// newVoiceTranscriber builds the voice pipeline. Voice support is optional:
// when the recognizer or ffmpeg is unavailable it logs a warning and returns a
// nil Transcriber, and the bot keeps serving text. The returned func releases
// the recognizer and is never nil.
func newVoiceTranscriber(ctx context.Context, cfg *config.Config, log *slog.Logger) (handlers.Transcriber, func()) {
	noop := func() {}

	recognizer, closeRecognizer, err := newRecognizer(ctx, cfg, log)
	if err != nil {
		log.Warn("Voice messages disabled: speech recognizer unavailable", "engine", cfg.Voice.Engine, "error", err)
		return nil, noop
	}

	transcoder, err := voice.NewFFmpegTranscoder(cfg.Voice.FFmpegPath)
	if err != nil {
		closeRecognizer()
		log.Warn("Voice messages disabled: audio transcoder unavailable", "error", err)
		return nil, noop
	}

	transcriber, err := voice.NewTranscriber(voice.Options{
		Downloader:       voice.NewDownloader(nil),
		Transcoder:       transcoder,
		Recognizer:       recognizer,
		TempDir:          cfg.Voice.TempDir,
		DownloadTimeout:  cfg.Voice.DownloadTimeout,
		TranscodeTimeout: cfg.Voice.TranscodeTimeout,
		Logger:           log,
	})
	if err != nil {
		closeRecognizer()
		log.Warn("Voice messages disabled: transcriber setup failed", "error", err)
		return nil, noop
	}

	log.Info("Voice messages enabled", "engine", cfg.Voice.Engine)
	return transcriber, closeRecognizer
}

// newRecognizer builds the speech recognizer selected by voice.engine and a
// function releasing its resources.
func newRecognizer(ctx context.Context, cfg *config.Config, log *slog.Logger) (voice.Recognizer, func(), error) {
	switch cfg.Voice.Engine {
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.Gemini, log)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	default:
		engine, err := vosk.NewEngine(cfg.Voice.ModelPath, log)
		if err != nil {
			return nil, nil, err
		}
		return voice.NewStreamRecognizer(engine, cfg.Voice.ChunkFrames, cfg.Voice.FlushFinal), engine.Close, nil
	}
}
