// Package voice turns Telegram voice messages into text: it downloads the
// attachment, transcodes it to a PCM WAV file and runs a speech recognizer
// over it. Every invocation works in its own session directory, so concurrent
// transcriptions never share files.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// SessionDirPrefix prefixes every per-invocation working directory.
const SessionDirPrefix = "voice-"

const (
	downloadFileName  = "voice.ogg"
	waveformFileName  = "voice.wav"
	defaultDLTimeout  = 30 * time.Second
	defaultTCTimeout  = time.Minute
	defaultMaxPayload = 20 * 1024 * 1024 // Bot API download limit
)

// ErrInvalidWaveform reports a WAV file the recognizer cannot consume.
var ErrInvalidWaveform = errors.New("invalid waveform")

// FileSource resolves Telegram file IDs to downloadable links. *bot.Bot
// satisfies it.
type FileSource interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// Transcoder converts a compressed audio file into a mono 16-bit PCM WAV file.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// Recognizer extracts text from a WAV file.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string) (string, error)
}

// Options configures a Transcriber.
type Options struct {
	Downloader       *Downloader
	Transcoder       Transcoder
	Recognizer       Recognizer
	TempDir          string
	DownloadTimeout  time.Duration
	TranscodeTimeout time.Duration
	Logger           *slog.Logger
}

// Transcriber runs the download → transcode → recognize pipeline.
type Transcriber struct {
	downloader       *Downloader
	transcoder       Transcoder
	recognizer       Recognizer
	tempDir          string
	downloadTimeout  time.Duration
	transcodeTimeout time.Duration
	logger           *slog.Logger
}

// NewTranscriber validates opts and fills in defaults.
func NewTranscriber(opts Options) (*Transcriber, error) {
	if opts.Transcoder == nil {
		return nil, errors.New("voice transcoder is required")
	}
	if opts.Recognizer == nil {
		return nil, errors.New("voice recognizer is required")
	}
	if opts.Downloader == nil {
		opts.Downloader = NewDownloader(nil)
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = defaultDLTimeout
	}
	if opts.TranscodeTimeout <= 0 {
		opts.TranscodeTimeout = defaultTCTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Transcriber{
		downloader:       opts.Downloader,
		transcoder:       opts.Transcoder,
		recognizer:       opts.Recognizer,
		tempDir:          opts.TempDir,
		downloadTimeout:  opts.DownloadTimeout,
		transcodeTimeout: opts.TranscodeTimeout,
		logger:           opts.Logger.With("component", "voice_transcriber"),
	}, nil
}

// Transcribe downloads the voice file fileID from src and returns the
// recognized text with surrounding whitespace removed. An empty string means
// the recognizer found no utterance. Temporary files are removed on every
// return path.
func (t *Transcriber) Transcribe(ctx context.Context, src FileSource, fileID string) (string, error) {
	if fileID == "" {
		return "", errors.New("empty voice file id")
	}

	sessionID := uuid.NewString()
	log := t.logger.With("session_id", sessionID, "file_id", fileID)

	sessionDir := filepath.Join(t.tempDir, SessionDirPrefix+sessionID)
	if err := os.Mkdir(sessionDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create voice session dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(sessionDir); err != nil {
			log.WarnContext(ctx, "Failed to remove voice session dir", "path", sessionDir, "error", err)
		}
	}()

	startTime := time.Now()
	oggPath := filepath.Join(sessionDir, downloadFileName)
	wavPath := filepath.Join(sessionDir, waveformFileName)

	downloadCtx, cancel := context.WithTimeout(ctx, t.downloadTimeout)
	err := t.downloader.Download(downloadCtx, src, fileID, oggPath)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to download voice file: %w", err)
	}

	transcodeCtx, cancel := context.WithTimeout(ctx, t.transcodeTimeout)
	err = t.transcoder.Transcode(transcodeCtx, oggPath, wavPath)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to transcode voice file: %w", err)
	}

	text, err := t.recognizer.Recognize(ctx, wavPath)
	if err != nil {
		return "", fmt.Errorf("failed to recognize speech: %w", err)
	}
	text = strings.TrimSpace(text)

	log.InfoContext(ctx, "Voice message transcribed", "chars", len([]rune(text)), "duration", time.Since(startTime))
	return text, nil
}
