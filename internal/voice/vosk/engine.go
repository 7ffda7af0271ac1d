// Package vosk adapts the offline Vosk speech recognition library to the
// voice.Engine interface. The binding needs cgo and libvosk, so the real
// engine is only compiled with the "vosk" build tag.
package vosk

import (
	"errors"
	"fmt"
	"os"

	"github.com/edgard/supportbot/internal/voice"
)

// ErrNotCompiled is returned by binaries built without the "vosk" tag.
var ErrNotCompiled = errors.New("vosk support not compiled in (build with -tags vosk)")

// ErrClosed is returned by NewStream after Close.
var ErrClosed = errors.New("vosk engine closed")

var _ voice.Engine = (*Engine)(nil)

func checkModelDir(modelPath string) error {
	if modelPath == "" {
		return errors.New("vosk model path is required")
	}
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("vosk model not available: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vosk model path %s is not a directory", modelPath)
	}
	return nil
}
