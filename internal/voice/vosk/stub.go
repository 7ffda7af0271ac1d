//go:build !vosk

package vosk

import (
	"log/slog"

	"github.com/edgard/supportbot/internal/voice"
)

// Engine is a placeholder in builds without the "vosk" tag.
type Engine struct{}

// NewEngine validates modelPath and then reports ErrNotCompiled.
func NewEngine(modelPath string, _ *slog.Logger) (*Engine, error) {
	if err := checkModelDir(modelPath); err != nil {
		return nil, err
	}
	return nil, ErrNotCompiled
}

// NewStream implements voice.Engine.
func (e *Engine) NewStream(float64) (voice.Stream, error) { return nil, ErrNotCompiled }

// Close is a no-op.
func (e *Engine) Close() {}
