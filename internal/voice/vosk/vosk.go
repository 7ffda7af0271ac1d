//go:build vosk

package vosk

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"

	"github.com/edgard/supportbot/internal/voice"
)

// Engine loads a Vosk model on first use and shares it between streams.
type Engine struct {
	modelPath string
	log       *slog.Logger

	mu      sync.Mutex
	model   *vosk.VoskModel
	loadErr error
	closed  bool
}

// NewEngine returns an engine for the model directory at modelPath. The
// model is not loaded until the first stream is opened.
func NewEngine(modelPath string, log *slog.Logger) (*Engine, error) {
	if err := checkModelDir(modelPath); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{modelPath: modelPath, log: log.With("component", "vosk_engine")}, nil
}

// loadLocked loads the model once. A failed load is remembered and not
// retried. e.mu must be held.
func (e *Engine) loadLocked() (*vosk.VoskModel, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if e.model != nil || e.loadErr != nil {
		return e.model, e.loadErr
	}

	e.log.Info("Loading Vosk model", "path", e.modelPath)
	model, err := vosk.NewModel(e.modelPath)
	if err != nil {
		e.loadErr = fmt.Errorf("failed to load vosk model: %w", err)
		return nil, e.loadErr
	}
	e.log.Info("Vosk model loaded")
	e.model = model
	return model, nil
}

// NewStream implements voice.Engine.
func (e *Engine) NewStream(sampleRate float64) (voice.Stream, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	model, err := e.loadLocked()
	if err != nil {
		return nil, err
	}
	rec, err := vosk.NewRecognizer(model, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create vosk recognizer: %w", err)
	}
	return &stream{rec: rec}, nil
}

// Close releases the model. Later NewStream calls return ErrClosed. Callers
// must make sure no stream is still decoding.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	if e.model != nil {
		e.model.Free()
		e.model = nil
	}
}

type stream struct {
	rec *vosk.VoskRecognizer
}

func (s *stream) AcceptWaveform(pcm []byte) (bool, error) {
	switch s.rec.AcceptWaveform(pcm) {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, errors.New("vosk rejected waveform chunk")
	}
}

func (s *stream) Result() string      { return s.rec.Result() }
func (s *stream) FinalResult() string { return s.rec.FinalResult() }
func (s *stream) Close()              { s.rec.Free() }
