package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-audio/wav"
)

// DefaultChunkFrames is the number of PCM frames fed to the engine at once.
const DefaultChunkFrames = 4000

// Engine creates streaming recognition sessions.
type Engine interface {
	NewStream(sampleRate float64) (Stream, error)
}

// Stream is one streaming recognition session. AcceptWaveform reports true
// when the engine has finalized an utterance, whose JSON result is then
// available from Result. FinalResult flushes whatever audio is pending.
type Stream interface {
	AcceptWaveform(pcm []byte) (bool, error)
	Result() string
	FinalResult() string
	Close()
}

// StreamRecognizer feeds a WAV file to a streaming Engine chunk by chunk and
// concatenates the finalized utterances.
type StreamRecognizer struct {
	engine      Engine
	chunkFrames int
	flushFinal  bool
}

// NewStreamRecognizer returns a recognizer reading chunkFrames frames per
// step. With flushFinal the trailing partial utterance is also kept.
func NewStreamRecognizer(engine Engine, chunkFrames int, flushFinal bool) *StreamRecognizer {
	if chunkFrames <= 0 {
		chunkFrames = DefaultChunkFrames
	}
	return &StreamRecognizer{engine: engine, chunkFrames: chunkFrames, flushFinal: flushFinal}
}

// Recognize implements Recognizer.
func (r *StreamRecognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		return "", fmt.Errorf("failed to open waveform: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return "", fmt.Errorf("%w: %s is not a WAV file", ErrInvalidWaveform, wavPath)
	}
	if dec.BitDepth != 16 || dec.NumChans == 0 {
		return "", fmt.Errorf("%w: need 16-bit PCM, got %d-bit with %d channels", ErrInvalidWaveform, dec.BitDepth, dec.NumChans)
	}
	if err := dec.FwdToPCM(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidWaveform, err)
	}

	stream, err := r.engine.NewStream(float64(dec.SampleRate))
	if err != nil {
		return "", fmt.Errorf("failed to start recognition stream: %w", err)
	}
	defer stream.Close()

	frameSize := int(dec.NumChans) * int(dec.BitDepth) / 8
	pcm := io.LimitReader(dec.PCMChunk, int64(dec.PCMChunk.Size))
	buf := make([]byte, r.chunkFrames*frameSize)

	var text strings.Builder
	appendResult := func(raw string) error {
		segment, err := parseResult(raw)
		if err != nil {
			return err
		}
		if segment != "" {
			text.WriteString(segment)
			text.WriteByte(' ')
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, readErr := io.ReadFull(pcm, buf)
		if n > 0 {
			done, err := stream.AcceptWaveform(buf[:n])
			if err != nil {
				return "", fmt.Errorf("recognition engine failed: %w", err)
			}
			if done {
				if err := appendResult(stream.Result()); err != nil {
					return "", err
				}
			}
		}

		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("failed to read waveform: %w", readErr)
		}
	}

	if r.flushFinal {
		if err := appendResult(stream.FinalResult()); err != nil {
			return "", err
		}
	}

	return strings.TrimSpace(text.String()), nil
}

// recognizerResult is the structured result emitted at utterance boundaries.
type recognizerResult struct {
	Text string `json:"text"`
}

func parseResult(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	var res recognizerResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return "", fmt.Errorf("failed to decode recognition result: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}
