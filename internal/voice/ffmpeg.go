package voice

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// FFmpegTranscoder converts audio with the ffmpeg binary.
type FFmpegTranscoder struct {
	path string
}

// NewFFmpegTranscoder returns a transcoder running the ffmpeg binary at path
// (looked up in PATH when it has no separator).
func NewFFmpegTranscoder(path string) (*FFmpegTranscoder, error) {
	if path == "" {
		path = "ffmpeg"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found at %q: %w", path, err)
	}
	return &FFmpegTranscoder{path: resolved}, nil
}

// Transcode writes src as mono 16-bit little-endian PCM WAV to dst, keeping
// the source sample rate.
func (t *FFmpegTranscoder) Transcode(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, t.path,
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-y", "-i", src,
		"-vn", "-acodec", "pcm_s16le", "-ac", "1",
		"-f", "wav", dst,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", errors.Join(ctxErr, err))
		}
		return fmt.Errorf("ffmpeg conversion failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
