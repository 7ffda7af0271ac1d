// Package gemini transcribes voice recordings with Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/edgard/supportbot/internal/config"
)

const waveformMIMEType = "audio/wav"

// contentGenerator is the subset of the genai models service the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client is a speech recognizer backed by a Gemini model.
type Client struct {
	models  contentGenerator
	log     *slog.Logger
	model   string
	prompt  string
	content *genai.GenerateContentConfig
}

// NewClient creates a Gemini client for the configured model.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c := newClient(gi.Models, cfg, log)
	c.log.Info("Gemini client initialized successfully", "model", cfg.Model)
	return c, nil
}

func newClient(models contentGenerator, cfg config.GeminiConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	var temperature float32
	return &Client{
		models: models,
		log:    log.With("component", "gemini_client"),
		model:  cfg.Model,
		prompt: cfg.Prompt,
		content: &genai.GenerateContentConfig{
			Temperature: &temperature,
		},
	}
}

// Recognize uploads the WAV file inline together with the transcription
// prompt and returns the model's transcript.
func (c *Client) Recognize(ctx context.Context, wavPath string) (string, error) {
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("failed to read waveform: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty waveform")
	}

	c.log.DebugContext(ctx, "Requesting transcription", "model", c.model, "bytes", len(data))

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(c.prompt),
			genai.NewPartFromBytes(data, waveformMIMEType),
		}, genai.RoleUser),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, c.content)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}

	return c.extractTextFromResponse(ctx, resp)
}

func (c *Client) extractTextFromResponse(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini returned a nil response")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)

		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonStop {
			return "", fmt.Errorf("transcription returned no content, finish reason: %s", finishReason)
		}
		// A clean stop with no parts means no speech was heard.
		return "", nil
	}

	return strings.TrimSpace(resp.Text()), nil
}
