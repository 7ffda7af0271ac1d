package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/edgard/supportbot/internal/faq"
)

// Validate checks struct constraints and the engine-specific requirements
// that cannot be expressed as tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Voice.Engine {
	case "vosk":
		if c.Voice.ModelPath == "" {
			return errors.New("voice.model_path is required for the vosk engine")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return errors.New("gemini.api_key is required for the gemini engine")
		}
		if c.Gemini.Model == "" {
			return errors.New("gemini.model is required for the gemini engine")
		}
	}

	if _, err := faq.NewTable(c.FAQ); err != nil {
		return fmt.Errorf("invalid faq: %w", err)
	}

	return nil
}
