package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
	groqx "github.com/tanpawarit/plan-advisor/pkg/groq"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.groq.com/openai/v1"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"llama-3.1-8b-instant"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: groq api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model is required", contractx.ErrValidation)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be within [0, 2], got %v", contractx.ErrValidation, c.Temperature)
	}
	return nil
}

// Client returns the SDK client configuration. Calls are single-attempt.
func (c Config) Client() groqx.Config {
	return groqx.Config{
		BaseURL:    strings.TrimSpace(c.BaseURL),
		APIKey:     strings.TrimSpace(c.APIKey),
		Timeout:    c.Timeout,
		MaxRetries: 0,
	}
}
