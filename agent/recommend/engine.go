package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
	promptx "github.com/tanpawarit/plan-advisor/agent/prompt"
)

// FallbackReply is returned whenever the model cannot be reached or
// answers with something unusable.
const FallbackReply = "Sorry, I couldn't process your request. Please try again."

var _ contractx.Recommender = (*Engine)(nil)

// Engine grounds a user's request in the catalog and asks the model for a
// recommendation. It never returns an error.
type Engine struct {
	completer contractx.Completer
	logger    zerolog.Logger
}

func NewEngine(completer contractx.Completer, logger zerolog.Logger) (*Engine, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer is required", contractx.ErrValidation)
	}
	return &Engine{completer: completer, logger: logger}, nil
}

func (e *Engine) Recommend(ctx context.Context, userText string, plans catalogx.Catalog) string {
	prompt, err := promptx.Recommendation(userText, plans)
	if err != nil {
		e.logger.Error().Err(err).Str("stage", "prompt").Msg("recommendation failed")
		return FallbackReply
	}

	reply, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		e.logger.Error().Err(err).Str("stage", "completion").Msg("recommendation failed")
		return FallbackReply
	}

	e.logger.Debug().Int("plans", len(plans)).Int("reply_len", len(reply)).Msg("recommendation generated")
	return reply
}
