package ai

import (
	"context"
	"fmt"

	"podscout/internal/ai/mock"
	"podscout/internal/ai/ollama"
	"podscout/internal/ai/openai"
	"podscout/internal/config"
)

// chatClient is what every provider subpackage implements: one completion
// call plus a name. The Summarizer wrapper owns prompt rendering and error
// classification so providers stay transport-only.
type chatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

type clientSummarizer struct {
	client chatClient
}

func (s clientSummarizer) Name() string { return s.client.Name() }

func (s clientSummarizer) Summarize(ctx context.Context, dc Context) (string, error) {
	text, err := s.client.Complete(ctx, systemPrompt, BuildPrompt(dc))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return text, nil
}

// NewSummarizer constructs the provider selected by config. An empty
// provider name means AI is disabled: the caller gets (nil, nil) and must
// use Fallback. Missing credentials surface as ErrUnavailable so the call
// site can degrade rather than abort.
func NewSummarizer(cfg config.AIConfig) (Summarizer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrUnavailable)
		}
		return clientSummarizer{openai.New(cfg.OpenAI, cfg.Timeout)}, nil
	case "ollama":
		return clientSummarizer{ollama.New(cfg.Ollama, cfg.Timeout)}, nil
	case "mock":
		return clientSummarizer{mock.New()}, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q: must be one of openai, ollama, mock", cfg.Provider)
	}
}
