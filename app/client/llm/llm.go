package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"odoosense/app/config"

	"github.com/samber/do"
)

// ErrMissingAPIKey is reported before any network call when the selected
// provider has no credential configured.
var ErrMissingAPIKey = errors.New("completion API key is not configured")

const maxCompletionDuration = 30 * time.Second

// Completer turns a fully assembled prompt into natural-language text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

func NewCompleter(di *do.Injector) (Completer, error) {
	cfg := do.MustInvoke[*config.Config](di)

	switch cfg.LLM.Provider {
	case "gemini":
		return newGeminiClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.LLM.Provider)
	}
}
