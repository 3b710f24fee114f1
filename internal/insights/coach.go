// File path: internal/insights/coach.go
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/llm"
)

const systemPrompt = `Je bent een persoonlijke coach en accountability partner. Je analyseert check-in data, weekreviews en doelen van de gebruiker.

Je stijl:
- Direct en eerlijk, maar bemoedigend
- Je wijst op patronen en trends
- Je stelt vervolgvragen om dieper te graven
- Je herinnert de gebruiker aan zijn eigen doelen en uitspraken
- Je geeft concrete, actionable suggesties
- Je schrijft in het Nederlands

Je hebt toegang tot de check-in geschiedenis en doelen van de gebruiker. Gebruik deze data om je antwoorden te onderbouwen.`

// ServiceError reports a failure of the external summarization call.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("insight service (%s): %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Coach answers user questions grounded in the serialized check-in
// context. No caching, no retry: one synchronous call per question.
type Coach struct {
	provider llm.Provider
	builder  *ContextBuilder
	now      func() time.Time
}

func NewCoach(provider llm.Provider, builder *ContextBuilder) (*Coach, error) {
	if provider == nil {
		return nil, errors.New("provider required")
	}
	if builder == nil {
		return nil, errors.New("context builder required")
	}
	return &Coach{provider: provider, builder: builder, now: time.Now}, nil
}

// Ask builds the context, sends it with the question to the provider and
// returns the answer text.
func (c *Coach) Ask(ctx context.Context, question string) (string, error) {
	logger := common.Logger()
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return "", errors.New("question required")
	}
	contextText, err := c.builder.Build(ctx, c.now())
	if err != nil {
		return "", err
	}
	logger.Debug("insights: context built", "bytes", len(contextText))
	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Hier is mijn recente data:\n\n%s\n\n---\n\nMijn vraag: %s", contextText, trimmed)},
	}
	answer, err := c.provider.Chat(ctx, messages)
	if err != nil {
		logger.Error("insights: provider call failed", "provider", c.provider.Name(), "error", err)
		return "", &ServiceError{Provider: c.provider.Name(), Err: err}
	}
	logger.Info("insights: question answered", "provider", c.provider.Name())
	return answer, nil
}
