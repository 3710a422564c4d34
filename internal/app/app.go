package app

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/kznrluk/summarize-document/internal/extractor"
	"github.com/kznrluk/summarize-document/internal/llm"
)

// promptSeparator goes between the user's prompt and the document text.
const promptSeparator = "\n\n"

// App encapsulates the core application logic.
type App struct {
	extractor extractor.Extractor
	llm       llm.LLM
	log       zerolog.Logger
}

// NewApp creates a new App instance.
func NewApp(e extractor.Extractor, l llm.LLM, log zerolog.Logger) *App {
	return &App{
		extractor: e,
		llm:       l,
		log:       log,
	}
}

// Summarize extracts the document at documentPath and asks the LLM to
// respond to prompt about it. Nothing is sent if extraction fails.
func (a *App) Summarize(ctx context.Context, documentPath string, prompt string) (string, error) {
	content, err := a.extractor.Extract(ctx, documentPath)
	if err != nil {
		return "", fmt.Errorf("failed to extract document: %w", err)
	}

	a.log.Info().Str("url", a.llm.Endpoint()).Msgf("Sending request to %s...", a.llm.Endpoint())
	a.log.Info().Str("model", a.llm.Model()).Msgf("Using model: %s", a.llm.Model())
	a.log.Info().Int("characters", utf8.RuneCountInString(content)).
		Msgf("Document size: %d characters", utf8.RuneCountInString(content))

	result, err := a.llm.Generate(ctx, BuildPrompt(prompt, content))
	if err != nil {
		return "", err
	}
	return result, nil
}

// BuildPrompt places the user's prompt ahead of the document content.
func BuildPrompt(prompt, content string) string {
	return prompt + promptSeparator + content
}
