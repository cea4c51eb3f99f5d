package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/literacyhub/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.QuestionCount < 1 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for a quiz about the topic and validates it.
// Sets that fail a retryable validator are regenerated up to
// Config.MaxAttempts times in total.
func (g *LLMGenerator) Generate(ctx context.Context, title, content string) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)
	count := QuestionCountFrom(ctx, g.config.QuestionCount)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(title, content, count, g.config.MaxContentChars)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		questions, err := g.generateOnce(ctx, req, count)
		if err == nil {
			return questions, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req llm.Request, count int) ([]Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	questions := raw.Questions
	if len(questions) > count {
		questions = questions[:count]
	}
	if err := Validate(questions, g.config.Validators...); err != nil {
		return nil, err
	}
	return questions, nil
}
