package quizgen

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBank []byte

// BankGenerator serves fixed question sets keyed by topic title. It backs
// offline play when no LLM provider is configured.
type BankGenerator struct {
	sets map[string][]Question
}

type bankFile struct {
	Sets []struct {
		Title     string     `yaml:"title"`
		Questions []Question `yaml:"questions"`
	} `yaml:"sets"`
}

// ParseBank decodes and validates a YAML question bank.
func ParseBank(data []byte) (*BankGenerator, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	b := &BankGenerator{sets: make(map[string][]Question, len(f.Sets))}
	for _, s := range f.Sets {
		key := bankKey(s.Title)
		if _, dup := b.sets[key]; dup {
			return nil, fmt.Errorf("question bank: duplicate set %q", s.Title)
		}
		if err := Validate(s.Questions, DefaultValidators()...); err != nil {
			return nil, fmt.Errorf("question bank: set %q: %w", s.Title, err)
		}
		b.sets[key] = s.Questions
	}
	return b, nil
}

// DefaultBank returns the question bank embedded in the binary.
func DefaultBank() (*BankGenerator, error) {
	return ParseBank(defaultBank)
}

// Generate returns up to the requested number of questions for title.
// Unknown titles yield ErrNoQuestions.
func (b *BankGenerator) Generate(ctx context.Context, title, _ string) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	qs, ok := b.sets[bankKey(title)]
	if !ok || len(qs) == 0 {
		return nil, fmt.Errorf("no offline questions for %q: %w", title, ErrNoQuestions)
	}
	n := QuestionCountFrom(ctx, len(qs))
	return slices.Clone(qs[:min(n, len(qs))]), nil
}

func bankKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
