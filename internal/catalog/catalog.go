// Package catalog holds the static, read-only list of learning topics.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the major catalog schema version this build understands.
const SupportedSchema = "v1"

//go:embed topics.yaml
var defaultTopics []byte

// Difficulty labels how demanding a topic is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// AllDifficulties returns all difficulties in display order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return slices.Contains(AllDifficulties(), d)
}

// Topic is a unit of learning content with a point reward.
// Topics are defined once at startup and never mutated.
type Topic struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Content     string     `yaml:"content"`
	Difficulty  Difficulty `yaml:"difficulty"`

	// Points is the reward for a 100% score.
	Points int `yaml:"points"`

	// QuestionCount is the number of questions requested from the generator.
	QuestionCount int `yaml:"question_count"`
}

// Catalog is an ordered, immutable set of topics.
type Catalog struct {
	topics []Topic
	byID   map[string]int
}

type catalogFile struct {
	Schema string  `yaml:"schema"`
	Topics []Topic `yaml:"topics"`
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if !semver.IsValid(f.Schema) {
		return nil, fmt.Errorf("catalog schema version %q is not a valid semantic version", f.Schema)
	}
	if semver.Major(f.Schema) != SupportedSchema {
		return nil, fmt.Errorf("catalog schema %s is not supported (want %s.x)", f.Schema, SupportedSchema)
	}

	for i := range f.Topics {
		f.Topics[i].Content = strings.TrimSpace(f.Topics[i].Content)
	}
	if err := validateTopics(f.Topics); err != nil {
		return nil, err
	}

	c := &Catalog{
		topics: f.Topics,
		byID:   make(map[string]int, len(f.Topics)),
	}
	for i, t := range f.Topics {
		c.byID[t.ID] = i
	}
	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultTopics)
})

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Topics returns the topics in display order.
func (c *Catalog) Topics() []Topic {
	return slices.Clone(c.topics)
}

// Get returns a topic by ID.
func (c *Catalog) Get(id string) (Topic, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// Title returns the title of the topic with id, or id itself for a topic
// no longer in the catalog.
func (c *Catalog) Title(id string) string {
	if t, ok := c.Get(id); ok {
		return t.Title
	}
	return id
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.topics)
}

// validateTopics checks every topic and returns all problems found as one error.
func validateTopics(topics []Topic) error {
	if len(topics) == 0 {
		return fmt.Errorf("catalog has no topics")
	}

	var errs []string
	seen := make(map[string]bool, len(topics))
	for i, t := range topics {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("topic #%d has an empty id", i))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic id: %q", t.ID))
		}
		seen[t.ID] = true

		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Sprintf("topic %q has an empty title", t.ID))
		}
		if t.Content == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no content", t.ID))
		}
		if !t.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("topic %q has unknown difficulty %q", t.ID, t.Difficulty))
		}
		if t.Points <= 0 {
			errs = append(errs, fmt.Sprintf("topic %q must award a positive number of points", t.ID))
		}
		if t.QuestionCount < 0 {
			errs = append(errs, fmt.Sprintf("topic %q has a negative question count", t.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
