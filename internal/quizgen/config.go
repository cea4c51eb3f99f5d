package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated set; the first failure
	// stops the pipeline.
	Validators []Validator

	// QuestionCount is the number of questions requested when the context
	// carries no count of its own.
	QuestionCount int

	// MaxAttempts bounds how many times a set that fails a retryable
	// validator is regenerated, counting the first call.
	MaxAttempts int

	MaxTokens   int
	Temperature float64

	// MaxContentChars caps the lesson text sent to the model.
	MaxContentChars int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:      DefaultValidators(),
		QuestionCount:   10,
		MaxAttempts:     2,
		MaxTokens:       4096,
		Temperature:     0.7,
		MaxContentChars: 6000,
	}
}
