package quizgen

import "fmt"

// Validator checks a generated question set.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages and logs,
	// e.g. "structural" or "duplicates".
	Name() string

	// Validate returns nil when the set passes.
	Validate(questions []Question) *ValidationError
}

// ValidationError describes why a question set failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Index     int    // Offending question, or -1 for the whole set
	Message   string
	Retryable bool // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Index+1, e.Message)
}

// Validate runs validators in order and returns the first failure.
func Validate(questions []Question, validators ...Validator) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for _, v := range validators {
		if verr := v.Validate(questions); verr != nil {
			return verr
		}
	}
	return nil
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&DuplicateValidator{},
	}
}
