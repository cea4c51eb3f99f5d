package quiz

import (
	qz "github.com/abhisek/literacyhub/internal/quiz"
)

// generatedMsg is sent when the engine's Generate call returns.
type generatedMsg struct {
	Err error
}

// submittedMsg is sent when the engine's Submit call returns. Outcome may
// be set together with Err when only the profile write failed.
type submittedMsg struct {
	Outcome *qz.Outcome
	Err     error
}
