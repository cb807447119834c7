package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAnswer is matched by every InvalidAnswerError via errors.Is
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrStructuralMismatch is matched by every StructuralMismatchError via errors.Is
	ErrStructuralMismatch = errors.New("structural mismatch")
)

// InvalidAnswerError reports a response whose value is outside the question's
// declared allowed answers.
type InvalidAnswerError struct {
	QuestionID string   // Question the answer was recorded against
	Value      string   // Offending value
	Allowed    []string // Declared allowed answers
}

// Error implements the error interface.
func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("question %s: invalid answer %q (allowed: %s)",
		e.QuestionID, e.Value, strings.Join(e.Allowed, ", "))
}

// Is lets errors.Is match ErrInvalidAnswer.
func (e *InvalidAnswerError) Is(target error) bool {
	return target == ErrInvalidAnswer
}

// StructuralMismatchError reports two frameworks whose domains or questions
// cannot be paired up.
type StructuralMismatchError struct {
	Domain  string // Domain where the mismatch was found (empty for framework level)
	Message string
}

// Error implements the error interface.
func (e *StructuralMismatchError) Error() string {
	if e.Domain == "" {
		return "structural mismatch: " + e.Message
	}
	return fmt.Sprintf("structural mismatch in domain %q: %s", e.Domain, e.Message)
}

// Is lets errors.Is match ErrStructuralMismatch.
func (e *StructuralMismatchError) Is(target error) bool {
	return target == ErrStructuralMismatch
}
