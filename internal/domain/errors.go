package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidRuleDefinitionError is returned when a supervision rule is rejected at ingestion.
// Field names the offending field using its JSON name.
type InvalidRuleDefinitionError struct {
	RuleID string
	Field  string
	Reason string
}

func (e *InvalidRuleDefinitionError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("invalid rule definition: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid rule definition %s: %s: %s", e.RuleID, e.Field, e.Reason)
}

// Unwrap lets callers match the error with errors.Is(err, ErrInvalidInput).
func (e *InvalidRuleDefinitionError) Unwrap() error {
	return ErrInvalidInput
}
