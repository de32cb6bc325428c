package game

import (
	"errors"
	"fmt"
)

var (
	// ErrRulesViolation matches any *RulesViolation via errors.Is.
	ErrRulesViolation = errors.New("rules violation")
	// ErrUnknownCard matches any *UnknownCardError via errors.Is.
	ErrUnknownCard = errors.New("unknown card")
)

// RulesViolation is a recoverable legality failure. The request that produced
// it did not happen.
type RulesViolation struct {
	Reason string
}

func (e *RulesViolation) Error() string {
	return "rules violation: " + e.Reason
}

func (e *RulesViolation) Is(target error) bool {
	return target == ErrRulesViolation
}

func violationf(format string, args ...any) error {
	return &RulesViolation{Reason: fmt.Sprintf(format, args...)}
}

// IsRulesViolation reports whether err is or wraps a RulesViolation.
func IsRulesViolation(err error) bool {
	return errors.Is(err, ErrRulesViolation)
}

// UnknownCardError reports a card name that the registry cannot resolve.
type UnknownCardError struct {
	Name string
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card %q", e.Name)
}

func (e *UnknownCardError) Is(target error) bool {
	return target == ErrUnknownCard
}
