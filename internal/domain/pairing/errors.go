package pairing

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for manual pairing validation. A *ValidationError matches
// both ErrValidation and its specific kind under errors.Is.
var (
	ErrValidation        = errors.New("invalid manual pairing")
	ErrNoProposals       = errors.New("no pairs proposed")
	ErrUnknownCompetitor = errors.New("unknown competitor")
	ErrSelfPairing       = errors.New("competitor paired with itself")
	ErrCompetitorReused  = errors.New("competitor used in more than one pair")
)

// ValidationError reports why a proposed manual pairing was rejected.
type ValidationError struct {
	Kind  error
	Names []string
}

func (e *ValidationError) Error() string {
	if len(e.Names) == 0 {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Kind, strings.Join(e.Names, ", "))
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Kind}
}

func invalid(kind error, names ...string) error {
	return &ValidationError{Kind: kind, Names: names}
}
