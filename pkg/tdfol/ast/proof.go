package ast

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the outcome of a proof attempt.
type Status int

const (
	StatusUnknown Status = iota
	StatusProved
	StatusDisproved
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusProved:
		return "PROVED"
	case StatusDisproved:
		return "DISPROVED"
	case StatusTimeout:
		return "TIMEOUT"
	}
	return "UNKNOWN"
}

// ProofStep is one derivation in a proof. Premises reference the formulas
// the rule was applied to; they are immutable shared values, so a step may
// cite an axiom and a derived formula alike.
type ProofStep struct {
	Formula       Formula
	Justification string
	RuleName      string
	Premises      []Formula
}

// ProofResult is the outcome of a single prove call. Steps are ordered by
// derivation; the final step derives the goal when Status is StatusProved.
type ProofResult struct {
	ID         string
	Status     Status
	Formula    Formula
	Steps      []ProofStep
	Method     string
	Elapsed    time.Duration
	FromCache  bool
	Diagnostic string
}

// NewProofResult creates a result shell for a goal with a fresh id.
func NewProofResult(goal Formula, method string) ProofResult {
	return ProofResult{
		ID:      ulid.Make().String(),
		Status:  StatusUnknown,
		Formula: goal,
		Method:  method,
	}
}
