package netconfig

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed logical-config field, e.g. a port or
// partition name without a trailing number.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: %s", e.Field, e.Value, e.Reason)
}

// StructuralError reports a canonical tree that violates a modeling
// invariant, e.g. interfaces of one card disagreeing on partition count.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return e.Msg
}

// PreconditionError reports an operation invoked before its prerequisite,
// e.g. deriving teams before matching has run.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

// UnmatchedCard identifies a canonical card that found no physical NIC.
type UnmatchedCard struct {
	Name  string
	Shape string
}

// RemainingGroup summarizes a physical NIC still available after matching.
type RemainingGroup struct {
	Prefix   string
	Shape    string
	Disabled bool
}

// MatchError aggregates every card that could not be matched, together with
// the pool state left over after all cards were attempted.
type MatchError struct {
	Unmatched []UnmatchedCard
	Remaining []RemainingGroup
}

func (e *MatchError) Error() string {
	cards := make([]string, 0, len(e.Unmatched))
	for _, c := range e.Unmatched {
		cards = append(cards, fmt.Sprintf("%s (%s)", c.Name, c.Shape))
	}
	msg := fmt.Sprintf("no compatible physical NIC found for cards: %s", strings.Join(cards, ", "))
	if len(e.Remaining) == 0 {
		return msg + "; no physical NICs remain"
	}
	groups := make([]string, 0, len(e.Remaining))
	for _, g := range e.Remaining {
		state := "enabled"
		if g.Disabled {
			state = "disabled"
		}
		groups = append(groups, fmt.Sprintf("%s (%s, %s)", g.Prefix, g.Shape, state))
	}
	return fmt.Sprintf("%s; available NICs: %s", msg, strings.Join(groups, ", "))
}
