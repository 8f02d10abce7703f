// Package fqdd parses fully-qualified device descriptors of managed-server
// network ports, e.g. "NIC.Integrated.1-2-1" (card prefix, port, partition).
package fqdd

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a descriptor that does not follow the
// <prefix>-<port>-<partition> grammar.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse FQDD %q: %s", e.Value, e.Reason)
}

// Category is the placement of a card on the server board, parsed from the
// middle token of the prefix. The declared order is the sort order used when
// ranking physical cards: onboard controllers come before pluggable ones.
type Category int

const (
	CategoryEmbedded Category = iota
	CategoryIntegrated
	CategoryMezzanine
	CategorySlot
	CategoryUnknown
)

func (c Category) String() string {
	switch c {
	case CategoryEmbedded:
		return "Embedded"
	case CategoryIntegrated:
		return "Integrated"
	case CategoryMezzanine:
		return "Mezzanine"
	case CategorySlot:
		return "Slot"
	}
	return "Unknown"
}

// Identity is a parsed descriptor. Immutable value type.
type Identity struct {
	Prefix    string
	Port      int
	Partition int
}

// Parse splits an identifier into prefix, port and partition. The prefix may
// itself contain dots and dashes; the trailing two dash-separated segments
// are always port then partition.
func Parse(s string) (Identity, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return Identity{}, &ParseError{Value: s, Reason: "expected <prefix>-<port>-<partition>"}
	}
	port, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return Identity{}, &ParseError{Value: s, Reason: fmt.Sprintf("port segment %q is not a number", parts[len(parts)-2])}
	}
	partition, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return Identity{}, &ParseError{Value: s, Reason: fmt.Sprintf("partition segment %q is not a number", parts[len(parts)-1])}
	}
	return Identity{
		Prefix:    strings.Join(parts[:len(parts)-2], "-"),
		Port:      port,
		Partition: partition,
	}, nil
}

// Prefix returns the card prefix of an identifier without parsing the
// trailing segments, e.g. "NIC.Integrated.1" for "NIC.Integrated.1-2-1".
func Prefix(s string) (string, error) {
	id, err := Parse(s)
	if err != nil {
		return "", err
	}
	return id.Prefix, nil
}

// String renders the identity back to its wire form.
func (id Identity) String() string {
	return fmt.Sprintf("%s-%d-%d", id.Prefix, id.Port, id.Partition)
}

// WithPartition returns a copy of the identity pointing at another partition
// on the same port.
func (id Identity) WithPartition(n int) Identity {
	id.Partition = n
	return id
}

// Category derives the board placement from the prefix middle token.
func (id Identity) Category() Category {
	tokens := strings.Split(id.Prefix, ".")
	if len(tokens) < 2 {
		return CategoryUnknown
	}
	switch tokens[1] {
	case "Embedded":
		return CategoryEmbedded
	case "Integrated":
		return CategoryIntegrated
	case "Mezzanine":
		return CategoryMezzanine
	case "Slot":
		return CategorySlot
	}
	return CategoryUnknown
}

// CardNumber returns the numeric index from the prefix last token, e.g. 4 for
// "NIC.Slot.4". Returns 0 when the prefix carries no number.
func (id Identity) CardNumber() int {
	tokens := strings.Split(id.Prefix, ".")
	n, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return 0
	}
	return n
}

// Compare orders identities by prefix string, then port, then partition.
func (id Identity) Compare(other Identity) int {
	if c := strings.Compare(id.Prefix, other.Prefix); c != 0 {
		return c
	}
	if id.Port != other.Port {
		if id.Port < other.Port {
			return -1
		}
		return 1
	}
	switch {
	case id.Partition < other.Partition:
		return -1
	case id.Partition > other.Partition:
		return 1
	}
	return 0
}

// Less reports whether id sorts before other.
func (id Identity) Less(other Identity) bool {
	return id.Compare(other) < 0
}
