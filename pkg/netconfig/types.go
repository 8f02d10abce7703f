// Package netconfig reconciles a user-authored logical network configuration
// with the physical NIC inventory of a managed server. It builds one
// canonical Card -> Interface -> Partition tree from the heterogeneous
// logical input, matches each card to a physical NIC group and propagates
// hardware identifiers down the tree.
package netconfig

import (
	"encoding/json"

	"github.com/metalkit/netrecon/pkg/nicview"
)

// Partition is one canonical NIC partition. FQDD and MAC address are empty
// until matching has run.
type Partition struct {
	Name           string
	PortNo         int
	PartitionNo    int
	PartitionIndex int
	Networks       []Network
	Fqdd           string
	MacAddress     string
}

// Interface is one canonical physical port of a card.
type Interface struct {
	Name           string
	PortNo         int
	InterfaceIndex int
	Partitioned    bool
	Fqdd           string
	Partitions     []*Partition
}

// Card is one canonical ethernet card.
type Card struct {
	Name        string
	FabricType  string
	NicType     string
	Shape       string
	Enabled     bool
	Partitioned bool
	CardIndex   int
	Interfaces  []*Interface

	// Physical is the matched NIC group, set by Match.
	Physical *nicview.NicGroup
}

// PartitionCount returns the partition count shared by all interfaces of the
// card. Interfaces disagreeing on partition count is a modeling error.
func (c *Card) PartitionCount() (int, error) {
	if len(c.Interfaces) == 0 {
		return 0, nil
	}
	n := len(c.Interfaces[0].Partitions)
	for _, iface := range c.Interfaces[1:] {
		if len(iface.Partitions) != n {
			return 0, &StructuralError{
				Msg: "interfaces of card " + c.Name + " disagree on partition count",
			}
		}
	}
	return n, nil
}

// Model is the canonical network-configuration tree for one server. It is a
// single-owner, single-threaded object: created once from the raw logical
// configuration and mutated only by Match and ResetVolatile.
type Model struct {
	ID              string
	Cards           []*Card
	HasFibreChannel bool

	fcRaw   []json.RawMessage
	matched bool
}

// Matched reports whether hardware matching has completed successfully.
func (m *Model) Matched() bool {
	return m.matched
}

// Partitions walks all partitions of all cards in canonical order.
func (m *Model) Partitions() []*Partition {
	var out []*Partition
	for _, card := range m.Cards {
		for _, iface := range card.Interfaces {
			out = append(out, iface.Partitions...)
		}
	}
	return out
}

// NetworksOfType returns the distinct networks of the given category across
// all partitions, in first-seen order.
func (m *Model) NetworksOfType(netType string) []Network {
	var out []Network
	seen := map[string]bool{}
	for _, partition := range m.Partitions() {
		for _, network := range partition.Networks {
			if network.Type != netType {
				continue
			}
			key := networkKey(network)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, network)
		}
	}
	return out
}

// SingleNetwork returns the one network of a category that must be singular,
// nil when absent, and a PreconditionError when more than one exists.
func (m *Model) SingleNetwork(netType string) (*Network, error) {
	networks := m.NetworksOfType(netType)
	switch len(networks) {
	case 0:
		return nil, nil
	case 1:
		return &networks[0], nil
	}
	return nil, &PreconditionError{
		Msg: "expected a single network of type " + netType + " but found several",
	}
}

// ResetVolatile blanks the physical identifiers written by Match so the tree
// can be re-matched against a fresh inventory.
func (m *Model) ResetVolatile() {
	for _, card := range m.Cards {
		card.Physical = nil
		for _, iface := range card.Interfaces {
			iface.Fqdd = ""
			for _, partition := range iface.Partitions {
				partition.Fqdd = ""
				partition.MacAddress = ""
			}
		}
	}
	m.matched = false
}
