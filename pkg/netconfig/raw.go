package netconfig

import (
	"encoding/json"
	"fmt"
)

// RawConfig is the logical network configuration as authored by the user.
// The top-level "interfaces" list holds one entry per fabric (card); blade
// and rack topologies share this shape.
type RawConfig struct {
	ID      string      `json:"id,omitempty"`
	Fabrics []RawFabric `json:"interfaces"`
}

// RawFabric is one top-level card descriptor. FabricType "fc" marks fibre
// channel; everything else is treated as ethernet. The original JSON of the
// entry is retained so fibre-channel fabrics can be round-tripped untouched.
type RawFabric struct {
	Name        string         `json:"name,omitempty"`
	Enabled     bool           `json:"enabled"`
	FabricType  string         `json:"fabrictype"`
	NicType     string         `json:"nictype,omitempty"`
	Partitioned bool           `json:"partitioned,omitempty"`
	Interfaces  []RawInterface `json:"interfaces,omitempty"`

	raw json.RawMessage
}

// RawInterface is one port of a fabric. Port identity is encoded only in the
// human-readable name ("Port N").
type RawInterface struct {
	Name           string         `json:"name"`
	InterfaceIndex *int           `json:"interface_index,omitempty"`
	Partitioned    bool           `json:"partitioned,omitempty"`
	Fqdd           string         `json:"fqdd,omitempty"`
	Partitions     []RawPartition `json:"partitions"`
}

// RawPartition is one partition of a port ("Partition N").
type RawPartition struct {
	Name           string    `json:"name"`
	PartitionIndex *int      `json:"partition_index,omitempty"`
	Fqdd           string    `json:"fqdd,omitempty"`
	MacAddress     string    `json:"mac_address,omitempty"`
	Networks       []Network `json:"networkObjects,omitempty"`
}

// Network is an attached-network descriptor.
type Network struct {
	ID           string               `json:"id"`
	Name         string               `json:"name,omitempty"`
	Type         string               `json:"type"`
	Static       bool                 `json:"static"`
	StaticConfig *StaticNetworkConfig `json:"staticNetworkConfiguration,omitempty"`
}

// StaticNetworkConfig is the IP sub-record of a static network. The IPRange
// field varies between otherwise-identical networks and is stripped by the
// builder before any uniqueness comparison.
type StaticNetworkConfig struct {
	IPAddress string   `json:"ipAddress,omitempty"`
	Gateway   string   `json:"gateway,omitempty"`
	Subnet    string   `json:"subnet,omitempty"`
	IPRange   *IPRange `json:"ipRange,omitempty"`
}

// IPRange is an address range inside a static network configuration.
type IPRange struct {
	StartingIP string `json:"startingIp,omitempty"`
	EndingIP   string `json:"endingIp,omitempty"`
}

// ParseConfig decodes a logical configuration from JSON, keeping the raw
// bytes of every fabric entry for lossless fibre-channel round-trips.
func ParseConfig(data []byte) (*RawConfig, error) {
	var envelope struct {
		ID      string            `json:"id"`
		Fabrics []json.RawMessage `json:"interfaces"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &ParseError{Field: "config", Value: "<json>", Reason: err.Error()}
	}
	cfg := &RawConfig{ID: envelope.ID}
	for i, raw := range envelope.Fabrics {
		var fabric RawFabric
		if err := json.Unmarshal(raw, &fabric); err != nil {
			return nil, &ParseError{
				Field:  "fabric",
				Value:  fmt.Sprintf("interfaces[%d]", i),
				Reason: err.Error(),
			}
		}
		fabric.raw = raw
		cfg.Fabrics = append(cfg.Fabrics, fabric)
	}
	return cfg, nil
}

// copyNetwork deep-copies a network and drops the transient address range.
func copyNetwork(n Network) Network {
	out := n
	if n.StaticConfig != nil {
		sc := *n.StaticConfig
		sc.IPRange = nil
		out.StaticConfig = &sc
	}
	return out
}

func copyNetworks(networks []Network) []Network {
	if networks == nil {
		return nil
	}
	out := make([]Network, 0, len(networks))
	for _, n := range networks {
		out = append(out, copyNetwork(n))
	}
	return out
}

// networkKey is the uniqueness key of a network: its full value with the
// address range already stripped.
func networkKey(n Network) string {
	data, err := json.Marshal(copyNetwork(n))
	if err != nil {
		// Network is a plain value type, marshaling cannot fail
		return n.ID
	}
	return string(data)
}
