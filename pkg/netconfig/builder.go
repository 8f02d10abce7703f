package netconfig

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/metalkit/netrecon/pkg/defaults"
	"github.com/metalkit/netrecon/pkg/nicview"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

var trailingNumber = regexp.MustCompile(`(\d+)\s*$`)

// parseTrailingNumber extracts the numeric suffix of a human-readable
// port/partition name such as "Port 2" or "Partition 1".
func parseTrailingNumber(field, name string) (int, error) {
	match := trailingNumber.FindStringSubmatch(name)
	if match == nil {
		return 0, &ParseError{Field: field, Value: name, Reason: "no trailing number"}
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, &ParseError{Field: field, Value: name, Reason: err.Error()}
	}
	return n, nil
}

// Build produces the canonical Card -> Interface -> Partition tree from the
// raw logical configuration. Disabled fabrics are dropped; enabled
// fibre-channel fabrics only set the HasFibreChannel flag and are retained
// raw for projection. Card, interface and partition indices are global
// running counters assigned in build order and never reassigned later.
func Build(cfg *RawConfig) (*Model, error) {
	m := &Model{ID: cfg.ID}
	if m.ID == "" {
		m.ID = uuid.NewV4().String()
	}
	cardIndex, interfaceIndex, partitionIndex := 0, 0, 0
	for _, fabric := range cfg.Fabrics {
		if !fabric.Enabled {
			log.Debugf("skipping disabled fabric %s", fabric.Name)
			continue
		}
		if fabric.FabricType == defaults.FabricTypeFC {
			m.HasFibreChannel = true
			m.fcRaw = append(m.fcRaw, fabric.raw)
			continue
		}
		shape := strings.TrimSpace(fabric.NicType)
		if shape == "" {
			shape = defaults.UnknownShape
		}
		policy := nicview.PolicyFor(shape)
		card := &Card{
			Name:        fabric.Name,
			FabricType:  fabric.FabricType,
			NicType:     fabric.NicType,
			Shape:       shape,
			Enabled:     fabric.Enabled,
			Partitioned: fabric.Partitioned,
			CardIndex:   cardIndex,
		}
		cardIndex++
		for _, rawIface := range fabric.Interfaces {
			port, err := parseTrailingNumber("port name", rawIface.Name)
			if err != nil {
				return nil, err
			}
			if port > policy.UsablePorts {
				log.Debugf("dropping %s %s: beyond the %d usable ports of %s",
					card.Name, rawIface.Name, policy.UsablePorts, shape)
				continue
			}
			iface := &Interface{
				Name:           rawIface.Name,
				PortNo:         port,
				InterfaceIndex: interfaceIndex,
				Partitioned:    fabric.Partitioned || rawIface.Partitioned,
				Fqdd:           rawIface.Fqdd,
			}
			interfaceIndex++
			for _, rawPartition := range rawIface.Partitions {
				n, err := parseTrailingNumber("partition name", rawPartition.Name)
				if err != nil {
					return nil, err
				}
				if n != 1 && (!iface.Partitioned || n > policy.MaxPartitions) {
					log.Debugf("dropping %s %s %s", card.Name, rawIface.Name, rawPartition.Name)
					continue
				}
				iface.Partitions = append(iface.Partitions, &Partition{
					Name:           rawPartition.Name,
					PortNo:         port,
					PartitionNo:    n,
					PartitionIndex: partitionIndex,
					Networks:       copyNetworks(rawPartition.Networks),
					Fqdd:           rawPartition.Fqdd,
					MacAddress:     rawPartition.MacAddress,
				})
				partitionIndex++
			}
			card.Interfaces = append(card.Interfaces, iface)
		}
		m.Cards = append(m.Cards, card)
	}
	log.Debugf("built model %s: %d cards, %d interfaces, %d partitions",
		m.ID, cardIndex, interfaceIndex, partitionIndex)
	return m, nil
}
