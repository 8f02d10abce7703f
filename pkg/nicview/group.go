package nicview

import (
	"sort"
	"strings"

	"github.com/metalkit/netrecon/pkg/fqdd"
	"github.com/metalkit/netrecon/pkg/utils"
	log "github.com/sirupsen/logrus"
)

const statusDisabled = "Disabled"

// PhysicalPartition is one partition of a physical port.
type PhysicalPartition struct {
	Identity     fqdd.Identity
	FQDD         string
	CurrentMAC   string
	PermanentMAC string
	Status       string
	LinkSpeed    int
}

// PhysicalPort is the ordered partition sequence of one physical port.
type PhysicalPort struct {
	Number     int
	Partitions []*PhysicalPartition

	group *NicGroup
}

// Group returns the owning card group.
func (p *PhysicalPort) Group() *NicGroup {
	return p.group
}

// MAC returns the current MAC address of the port (its first partition).
func (p *PhysicalPort) MAC() string {
	if len(p.Partitions) == 0 {
		return ""
	}
	return p.Partitions[0].CurrentMAC
}

// Disabled reports whether the port is administratively disabled or carries
// no permanent MAC on any partition.
func (p *PhysicalPort) Disabled() bool {
	for _, part := range p.Partitions {
		if part.Status == statusDisabled {
			return true
		}
	}
	for _, part := range p.Partitions {
		if part.PermanentMAC != "" {
			return false
		}
	}
	return true
}

// NicGroup is one physical card: a contiguous run of ports sharing a card
// prefix. Built once per hardware query response and immutable afterwards;
// the matcher removes matched groups from its pool instead of mutating them.
type NicGroup struct {
	Prefix  string
	Ports   []*PhysicalPort
	Vendor  string
	Product string

	bios  BIOSInfo
	shape string
}

// NewGroup builds one card group from the raw records of a single card,
// validating the ordering invariants. Records may arrive in any order; they
// are sorted by (port, partition) first.
func NewGroup(records []PortRecord, bios BIOSInfo) (*NicGroup, error) {
	if len(records) == 0 {
		return nil, structuralErrorf("cannot build a NIC group from zero port records")
	}
	type parsed struct {
		rec PortRecord
		id  fqdd.Identity
	}
	items := make([]parsed, 0, len(records))
	prefixes := make([]string, 0, 1)
	for _, rec := range records {
		id, err := fqdd.Parse(rec.FQDD)
		if err != nil {
			return nil, err
		}
		if _, ok := utils.FindEleInSlice(prefixes, id.Prefix); !ok {
			prefixes = append(prefixes, id.Prefix)
		}
		items = append(items, parsed{rec: rec, id: id})
	}
	if len(prefixes) > 1 {
		return nil, structuralErrorf("cannot build a single NIC group for multiple cards: %s",
			strings.Join(prefixes, ", "))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].id.Less(items[j].id) })

	group := &NicGroup{
		Prefix:  prefixes[0],
		Vendor:  items[0].rec.Vendor,
		Product: items[0].rec.Product,
		bios:    bios,
	}
	var port *PhysicalPort
	for _, item := range items {
		if port == nil || item.id.Port != port.Number {
			if port != nil && item.id.Port != port.Number+1 {
				last := port.Partitions[len(port.Partitions)-1]
				return nil, structuralErrorf("port out of order between %s and %s",
					last.FQDD, item.rec.FQDD)
			}
			port = &PhysicalPort{Number: item.id.Port, group: group}
			group.Ports = append(group.Ports, port)
			if item.id.Partition != 1 {
				return nil, structuralErrorf("first partition for %s should be 1 but got %d",
					item.rec.FQDD, item.id.Partition)
			}
		} else {
			prev := port.Partitions[len(port.Partitions)-1]
			if item.id.Partition != prev.Identity.Partition+1 {
				return nil, structuralErrorf("partition out of order between %s and %s",
					prev.FQDD, item.rec.FQDD)
			}
		}
		port.Partitions = append(port.Partitions, &PhysicalPartition{
			Identity:     item.id,
			FQDD:         item.rec.FQDD,
			CurrentMAC:   item.rec.CurrentMAC,
			PermanentMAC: item.rec.PermanentMAC,
			Status:       item.rec.Status,
			LinkSpeed:    item.rec.LinkSpeed,
		})
	}
	return group, nil
}

// BuildGroups splits the flat record sequence of one hardware query response
// into card groups, preserving first-seen card order.
func BuildGroups(records []PortRecord, bios BIOSInfo) ([]*NicGroup, error) {
	byPrefix := map[string][]PortRecord{}
	var order []string
	for _, rec := range records {
		prefix, err := fqdd.Prefix(rec.FQDD)
		if err != nil {
			return nil, err
		}
		if _, ok := byPrefix[prefix]; !ok {
			order = append(order, prefix)
		}
		byPrefix[prefix] = append(byPrefix[prefix], rec)
	}
	groups := make([]*NicGroup, 0, len(order))
	for _, prefix := range order {
		group, err := NewGroup(byPrefix[prefix], bios)
		if err != nil {
			return nil, err
		}
		log.Debugf("built NIC group %s (%d ports)", group.Prefix, len(group.Ports))
		groups = append(groups, group)
	}
	return groups, nil
}

// Shape returns the classified card-shape label, computed once.
func (g *NicGroup) Shape() string {
	if g.shape == "" {
		firsts := make([]PortRecord, 0, len(g.Ports))
		for _, port := range g.Ports {
			first := port.Partitions[0]
			firsts = append(firsts, PortRecord{
				FQDD:         first.FQDD,
				CurrentMAC:   first.CurrentMAC,
				PermanentMAC: first.PermanentMAC,
				Vendor:       g.Vendor,
				Product:      g.Product,
				LinkSpeed:    first.LinkSpeed,
			})
		}
		g.shape = ClassifyShape(firsts, g.bios)
	}
	return g.shape
}

// Disabled reports whether every port of the card is disabled.
func (g *NicGroup) Disabled() bool {
	for _, port := range g.Ports {
		if !port.Disabled() {
			return false
		}
	}
	return true
}

// NPartitions returns the partition count shared by all ports, or 1 for an
// empty group. Ports disagreeing on partition count is a modeling
// inconsistency surfaced only when the value is requested.
func (g *NicGroup) NPartitions() (int, error) {
	if len(g.Ports) == 0 {
		return 1, nil
	}
	n := len(g.Ports[0].Partitions)
	for _, port := range g.Ports[1:] {
		if len(port.Partitions) != n {
			return 0, structuralErrorf("ports of %s disagree on partition count: %d vs %d",
				g.Prefix, n, len(port.Partitions))
		}
	}
	return n, nil
}

// FindPartition returns the physical partition with the given port and
// partition numbers, or nil.
func (g *NicGroup) FindPartition(portNo, partitionNo int) *PhysicalPartition {
	for _, port := range g.Ports {
		if port.Number != portNo {
			continue
		}
		for _, part := range port.Partitions {
			if part.Identity.Partition == partitionNo {
				return part
			}
		}
	}
	return nil
}

// Less orders card groups by board placement category (onboard controllers
// first), then card number, then shape label.
func (g *NicGroup) Less(other *NicGroup) bool {
	a := fqdd.Identity{Prefix: g.Prefix}
	b := fqdd.Identity{Prefix: other.Prefix}
	if a.Category() != b.Category() {
		return a.Category() < b.Category()
	}
	if a.CardNumber() != b.CardNumber() {
		return a.CardNumber() < b.CardNumber()
	}
	return g.Shape() < other.Shape()
}
