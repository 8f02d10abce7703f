package netconfig

import (
	"github.com/metalkit/netrecon/pkg/fqdd"
	"github.com/metalkit/netrecon/pkg/nicview"
	log "github.com/sirupsen/logrus"
)

// MatchOptions control the hardware-matching pass.
type MatchOptions struct {
	// SynthesizePartitions derives identifiers for logical partitions the
	// hardware does not report yet, by rewriting the trailing partition
	// segment of the port's first-partition FQDD.
	SynthesizePartitions bool
}

// Match pairs every canonical card with exactly one physical NIC group from
// the pool and writes the physical identifiers into the tree. The pool is
// consumed destructively: a matched group is removed before the next card is
// considered, so matching walks cards strictly in canonical order.
//
// Cards that find no group are collected and reported together in a single
// MatchError after every card was attempted; everything that did match stays
// written into the tree.
func Match(m *Model, pool *nicview.Pool, opts MatchOptions) error {
	var unmatched []UnmatchedCard
	for _, card := range m.Cards {
		group, err := findGroup(card, pool)
		if err != nil {
			return err
		}
		if group == nil {
			log.Debugf("no physical NIC for card %s (%s)", card.Name, card.Shape)
			unmatched = append(unmatched, UnmatchedCard{Name: card.Name, Shape: card.Shape})
			continue
		}
		if err := assignIdentifiers(card, group, opts); err != nil {
			return err
		}
		card.Physical = group
	}
	if len(unmatched) > 0 {
		matchErr := &MatchError{Unmatched: unmatched}
		for _, g := range pool.Remaining() {
			matchErr.Remaining = append(matchErr.Remaining, RemainingGroup{
				Prefix:   g.Prefix,
				Shape:    g.Shape(),
				Disabled: g.Disabled(),
			})
		}
		return matchErr
	}
	m.matched = true
	return nil
}

// findGroup locates the physical group for a card: by FQDD prefix when the
// first interface carries a pre-supplied FQDD, otherwise by shape and
// partition capacity.
func findGroup(card *Card, pool *nicview.Pool) (*nicview.NicGroup, error) {
	if len(card.Interfaces) > 0 && card.Interfaces[0].Fqdd != "" {
		prefix, err := fqdd.Prefix(card.Interfaces[0].Fqdd)
		if err != nil {
			return nil, err
		}
		return pool.Take(func(g *nicview.NicGroup) bool { return g.Prefix == prefix }), nil
	}
	want, err := card.PartitionCount()
	if err != nil {
		return nil, err
	}
	for _, g := range pool.Remaining() {
		if g.Disabled() || g.Shape() != card.Shape {
			continue
		}
		have, err := g.NPartitions()
		if err != nil {
			return nil, err
		}
		if have < want {
			log.Debugf("skipping %s for card %s: %d partitions < %d",
				g.Prefix, card.Name, have, want)
			continue
		}
		taken := g
		return pool.Take(func(candidate *nicview.NicGroup) bool { return candidate == taken }), nil
	}
	return nil, nil
}

// assignIdentifiers copies FQDD and MAC address from the matched group onto
// every canonical partition, synthesizing identifiers for partitions the
// hardware does not report when the caller opted in.
func assignIdentifiers(card *Card, group *nicview.NicGroup, opts MatchOptions) error {
	for _, iface := range card.Interfaces {
		for _, partition := range iface.Partitions {
			phys := group.FindPartition(partition.PortNo, partition.PartitionNo)
			if phys != nil {
				partition.Fqdd = phys.FQDD
				partition.MacAddress = phys.CurrentMAC
				continue
			}
			if partition.PartitionNo > 1 && opts.SynthesizePartitions {
				synth, err := synthesizeFqdd(group, partition)
				if err != nil {
					return err
				}
				partition.Fqdd = synth
			}
		}
		if len(iface.Partitions) > 0 {
			iface.Fqdd = iface.Partitions[0].Fqdd
		}
	}
	return nil
}

// synthesizeFqdd derives an identifier for a partition the hardware does not
// report yet, from the first partition of the same port. A donor FQDD that
// does not re-parse cleanly is a fatal parse error rather than a best-effort
// rewrite.
func synthesizeFqdd(group *nicview.NicGroup, partition *Partition) (string, error) {
	donor := group.FindPartition(partition.PortNo, 1)
	if donor == nil {
		return "", &StructuralError{
			Msg: "group " + group.Prefix + " has no partition 1 to derive " + partition.Name + " from",
		}
	}
	id, err := fqdd.Parse(donor.FQDD)
	if err != nil {
		return "", err
	}
	return id.WithPartition(partition.PartitionNo).String(), nil
}
