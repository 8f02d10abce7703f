package netconfig_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/metalkit/netrecon/pkg/netconfig"
	"github.com/metalkit/netrecon/pkg/nicview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inventory builds the flat record sequence of one card: nPorts ports with
// nPartitions partitions each.
func inventory(prefix string, nPorts, nPartitions, speed int) []nicview.PortRecord {
	var records []nicview.PortRecord
	for port := 1; port <= nPorts; port++ {
		for n := 1; n <= nPartitions; n++ {
			records = append(records, nicview.PortRecord{
				FQDD:         fmt.Sprintf("%s-%d-%d", prefix, port, n),
				CurrentMAC:   fmt.Sprintf("00:0e:1e:%02d:%02d:01", port, n),
				PermanentMAC: fmt.Sprintf("00:0e:1e:%02d:%02d:02", port, n),
				LinkSpeed:    speed,
				Status:       "Enabled",
			})
		}
	}
	return records
}

func poolOf(t *testing.T, records []nicview.PortRecord) *nicview.Pool {
	t.Helper()
	groups, err := nicview.BuildGroups(records, nil)
	require.NoError(t, err)
	return nicview.NewPool(groups)
}

func TestMatchByShape(t *testing.T) {
	t.Parallel()

	m, err := netconfig.Build(twoPortConfig())
	require.NoError(t, err)
	pool := poolOf(t, inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb))

	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{}))
	assert.True(t, m.Matched())
	assert.Equal(t, 0, pool.Len())

	card := m.Cards[0]
	require.NotNil(t, card.Physical)
	assert.Equal(t, "NIC.Integrated.1", card.Physical.Prefix)
	assert.Equal(t, "NIC.Integrated.1-1-1", card.Interfaces[0].Fqdd)
	assert.Equal(t, "NIC.Integrated.1-2-2", card.Interfaces[1].Partitions[1].Fqdd)
	assert.Equal(t, "00:0e:1e:01:01:01", card.Interfaces[0].Partitions[0].MacAddress)
}

func TestMatchSkipsGroupsWithTooFewPartitions(t *testing.T) {
	t.Parallel()

	cfg := twoPortConfig()
	// four partitions requested per port
	for i := range cfg.Fabrics[0].Interfaces {
		iface := &cfg.Fabrics[0].Interfaces[i]
		iface.Partitions = nil
		for n := 1; n <= 4; n++ {
			iface.Partitions = append(iface.Partitions,
				netconfig.RawPartition{Name: fmt.Sprintf("Partition %d", n)})
		}
	}
	m, err := netconfig.Build(cfg)
	require.NoError(t, err)

	// shape matches on both, only the slot card reports 4 partitions
	records := append(inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb),
		inventory("NIC.Slot.2", 2, 4, nicview.Speed10Gb)...)
	pool := poolOf(t, records)

	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{}))
	assert.Equal(t, "NIC.Slot.2", m.Cards[0].Physical.Prefix)
}

func TestMatchSkipsDisabledGroups(t *testing.T) {
	t.Parallel()

	m, err := netconfig.Build(twoPortConfig())
	require.NoError(t, err)

	disabled := inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb)
	for i := range disabled {
		disabled[i].PermanentMAC = ""
	}
	records := append(disabled, inventory("NIC.Slot.2", 2, 2, nicview.Speed10Gb)...)
	pool := poolOf(t, records)

	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{}))
	assert.Equal(t, "NIC.Slot.2", m.Cards[0].Physical.Prefix)
}

func TestMatchByPresuppliedFqdd(t *testing.T) {
	t.Parallel()

	cfg := twoPortConfig()
	cfg.Fabrics[0].Interfaces[0].Fqdd = "NIC.Slot.2-1-1"
	m, err := netconfig.Build(cfg)
	require.NoError(t, err)

	// the integrated card would win on pool order; the FQDD pins slot 2
	records := append(inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb),
		inventory("NIC.Slot.2", 2, 2, nicview.Speed10Gb)...)
	pool := poolOf(t, records)

	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{}))
	assert.Equal(t, "NIC.Slot.2", m.Cards[0].Physical.Prefix)
	assert.Equal(t, 1, pool.Len())
}

func TestMatchSynthesizesPartitions(t *testing.T) {
	t.Parallel()

	// the FQDD pins the card to hardware that is not partitioned yet: one
	// partition per port, fewer than the logical config asks for
	cfg := twoPortConfig()
	cfg.Fabrics[0].Interfaces[0].Fqdd = "NIC.Integrated.1-1-1"
	m, err := netconfig.Build(cfg)
	require.NoError(t, err)
	pool := poolOf(t, inventory("NIC.Integrated.1", 2, 1, nicview.Speed10Gb))

	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{SynthesizePartitions: true}))

	second := m.Cards[0].Interfaces[0].Partitions[1]
	assert.Equal(t, "NIC.Integrated.1-1-2", second.Fqdd)
	assert.Empty(t, second.MacAddress)
}

func TestMatchWithoutSynthesisLeavesPartitionBlank(t *testing.T) {
	t.Parallel()

	cfg := twoPortConfig()
	cfg.Fabrics[0].Interfaces[0].Fqdd = "NIC.Integrated.1-1-1"
	m, err := netconfig.Build(cfg)
	require.NoError(t, err)
	pool := poolOf(t, inventory("NIC.Integrated.1", 2, 1, nicview.Speed10Gb))

	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{}))
	assert.Empty(t, m.Cards[0].Interfaces[0].Partitions[1].Fqdd)
}

func TestMatchAggregatesFailures(t *testing.T) {
	t.Parallel()

	cfg := twoPortConfig()
	cfg.Fabrics = append(cfg.Fabrics, cfg.Fabrics[0])
	cfg.Fabrics[1].Name = "Fabric B"
	m, err := netconfig.Build(cfg)
	require.NoError(t, err)

	// only one compatible card plus one of the wrong shape
	records := append(inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb),
		inventory("NIC.Slot.3", 2, 1, nicview.Speed1Gb)...)
	pool := poolOf(t, records)

	err = netconfig.Match(m, pool, netconfig.MatchOptions{})
	require.Error(t, err)
	var matchErr *netconfig.MatchError
	require.True(t, errors.As(err, &matchErr))
	require.Len(t, matchErr.Unmatched, 1)
	assert.Equal(t, "Fabric B", matchErr.Unmatched[0].Name)
	assert.Equal(t, "2x10Gb", matchErr.Unmatched[0].Shape)
	require.Len(t, matchErr.Remaining, 1)
	assert.Equal(t, "NIC.Slot.3", matchErr.Remaining[0].Prefix)
	assert.Contains(t, err.Error(), "Fabric B (2x10Gb)")
	assert.Contains(t, err.Error(), "NIC.Slot.3")

	// the first card stays matched even though the operation failed
	assert.NotNil(t, m.Cards[0].Physical)
	assert.False(t, m.Matched())
}

func TestMatchReportsEmptyPool(t *testing.T) {
	t.Parallel()

	m, err := netconfig.Build(twoPortConfig())
	require.NoError(t, err)
	pool := nicview.NewPool(nil)

	err = netconfig.Match(m, pool, netconfig.MatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no physical NICs remain")
}

func TestMatchPartitionCountDisagreement(t *testing.T) {
	t.Parallel()

	cfg := twoPortConfig()
	cfg.Fabrics[0].Interfaces[1].Partitions = cfg.Fabrics[0].Interfaces[1].Partitions[:1]
	m, err := netconfig.Build(cfg)
	require.NoError(t, err)
	pool := poolOf(t, inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb))

	err = netconfig.Match(m, pool, netconfig.MatchOptions{})
	require.Error(t, err)
	var structErr *netconfig.StructuralError
	assert.True(t, errors.As(err, &structErr))
}

func TestResetVolatile(t *testing.T) {
	t.Parallel()

	m, err := netconfig.Build(twoPortConfig())
	require.NoError(t, err)
	pool := poolOf(t, inventory("NIC.Integrated.1", 2, 2, nicview.Speed10Gb))
	require.NoError(t, netconfig.Match(m, pool, netconfig.MatchOptions{}))

	m.ResetVolatile()
	assert.False(t, m.Matched())
	for _, card := range m.Cards {
		assert.Nil(t, card.Physical)
		for _, iface := range card.Interfaces {
			assert.Empty(t, iface.Fqdd)
			for _, partition := range iface.Partitions {
				assert.Empty(t, partition.Fqdd)
				assert.Empty(t, partition.MacAddress)
			}
		}
	}
}
