package nicview_test

import (
	"fmt"
	"testing"

	"github.com/metalkit/netrecon/pkg/nicview"
	"github.com/stretchr/testify/assert"
)

func portsWithSpeeds(speeds ...int) []nicview.PortRecord {
	ports := make([]nicview.PortRecord, 0, len(speeds))
	for i, speed := range speeds {
		ports = append(ports, nicview.PortRecord{
			FQDD:      fmt.Sprintf("NIC.Integrated.1-%d-1", i+1),
			LinkSpeed: speed,
		})
	}
	return ports
}

func TestClassifyShape(t *testing.T) {
	t.Parallel()

	testMatrix := map[string]struct {
		ports  []nicview.PortRecord
		bios   nicview.BIOSInfo
		expect string
	}{
		"two-10g": {
			ports:  portsWithSpeeds(nicview.Speed10Gb, nicview.Speed10Gb),
			expect: "2x10Gb",
		},
		"four-10g": {
			ports:  portsWithSpeeds(nicview.Speed10Gb, nicview.Speed10Gb, nicview.Speed10Gb, nicview.Speed10Gb),
			expect: "4x10Gb",
		},
		"combo": {
			ports:  portsWithSpeeds(nicview.Speed10Gb, nicview.Speed10Gb, nicview.Speed1Gb, nicview.Speed1Gb),
			expect: "2x10Gb,2x1Gb",
		},
		"alternating-speeds": {
			ports:  portsWithSpeeds(nicview.Speed10Gb, nicview.Speed1Gb, nicview.Speed10Gb, nicview.Speed1Gb),
			expect: "1x10Gb,1x1Gb,1x10Gb,1x1Gb",
		},
		"vendor-fallback": {
			ports: []nicview.PortRecord{
				{FQDD: "NIC.Slot.2-1-1", Vendor: "Broadcom Corp", Product: "BCM57800 10 Gigabit Ethernet"},
				{FQDD: "NIC.Slot.2-2-1", Vendor: "Broadcom Corp", Product: "BCM57800 10 Gigabit Ethernet"},
			},
			expect: "2x10Gb,2x1Gb",
		},
		"bios-fallback": {
			ports: []nicview.PortRecord{
				{FQDD: "NIC.Slot.3-1-1"},
				{FQDD: "NIC.Slot.3-2-1"},
			},
			bios:   nicview.BIOSInfo{"NIC.Slot.3": "25Gb"},
			expect: "2x25Gb",
		},
		"unclassifiable": {
			ports: []nicview.PortRecord{
				{FQDD: "NIC.Slot.5-1-1", Vendor: "Acme", Product: "Mystery NIC"},
			},
			expect: "unknown",
		},
		"no-ports": {
			expect: "unknown",
		},
	}

	for name, test := range testMatrix {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expect, nicview.ClassifyShape(test.ports, test.bios))
			// classification is pure: a second pass yields the same label
			assert.Equal(t, test.expect, nicview.ClassifyShape(test.ports, test.bios))
		})
	}
}

func TestPolicyFor(t *testing.T) {
	t.Parallel()

	testMatrix := map[string]struct {
		shape  string
		expect nicview.Policy
	}{
		"two-10g":     {shape: "2x10Gb", expect: nicview.Policy{UsablePorts: 2, MaxPartitions: 4}},
		"four-10g":    {shape: "4x10Gb", expect: nicview.Policy{UsablePorts: 4, MaxPartitions: 4}},
		"combo":       {shape: "2x10Gb,2x1Gb", expect: nicview.Policy{UsablePorts: 4, MaxPartitions: 4}},
		"gigabit":     {shape: "2x1Gb", expect: nicview.Policy{UsablePorts: 2, MaxPartitions: 1}},
		"quad-1g":     {shape: "4x1Gb", expect: nicview.Policy{UsablePorts: 4, MaxPartitions: 1}},
		"twenty-five": {shape: "2x25Gb", expect: nicview.Policy{UsablePorts: 2, MaxPartitions: 4}},
		"unknown":     {shape: "unknown", expect: nicview.Policy{UsablePorts: 1, MaxPartitions: 4}},
	}

	for name, test := range testMatrix {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expect, nicview.PolicyFor(test.shape))
		})
	}
}

func TestPolicyOverride(t *testing.T) {
	nicview.RegisterPolicy("2x100Gb", nicview.Policy{UsablePorts: 2, MaxPartitions: 8})
	assert.Equal(t, nicview.Policy{UsablePorts: 2, MaxPartitions: 8}, nicview.PolicyFor("2x100Gb"))
}
