package nicview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metalkit/netrecon/pkg/defaults"
	"github.com/metalkit/netrecon/pkg/utils"
	log "github.com/sirupsen/logrus"
)

var speedLabels = map[int]string{
	Speed10Mb:   "10Mb",
	Speed100Mb:  "100Mb",
	Speed1Gb:    "1Gb",
	Speed2500Mb: "2.5Gb",
	Speed10Gb:   "10Gb",
	Speed20Gb:   "20Gb",
	Speed40Gb:   "40Gb",
	Speed100Gb:  "100Gb",
	Speed25Gb:   "25Gb",
	Speed50Gb:   "50Gb",
}

// productShapes maps known controller families to their shape when the NIC
// view reports no usable link speed. Matched by substring on vendor+product.
var productShapes = []struct {
	vendor  string
	product string
	shape   string
}{
	{"Broadcom", "57800", "2x10Gb,2x1Gb"},
	{"Broadcom", "57810", "2x10Gb"},
	{"Broadcom", "57840", "4x10Gb"},
	{"QLogic", "57800", "2x10Gb,2x1Gb"},
	{"QLogic", "57810", "2x10Gb"},
	{"QLogic", "57840", "4x10Gb"},
	{"Intel", "X520", "2x10Gb"},
	{"Intel", "X710", "4x10Gb"},
	{"Intel", "I350", "4x1Gb"},
	{"Intel", "X540", "2x10Gb,2x1Gb"},
}

// ClassifyShape derives the card-shape label for the ordered port sequence of
// one physical card, e.g. "2x10Gb" or "2x10Gb,2x1Gb" for combo cards.
// Consecutive ports with equal link speed form one run; each run becomes
// "<count>x<bandwidth>". When no port reports a link speed the BIOS
// enumeration and then the vendor/product tables are consulted; if nothing
// applies the sentinel "unknown" is returned.
func ClassifyShape(ports []PortRecord, bios BIOSInfo) string {
	known := false
	for _, p := range ports {
		if _, ok := speedLabels[p.LinkSpeed]; ok {
			known = true
			break
		}
	}
	if !known {
		return classifyWithoutSpeeds(ports, bios)
	}
	runs := utils.SplitRuns(ports, func(prev, cur PortRecord) bool {
		return prev.LinkSpeed != cur.LinkSpeed
	})
	labels := make([]string, 0, len(runs))
	for _, run := range runs {
		band, ok := speedLabels[run[0].LinkSpeed]
		if !ok {
			band = defaults.UnknownShape
		}
		labels = append(labels, fmt.Sprintf("%dx%s", len(run), band))
	}
	return strings.Join(labels, ",")
}

func classifyWithoutSpeeds(ports []PortRecord, bios BIOSInfo) string {
	if len(ports) == 0 {
		return defaults.UnknownShape
	}
	first := ports[0]
	if band, ok := biosBandwidth(first.FQDD, bios); ok {
		return fmt.Sprintf("%dx%s", len(ports), band)
	}
	for _, entry := range productShapes {
		if strings.Contains(first.Vendor, entry.vendor) && strings.Contains(first.Product, entry.product) {
			return entry.shape
		}
	}
	log.Debugf("cannot classify card %s (%s %s)", first.FQDD, first.Vendor, first.Product)
	return defaults.UnknownShape
}

func biosBandwidth(id string, bios BIOSInfo) (string, bool) {
	for prefix, band := range bios {
		if strings.HasPrefix(id, prefix) {
			return band, true
		}
	}
	return "", false
}

// Policy carries the per-shape constants consumed by the canonical builder
// and the matcher.
type Policy struct {
	UsablePorts   int `mapstructure:"usable-ports" yaml:"usable-ports"`
	MaxPartitions int `mapstructure:"max-partitions" yaml:"max-partitions"`
}

var policyOverrides = map[string]Policy{}

// RegisterPolicy overrides the derived policy for a shape label. Used for
// site-specific card models supplied through configuration.
func RegisterPolicy(shape string, p Policy) {
	policyOverrides[shape] = p
}

// PolicyFor resolves the policy for a shape label. Parseable labels derive
// their port count from the run counts and cap partitions at 1 for cards
// without a 10Gb-or-faster run; unparseable labels fall back to the
// defaults.
func PolicyFor(shape string) Policy {
	if p, ok := policyOverrides[shape]; ok {
		return p
	}
	ports := 0
	fast := false
	for _, run := range strings.Split(shape, ",") {
		count, band, ok := parseRunLabel(run)
		if !ok {
			return Policy{UsablePorts: defaults.DefaultUsablePorts, MaxPartitions: defaults.DefaultMaxPartitions}
		}
		ports += count
		if bandwidthGb(band) >= 10 {
			fast = true
		}
	}
	partitions := 1
	if fast {
		partitions = defaults.DefaultMaxPartitions
	}
	return Policy{UsablePorts: ports, MaxPartitions: partitions}
}

func parseRunLabel(run string) (int, string, bool) {
	parts := strings.SplitN(run, "x", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count <= 0 {
		return 0, "", false
	}
	return count, parts[1], true
}

func bandwidthGb(band string) float64 {
	switch {
	case strings.HasSuffix(band, "Gb"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(band, "Gb"), 64)
		if err != nil {
			return 0
		}
		return v
	case strings.HasSuffix(band, "Mb"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(band, "Mb"), 64)
		if err != nil {
			return 0
		}
		return v / 1000
	}
	return 0
}
