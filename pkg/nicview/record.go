// Package nicview models the physical NIC inventory reported by a managed
// server's hardware-management interface: raw per-partition port records,
// card-shape classification and per-card grouping with ordering invariants.
package nicview

import "fmt"

// Link-speed codes as reported by the management interface.
const (
	SpeedUnknown = 0
	Speed10Mb    = 1
	Speed100Mb   = 2
	Speed1Gb     = 3
	Speed2500Mb  = 4
	Speed10Gb    = 5
	Speed20Gb    = 6
	Speed40Gb    = 7
	Speed100Gb   = 8
	Speed25Gb    = 9
	Speed50Gb    = 10
)

// PortRecord is one raw entry of the NIC view: a single partition of a single
// physical port, identified by its FQDD.
type PortRecord struct {
	FQDD         string `json:"fqdd"`
	CurrentMAC   string `json:"currentMacAddress"`
	PermanentMAC string `json:"permanentMacAddress"`
	Vendor       string `json:"vendorName"`
	Product      string `json:"productName"`
	LinkSpeed    int    `json:"linkSpeed"`
	Status       string `json:"status"`
}

// BIOSInfo is the BIOS enumeration record set, passed through as opaque
// lookup data. Keys are FQDD prefixes, values are bandwidth labels used to
// disambiguate cards whose NIC view carries no link-speed data.
type BIOSInfo map[string]string

// StructuralError reports a physical inventory that violates the grouping
// invariants (non-contiguous ports or partitions, mixed card prefixes,
// disagreeing partition counts).
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return e.Msg
}

func structuralErrorf(format string, args ...interface{}) *StructuralError {
	return &StructuralError{Msg: fmt.Sprintf(format, args...)}
}
