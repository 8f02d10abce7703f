// Package hwquery obtains the raw NIC inventory of a managed server from its
// hardware-management interface. The transport is a black box to the core:
// a Source either returns the complete record set or fails outright.
package hwquery

import (
	"context"
	"encoding/json"

	"github.com/metalkit/netrecon/pkg/nicview"
)

// Source yields the raw NIC view and the BIOS enumeration records of one
// managed server.
type Source interface {
	NicView(ctx context.Context) ([]nicview.PortRecord, error)
	BIOSEnumeration(ctx context.Context) (nicview.BIOSInfo, error)
}

// dump is the serialized inventory shape used by both the HTTP endpoint and
// saved files. A bare JSON array of records is also accepted.
type dump struct {
	NicView         []nicview.PortRecord `json:"nicView"`
	BIOSEnumeration nicview.BIOSInfo     `json:"biosEnumeration,omitempty"`
}

func parseDump(data []byte) (*dump, error) {
	var d dump
	if err := json.Unmarshal(data, &d); err == nil && d.NicView != nil {
		return &d, nil
	}
	var records []nicview.PortRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return &dump{NicView: records}, nil
}
