package netconfig

import "encoding/json"

// PlainModel is the fully-value-typed mirror of a canonical tree, suitable
// for lossless serialization. Interface entries are RawFabric values for
// ethernet cards plus the untouched fibre-channel entries appended at the
// end; physical-group references and parsed identity objects are omitted.
type PlainModel struct {
	ID         string        `json:"id,omitempty"`
	Interfaces []interface{} `json:"interfaces"`
}

// Project renders the model back to its plain form. Building a fresh model
// from the ethernet portion of the result yields an equal canonical tree.
func (m *Model) Project() *PlainModel {
	plain := &PlainModel{ID: m.ID, Interfaces: []interface{}{}}
	for _, card := range m.Cards {
		fabric := RawFabric{
			Name:        card.Name,
			Enabled:     card.Enabled,
			FabricType:  card.FabricType,
			NicType:     card.NicType,
			Partitioned: card.Partitioned,
		}
		for _, iface := range card.Interfaces {
			idx := iface.InterfaceIndex
			rawIface := RawInterface{
				Name:           iface.Name,
				InterfaceIndex: &idx,
				Partitioned:    iface.Partitioned,
				Fqdd:           iface.Fqdd,
			}
			for _, partition := range iface.Partitions {
				pidx := partition.PartitionIndex
				rawIface.Partitions = append(rawIface.Partitions, RawPartition{
					Name:           partition.Name,
					PartitionIndex: &pidx,
					Fqdd:           partition.Fqdd,
					MacAddress:     partition.MacAddress,
					Networks:       copyNetworks(partition.Networks),
				})
			}
			fabric.Interfaces = append(fabric.Interfaces, rawIface)
		}
		plain.Interfaces = append(plain.Interfaces, fabric)
	}
	for _, raw := range m.fcRaw {
		plain.Interfaces = append(plain.Interfaces, json.RawMessage(raw))
	}
	return plain
}
