package netconfig

import (
	"sort"
	"strings"

	"github.com/metalkit/netrecon/pkg/defaults"
)

// Team groups attached networks that are served by an identical set of MAC
// addresses. Teams are how NIC bonding opportunities are discovered from a
// matched model.
type Team struct {
	Networks     []Network `json:"networks"`
	MacAddresses []string  `json:"macAddresses"`
}

// TeamOptions control team derivation.
type TeamOptions struct {
	// IncludePXE keeps PXE-category networks in the team computation;
	// they are excluded by default.
	IncludePXE bool
}

// Teams groups the distinct attached networks of the matched model by the
// exact MAC-address set serving each of them. Requires Match to have run.
func (m *Model) Teams(opts TeamOptions) ([]Team, error) {
	if !m.matched {
		return nil, &PreconditionError{
			Msg: "NIC MAC address information is not populated yet; run Match first",
		}
	}
	partitions := m.Partitions()

	var networks []Network
	seen := map[string]bool{}
	for _, partition := range partitions {
		for _, network := range partition.Networks {
			if network.Type == defaults.NetworkTypePXE && !opts.IncludePXE {
				continue
			}
			key := networkKey(network)
			if seen[key] {
				continue
			}
			seen[key] = true
			networks = append(networks, network)
		}
	}

	teams := []Team{}
	teamIndex := map[string]int{}
	for _, network := range networks {
		macs := macsServing(network, partitions)
		if len(macs) == 0 {
			continue
		}
		key := strings.Join(macs, ",")
		if i, ok := teamIndex[key]; ok {
			teams[i].Networks = append(teams[i].Networks, network)
			continue
		}
		teamIndex[key] = len(teams)
		teams = append(teams, Team{Networks: []Network{network}, MacAddresses: macs})
	}
	return teams, nil
}

// macsServing returns the sorted distinct MAC addresses of all partitions
// carrying the given network id.
func macsServing(network Network, partitions []*Partition) []string {
	seen := map[string]bool{}
	var macs []string
	for _, partition := range partitions {
		if partition.MacAddress == "" {
			continue
		}
		for _, attached := range partition.Networks {
			if attached.ID != network.ID {
				continue
			}
			if !seen[partition.MacAddress] {
				seen[partition.MacAddress] = true
				macs = append(macs, partition.MacAddress)
			}
			break
		}
	}
	sort.Strings(macs)
	return macs
}
