package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/metalkit/netrecon/pkg/netconfig"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	teamsLogicalFile string
	teamsHwFile      string
	teamsEndpoint    string
	teamsIncludePXE  bool
)

// teamsCmd derives NIC teaming groups from a matched model
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Group networks by the MAC addresses serving them",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		rawCfg, err := loadLogicalConfig(teamsLogicalFile)
		if err != nil {
			log.Fatalf("loadLogicalConfig: %s", err)
		}
		m, err := netconfig.Build(rawCfg)
		if err != nil {
			log.Fatalf("build canonical model: %s", err)
		}
		source, err := hardwareSource(teamsHwFile, teamsEndpoint)
		if err != nil {
			log.Fatal(err)
		}
		pool, err := loadPool(context.Background(), source)
		if err != nil {
			log.Fatalf("load inventory: %s", err)
		}
		if err := netconfig.Match(m, pool, netconfig.MatchOptions{}); err != nil {
			log.Fatal(err)
		}
		teams, err := m.Teams(netconfig.TeamOptions{IncludePXE: teamsIncludePXE})
		if err != nil {
			log.Fatal(err)
		}
		data, err := json.MarshalIndent(teams, "", "  ")
		if err != nil {
			log.Fatalf("serialize teams: %s", err)
		}
		fmt.Println(string(data))
	},
}

func teamsInit() {
	teamsCmd.Flags().StringVar(&teamsLogicalFile, "logical", "", "path to the logical network config JSON")
	teamsCmd.Flags().StringVar(&teamsHwFile, "hw-file", "", "path to a saved inventory dump instead of querying the endpoint")
	teamsCmd.Flags().StringVar(&teamsEndpoint, "endpoint", "", "hardware-management endpoint override")
	teamsCmd.Flags().BoolVar(&teamsIncludePXE, "include-pxe", false, "keep PXE networks in the team computation")
	_ = teamsCmd.MarkFlagRequired("logical")
}
