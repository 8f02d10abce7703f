package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/metalkit/netrecon/pkg/netconfig"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	okmark = "✔"
	xmark  = "✘"
)

var (
	logicalFile string
	hwFile      string
	hwEndpoint  string
	synthesize  bool
	outputFile  string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match the logical network config against the physical NIC inventory",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		rawCfg, err := loadLogicalConfig(logicalFile)
		if err != nil {
			log.Fatalf("loadLogicalConfig: %s", err)
		}
		m, err := netconfig.Build(rawCfg)
		if err != nil {
			log.Fatalf("build canonical model: %s", err)
		}
		source, err := hardwareSource(hwFile, hwEndpoint)
		if err != nil {
			log.Fatal(err)
		}
		pool, err := loadPool(context.Background(), source)
		if err != nil {
			log.Fatalf("load inventory: %s", err)
		}
		matchErr := netconfig.Match(m, pool, netconfig.MatchOptions{
			SynthesizePartitions: synthesize,
		})
		for _, card := range m.Cards {
			if card.Physical != nil {
				fmt.Printf("%s %s (%s) -> %s\n",
					color.GreenString(okmark), card.Name, card.Shape, card.Physical.Prefix)
			} else {
				fmt.Printf("%s %s (%s) -> no physical NIC\n",
					color.RedString(xmark), card.Name, card.Shape)
			}
		}
		if matchErr != nil {
			var aggregate *netconfig.MatchError
			if errors.As(matchErr, &aggregate) {
				for _, g := range aggregate.Remaining {
					fmt.Printf("\tstill available: %s (%s)\n", g.Prefix, g.Shape)
				}
			}
			log.Fatal(matchErr)
		}
		data, err := json.MarshalIndent(m.Project(), "", "  ")
		if err != nil {
			log.Fatalf("serialize projection: %s", err)
		}
		if outputFile == "" {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			log.Fatalf("write %s: %s", outputFile, err)
		}
		log.Infof("wrote matched configuration to %s", outputFile)
	},
}

func reconcileInit() {
	reconcileCmd.Flags().StringVar(&logicalFile, "logical", "", "path to the logical network config JSON")
	reconcileCmd.Flags().StringVar(&hwFile, "hw-file", "", "path to a saved inventory dump instead of querying the endpoint")
	reconcileCmd.Flags().StringVar(&hwEndpoint, "endpoint", "", "hardware-management endpoint override")
	reconcileCmd.Flags().BoolVar(&synthesize, "synthesize-partitions", false, "derive identifiers for partitions the hardware does not report yet")
	reconcileCmd.Flags().StringVarP(&outputFile, "out", "o", "", "write the matched configuration to a file instead of stdout")
	_ = reconcileCmd.MarkFlagRequired("logical")
}
