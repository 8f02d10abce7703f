package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	inventoryHwFile   string
	inventoryEndpoint string
)

// inventoryCmd lists the classified physical NIC groups of a server
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List the classified physical NIC inventory",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		source, err := hardwareSource(inventoryHwFile, inventoryEndpoint)
		if err != nil {
			log.Fatal(err)
		}
		records, err := source.NicView(context.Background())
		if err != nil {
			log.Fatalf("load inventory: %s", err)
		}
		bios, err := source.BIOSEnumeration(context.Background())
		if err != nil {
			log.Fatalf("load bios enumeration: %s", err)
		}
		pool, err := loadPoolFromRecords(records, bios)
		if err != nil {
			log.Fatalf("group inventory: %s", err)
		}
		fmt.Printf("%s port records across %d cards\n",
			humanize.Comma(int64(len(records))), pool.Len())
		for _, group := range pool.Remaining() {
			state := color.GreenString("enabled")
			if group.Disabled() {
				state = color.RedString("disabled")
			}
			fmt.Printf("%s: %s, %s", group.Prefix, group.Shape(), state)
			if n, err := group.NPartitions(); err == nil {
				fmt.Printf(", %d partition(s) per port", n)
			}
			fmt.Println()
			if group.Vendor != "" || group.Product != "" {
				fmt.Printf("\t%s %s\n", group.Vendor, group.Product)
			}
			for _, port := range group.Ports {
				fmt.Printf("\tport %d: %s\n", port.Number, port.MAC())
			}
		}
	},
}

func inventoryInit() {
	inventoryCmd.Flags().StringVar(&inventoryHwFile, "hw-file", "", "path to a saved inventory dump instead of querying the endpoint")
	inventoryCmd.Flags().StringVar(&inventoryEndpoint, "endpoint", "", "hardware-management endpoint override")
}
