package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/metalkit/netrecon/pkg/config"
	"github.com/metalkit/netrecon/pkg/hwquery"
	"github.com/metalkit/netrecon/pkg/netconfig"
	"github.com/metalkit/netrecon/pkg/nicview"
	log "github.com/sirupsen/logrus"
)

var (
	configFile string
	verbosity  string

	cfg *config.NetreconConfig
)

// loadConfig resolves the tool configuration and the log level; used from
// every command's PreRunE.
func loadConfig() error {
	level, err := log.ParseLevel(verbosity)
	if err != nil {
		return fmt.Errorf("unknown verbosity %q: %w", verbosity, err)
	}
	log.SetLevel(level)
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("error reading config: %w", err)
	}
	return nil
}

// hardwareSource picks the inventory source: a saved dump file when given,
// otherwise the configured management endpoint.
func hardwareSource(hwFile, endpoint string) (hwquery.Source, error) {
	if hwFile != "" {
		return &hwquery.FileSource{Path: hwFile}, nil
	}
	hw := cfg.Hardware
	if endpoint != "" {
		hw.Endpoint = endpoint
	}
	if hw.Endpoint == "" {
		return nil, fmt.Errorf("no hardware source: set hardware.endpoint in the config or pass --hw-file")
	}
	return hwquery.NewClient(hw), nil
}

// loadPool queries the source and groups the inventory into the match pool.
func loadPool(ctx context.Context, source hwquery.Source) (*nicview.Pool, error) {
	records, err := source.NicView(ctx)
	if err != nil {
		return nil, err
	}
	bios, err := source.BIOSEnumeration(ctx)
	if err != nil {
		return nil, err
	}
	return loadPoolFromRecords(records, bios)
}

func loadPoolFromRecords(records []nicview.PortRecord, bios nicview.BIOSInfo) (*nicview.Pool, error) {
	groups, err := nicview.BuildGroups(records, bios)
	if err != nil {
		return nil, err
	}
	return nicview.NewPool(groups), nil
}

// loadLogicalConfig reads and parses the user-authored logical configuration.
func loadLogicalConfig(path string) (*netconfig.RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read logical config %s: %w", path, err)
	}
	return netconfig.ParseConfig(data)
}
