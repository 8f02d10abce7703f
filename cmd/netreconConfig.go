package cmd

import (
	"fmt"

	"github.com/metalkit/netrecon/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configCmd = &cobra.Command{
	Use: "config",
}

// configInitCmd writes the default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default netrecon.yml",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile
		if path == "" {
			var err error
			path, err = config.DefaultConfigPath()
			if err != nil {
				log.Fatal(err)
			}
		}
		if err := config.Write(config.Default(), path); err != nil {
			log.Fatalf("write config: %s", err)
		}
		log.Infof("wrote default config to %s", path)
	},
}

// configGetCmd prints the resolved configuration
var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the resolved configuration",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("serialize config: %s", err)
		}
		fmt.Print(string(data))
	},
}

func configInit() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
}
