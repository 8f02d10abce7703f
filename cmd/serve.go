package cmd

import (
	"github.com/metalkit/netrecon/pkg/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveHwFile   string
	serveEndpoint string
	serveAddress  string
	servePort     int
)

// serveCmd exposes the reconcile pipeline over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reconcile API over HTTP",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		source, err := hardwareSource(serveHwFile, serveEndpoint)
		if err != nil {
			log.Fatal(err)
		}
		address := cfg.Server.Address
		if serveAddress != "" {
			address = serveAddress
		}
		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}
		s := &server.Server{
			Address: address,
			Port:    port,
			Source:  source,
		}
		log.Fatal(s.Start())
	},
}

func serveInit() {
	serveCmd.Flags().StringVar(&serveHwFile, "hw-file", "", "path to a saved inventory dump instead of querying the endpoint")
	serveCmd.Flags().StringVar(&serveEndpoint, "endpoint", "", "hardware-management endpoint override")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port override")
}
