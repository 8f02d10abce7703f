package defaults

import "time"

const (
	//directories and files
	DefaultNetreconHomeDir  = ".netrecon"    //directory inside HOME directory for configs
	DefaultCurrentDirConfig = "netrecon.yml" //file for search config in current directory
	DefaultConfigEnvPrefix  = "NETRECON"     //prefix for environment variable overrides

	//server
	DefaultServerAddress = "0.0.0.0"
	DefaultServerPort    = 8742

	//hardware query endpoint
	DefaultHardwareTimeout = 30 * time.Second
	DefaultHardwareRetries = 3

	//shape policy fallbacks for card types the classifier cannot parse
	DefaultUsablePorts   = 1
	DefaultMaxPartitions = 4

	//UnknownShape is the sentinel label for unclassifiable cards
	UnknownShape = "unknown"

	//FabricTypeFC marks a fibre-channel fabric in the logical config
	FabricTypeFC = "fc"

	//NetworkTypePXE is the network category excluded from teams by default
	NetworkTypePXE = "PXE"
)
