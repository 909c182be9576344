// Package cmd implements the CLI application to fill missing net-worth
// values in a transaction export.
package cmd

import (
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/koinly-tools/networth"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "ledger")

	c.Register(&coverageCmd{}, "prices")
	c.Register(&exportCmd{}, "prices")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the token configuration file (JSON).\n If missing it will read the environment variable \"NWT_CONFIG\", then fall back to networth.json.")

func configPath() string {
	if *configFile != "" {
		return *configFile
	}
	if env := os.Getenv("NWT_CONFIG"); env != "" {
		return env
	}
	return "networth.json"
}

// LoadMarket loads the configuration and builds every configured price map.
func LoadMarket() (*networth.Config, *networth.Market, error) {
	cfg, err := networth.LoadConfig(configPath())
	if err != nil {
		return nil, nil, err
	}
	market, err := networth.BuildMarket(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, market, nil
}
