package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/koinly-tools/networth"
)

type exportCmd struct {
	token  string
	output string
}

func (*exportCmd) Name() string { return "export" }
func (*exportCmd) Synopsis() string {
	return "export a token's price map as a Koinly custom-price CSV"
}
func (*exportCmd) Usage() string {
	return `nwt export -token <code> [-o <output.csv>]

  Writes the daily price map of one configured token as a custom-price CSV
  (Date,Rate). Chained tokens are the usual candidates: the aggregator has no
  source for them, so the derived series is uploaded as custom prices.

Usage Examples:
# Export the derived MAG/USD series.
$ nwt export -token "MAG;8678551" -o mag_usd_custom_prices.csv

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "token", "", "Token code to export, as it appears in the export.")
	f.StringVar(&c.output, "o", "custom_prices.csv", "Custom-price file to write.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.token == "" {
		fmt.Fprintln(os.Stderr, "missing -token")
		return subcommands.ExitUsageError
	}

	_, market, err := LoadMarket()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	if err := networth.ExportCustomPrices(out, market, c.token); err != nil {
		out.Close()
		os.Remove(c.output)
		fmt.Fprintf(os.Stderr, "Error exporting prices for %q: %v\n", c.token, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully wrote custom prices for %s to %s\n", c.token, c.output)
	return subcommands.ExitSuccess
}
