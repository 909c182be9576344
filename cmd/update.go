package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/koinly-tools/networth"
)

type updateCmd struct {
	input  string
	output string
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "fill missing net worth values in a transaction export"
}
func (*updateCmd) Usage() string {
	return `nwt update [-i <input.csv>] [-o <output.csv>]

  Reads a transaction export, fills the net-worth amount of every row whose
  value is zero or blank and whose "to" or "from" currency is a configured
  token, and writes the annotated export. Rows that cannot be priced pass
  through unchanged; every input row produces exactly one output row.

Usage Examples:
# Enrich the default transactions.csv into networth_updated.csv.
$ nwt update

# Enrich a specific export.
$ nwt update -i koinly-2024.csv -o koinly-2024-priced.csv

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "transactions.csv", "Transaction export to read.")
	f.StringVar(&c.output, "o", "networth_updated.csv", "Annotated export to write.")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg, market, err := LoadMarket()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	in, err := os.Open(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening transaction export %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	report, err := networth.EnrichLedger(in, out, networth.NewValuer(cfg, market))
	if err != nil {
		out.Close()
		os.Remove(c.output) // a partial output file is not valid
		fmt.Fprintf(os.Stderr, "Error updating %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	report.Output = c.output
	printMarkdown(report.Markdown())
	return subcommands.ExitSuccess
}
