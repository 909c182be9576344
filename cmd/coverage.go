package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/koinly-tools/networth"
)

type coverageCmd struct{}

func (*coverageCmd) Name() string { return "coverage" }
func (*coverageCmd) Synopsis() string {
	return "show the date range covered by each configured price source"
}
func (*coverageCmd) Usage() string {
	return `nwt coverage

  Builds every configured price map and shows, per token, the number of
  priced days and the first and last covered date. Useful to understand in
  advance which rows an update run will be able to fill.

`
}

func (c *coverageCmd) SetFlags(f *flag.FlagSet) {}

func (c *coverageCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	_, market, err := LoadMarket()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(networth.CoverageMarkdown(market))
	return subcommands.ExitSuccess
}
