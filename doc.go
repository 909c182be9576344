// Package networth fills missing historical USD valuations in cryptocurrency
// transaction exports.
//
// A Koinly-style export carries a "Net Worth Amount" column that is often
// blank for exotic tokens the aggregator cannot price. This package rebuilds
// those values locally:
//
//   - Price maps: one or more price-history JSON documents (epoch-pair,
//     x/y, or OHLC shape) are loaded into a per-token mapping from calendar
//     date to USD price. A token without a direct USD series can be priced by
//     chaining two series through a shared intermediate asset.
//   - Valuation: each transaction row with a zero net worth is matched
//     against the configured tokens (priced tokens before stablecoins, the
//     "to" side before the "from" side) and filled from the price map at the
//     row's UTC calendar date. Rows that cannot be priced pass through
//     unchanged; no row is ever dropped.
//
// All price maps are built once at startup and are immutable for the rest of
// the run. This package is the foundational logic for the `nwt` command-line
// tool.
package networth
