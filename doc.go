// Package holdings values a stock portfolio from its ledger.
//
// The package is a stateless engine. It is given a snapshot of the ledger
// (holdings, their buy/sell/dividend transactions, and the latest prices)
// and returns derived values, without any I/O:
//   - FIFO cost matching: CostOfCurrentHoldings and OpenLots find the cost
//     of the shares still held, the oldest shares being sold first, with fees
//     prorated over the shares of each lot.
//   - Holding valuation: Valuate computes quantity, cost basis, market value,
//     unrealized (holding) and total (realized + unrealized) P&L, dividends.
//   - Portfolio summary: Summarize rolls the open holdings up into totals.
//   - Concentration: Concentration breaks the market value down into a few
//     buckets for charts.
//
// Storage, price fetching and rendering live in other packages and in the
// `pcs` command line tool. This package also provides the JSONL ledger
// codec, which is the canonical, human-readable storage format.
//
// The engine never fails on financial data: divisions by zero yield zero,
// over-sold positions are matched as far as possible, and missing prices
// yield a zero market value.
package holdings
