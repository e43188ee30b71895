// Package invdash is a portfolio accounting and rebalancing engine. It keeps
// a chronological ledger of buy, sell and dividend transactions, tracks the
// resulting purchase lots per security using FIFO cost basis, and derives
// from them everything a dashboard needs:
//
//   - Lot book: per-security FIFO inventory with realized profit and loss on
//     every sale, computed exactly with decimal arithmetic.
//   - Rebalancing: compares current portfolio weights to target allocations
//     and emits a deterministic, thresholded trade list.
//   - Performance: daily returns, Sharpe ratio, and benchmark-relative
//     return from price history.
//   - Market data: a deterministic price simulator (a pure function of
//     ticker and date) plus an interchangeable live-feed adapter.
//
// All computations are synchronous and operate on already-fetched data, so
// results are reproducible and directly testable. The engine produces exact
// decimal values and stable orderings, making its JSON output deterministic.
//
// This package is the foundation of the `invdash` command-line tool.
package invdash
