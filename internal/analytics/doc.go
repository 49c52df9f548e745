// Package analytics derives decision-support tables from a bounded batch
// of venue trade records: daily OHLC bars with moving averages and
// Bollinger bands, buy/sell volume decomposition, cross-product VWAP
// spread analysis with outlier-robust statistics, and a latest-session
// summary across all products.
//
// Every exported operation is a pure function of its inputs. The batch is
// never mutated, nothing is cached, and identical inputs always produce
// identical outputs, so callers may run independent analyses in parallel
// over the same shared batch.
//
// Recoverable conditions (unknown product, insufficient history) are
// returned as typed errors carrying a displayable reason; callers should
// inspect them with errors.As rather than treating them as fatal.
package analytics
