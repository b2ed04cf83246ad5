// Package valuation derives the portfolio view from a transaction log and a set
// of quote results.
//
// Apart from TargetBook, everything in this package is a pure function of its
// inputs: the same log, targets and quotes always produce the same view, and
// nothing is mutated in place. Callers own the state (the log, the quote cache)
// and rebuild the view wholesale whenever an input changes.
package valuation
