// Package earning provides the append-only courier earnings ledger rows.
//
// An Earning is written exactly once, as a side effect of a successful
// delivery, as an incentive grant, or as an additive correction. Rows are
// never mutated or deleted afterwards; mistakes are compensated with new
// adjustment rows.
package earning
