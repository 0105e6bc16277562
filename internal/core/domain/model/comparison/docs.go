// Package comparison contains the QuotationComparison record: the immutable
// output of one quote evaluation run, holding the score matrix, the
// recommended winner, and the confidence that gates auto-selection.
package comparison
