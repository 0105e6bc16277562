// Package services contains the domain services of the procurement pipeline:
// the pure multi-criteria scoring engine, the supplier matcher, the quote
// evaluator, and the decision gate that turns a confident recommendation into
// a finalized selection.
package services
