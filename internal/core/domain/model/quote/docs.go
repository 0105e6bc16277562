// Package quote contains the TransportQuote aggregate: a supplier's priced,
// timed bid against a tender. Quotes are immutable after submission except
// for the terminal Selected/Rejected status transition.
package quote
