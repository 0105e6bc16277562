// Package tender contains the TenderRequest aggregate: a time-boxed
// solicitation for supplier bids derived from one transport request. The
// aggregate freezes the request snapshot, the invited supplier list, and the
// evaluation criteria weights at creation time.
package tender
