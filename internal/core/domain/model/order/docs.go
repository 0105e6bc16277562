// Package order contains the TransportOrder aggregate: the post-selection
// order created from exactly one winning quote, carrying pricing, tracking,
// and generated documents through the Confirmed -> Processing -> Delivered
// lifecycle. The invoice flag and the append-only document list give the
// delivery stage its idempotency guarantees.
package order
