// Package request contains the TransportRequest aggregate: one customer
// shipment need driven through the procurement pipeline. The aggregate
// enforces the monotonic Created -> Quoted -> Delivered lifecycle and keeps
// cargo and route immutable after creation.
package request
