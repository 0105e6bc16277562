// Package kernel contains shared value objects used across the domain model.
//
// The kernel holds concepts that do not belong to a single aggregate:
//   - UUID: validated identifier wrapping github.com/google/uuid
//   - Money: immutable amount-plus-currency value
//   - TransportType: cargo handling classification shared by requests and suppliers
//
// Value objects in this package are immutable, compare by value, and can only
// be created through their constructor functions.
package kernel
