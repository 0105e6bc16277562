// Package supplier contains the LogisticsSupplier entity: a carrier that can
// be invited to bid on tenders. Suppliers are maintained by the surrounding
// system and are strictly read-only inside the procurement pipeline.
package supplier
