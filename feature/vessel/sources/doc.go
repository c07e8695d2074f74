// Package sources provides the candidate providers used by vessel enhancement.
//
// Provider exports (MarineTraffic, BOAT International and any source that
// already uses canonical field names) are dropped into the object storage
// bucket as one JSON document per vessel identifier. StorageAdapter reads
// them, maps provider keys to canonical fields and coerces the values.
//
//	candidates/marinetraffic/imo/9074729.json
//	candidates/boat_international/name/Serenity.json
//
// A missing document is reported as reconcile.ErrNoMatch; any other storage
// failure as reconcile.ErrSourceUnavailable.
package sources
