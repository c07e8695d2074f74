// Package vessel implements vessel enhancement on top of the reconcile engine.
//
// A Store persists vessels (gorm, MySQL or SQLite) together with an audit
// log of applied patches. The Service finds enhancement opportunities, fetches
// candidates through source adapters, previews merges and applies them once
// confirmed. Batch runs fan out across vessels with a bounded worker pool.
//
// # HTTP Endpoints
//
//   - GET  /vessels/:id/opportunities : available lookups, best first.
//   - POST /vessels/:id/enhance : fetch and preview a merge.
//   - POST /vessels/:id/apply : merge candidate fields and write them (needs confirmed=true).
//   - GET  /vessels/:id/history : applied patches.
//   - GET  /vessels/candidates : vessels worth a batch run.
//   - POST /reconcile/merge : offline merge of raw records.
package vessel
