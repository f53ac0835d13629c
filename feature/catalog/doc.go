// Package catalog implements the vendor catalog reconciliation feature.
//
// It consumes a vendor's XML product feed and reconciles three entity kinds
// into relational tables:
//  1. Currencies: keyed by the vendor's currency id.
//  2. Categories: keyed by the vendor's integer category id.
//  3. Offers: keyed by vendor code, with nested params stored in the
//     offer_attributes side table.
//
// # Kind Registry
//
// All per-kind behavior (table DDL per dialect, expected columns, the upsert
// statement, the extraction and batch logic) lives in a single registry.
// Every operation of this package is a lookup into it; adding a kind means
// adding one registry entry.
//
// # Components
//
//   - Synchronizer: fetches the feed and applies each kind inside its own
//     transaction, optionally archiving the raw document.
//   - Service: wraps the synchronizer and the schema inspection operations.
//   - Handler: exposes the HTTP surface.
//
// # HTTP Endpoints
//
//   - GET  /catalog/kinds : List entity kinds in sync order.
//   - GET  /catalog/:kind/ddl : Render a kind's creation DDL.
//   - GET  /catalog/:kind/diff : Render schema reconciliation statements.
//   - POST /catalog/sync : Sync every kind.
//   - POST /catalog/sync/:kind : Sync one kind.
//   - GET  /tables/:table/columns : List a table's live columns.
//   - GET  /tables/:table/columns/:column/unique : Unique index membership.
package catalog
