// Package feed fetches and parses the vendor product-catalog feed.
//
// The feed is a hierarchical XML export (currencies, categories, offers with
// nested param lists) whose exact shape drifts between vendors. The package
// exposes it as a typed Node tree with explicit accessors for children,
// attributes and text, so downstream extractors see absence and multiplicity
// at compile time instead of discovering them at runtime.
//
// # Defensive parsing
//
// The decoder never resolves external DTDs or expands external entities, so
// entity-expansion attacks and DTD-driven SSRF are structurally impossible.
// An internal DOCTYPE declaration is tolerated and skipped. Unknown entities
// and non-UTF-8 charsets (commonly windows-1251 in vendor exports) are
// handled leniently.
//
// # Root normalization
//
// Some exports wrap the payload in a single container element. Fetch
// descends through such a wrapper so that lookups are uniform either way.
package feed
