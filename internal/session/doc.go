// Package session implements the session registry: the exclusive owner of
// the token → user mapping.
//
// A [Registry] mints cryptographically random tokens, resolves them back to
// user identifiers and destroys them. Storage is pluggable: [NewMemoryStorage]
// keeps sessions in process memory, while any [Storage] backed by a database
// (see the store package) makes sessions survive restarts. An optional TTL is
// enforced at resolve time from the persisted creation timestamp, so no
// background eviction is required; [Registry.Sweep] is available for callers
// that want to reclaim space anyway.
package session
