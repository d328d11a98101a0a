// Package vaultprefs provides the typed preferences facade of a two-factor
// authentication vault.
//
// A Preferences value sits on top of a schema-less key/value Storage and exposes
// every setting of the vault as a typed accessor: booleans, integers, enum
// codes, the auto-lock bitset, JSON-encoded usage counts and group filters,
// and derived predicates such as whether a password reminder is due.
// Storage backends (memory, SQLite, PostgreSQL, Redis) live in the storage
// package and optional read caches in the cache package.
package vaultprefs
