// Package store provides SQLite-backed durable storage for the deck registry.
//
// The store persists the owner -> deck bucket -> slide sequence hierarchy as
// three tables of hash-addressed segments:
//   - owners: owner key -> bucket key
//   - decks: (bucket key, deck name) -> sequence key, with creation position
//   - slides: (sequence key, index) -> slide identifier
//
// Bucket and sequence keys are derived with deck.BucketKey and
// deck.SequenceKey (SHA-256 with domain separation), so two owners or two
// decks never share a segment.
//
// # Call Semantics
//
// Every operation runs in a single transaction. Preconditions (argument
// validation, caller == owner, existence) are checked before anything is
// written, and any failure rolls the transaction back, so a rejected call
// leaves the database exactly as it was.
//
// Ordering uses explicit position/idx columns, never rowid or timestamps.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=FULL: Every committed call survives power loss
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Segments cannot reference missing parents
//   - One open connection: Calls are serialized
package store
