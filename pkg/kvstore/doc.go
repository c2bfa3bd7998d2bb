// Package kvstore defines the storage capability consumed by the client state
// layer: a small synchronous key/value contract with string values.
//
// The core packages never reach for a concrete backend. They receive a
// Storage and treat it as the only source of persisted state. Three
// implementations ship with the package:
//
//   - MemoryStorage – concurrent in-memory map, handy for tests and for
//     short-lived processes.
//   - FileStorage – a single JSON object on disk, mirroring the way browser
//     storage is usually dumped. Every call re-reads the file, so several
//     processes may share it.
//   - Unavailable – a no-op stand-in for execution contexts without any
//     storage. Reads report nothing, removals succeed, writes fail with
//     ErrUnavailable.
//
// SealedStorage wraps any of them and encrypts values at rest through a
// Cipher such as secrets.Sealer. A value it cannot open reads as an empty
// string, which the parser rejects like any other corruption.
//
// A redis-backed Storage lives in pkg/redis.
//
// # Usage
//
//	store := kvstore.NewMemoryStorage()
//	_ = store.Set("income_clarity_session", raw)
//
//	raw, ok, err := store.Get("income_clarity_session")
//	if err != nil || !ok {
//	    // treat as absent
//	}
//
// # Error Handling
//
//   - ErrEmptyKey     – the key is empty
//   - ErrUnavailable  – the capability is missing in this context
//   - ErrCorruptFile  – FileStorage could not decode its backing file
package kvstore
