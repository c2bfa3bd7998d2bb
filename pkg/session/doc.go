// Package session is the public surface for reading identity state from
// client-side storage. It answers three questions: who is logged in, is the
// login still valid, and how to forget it. Corrupted storage never surfaces
// as an error or a partial value.
//
// # Architecture
//
// A Gateway owns a kvstore.Storage and a fixed KeySet. Every read goes
// through safeparse with the predicate registered for the key's kind, so the
// only outcomes of GetSession are nil or a Record that satisfies every
// session invariant.
//
//	┌──────────────┐  GetSession / State   ┌───────────┐   raw    ┌──────────┐
//	│ application  │ ────────────────────► │  Gateway  │ ───────► │ Storage  │
//	└──────────────┘                       └───────────┘          └──────────┘
//	                                             │
//	                                             ▼
//	                               safeparse + validator.Registry
//
// The states visible to callers are NoSession, ValidSession and
// ExpiredSession. A stored value that fails validation is logged and reads as
// NoSession; with Config.ClearOnCorruption (the default) the session and
// credentials keys are removed as well.
//
// # Usage
//
//	gw := session.New(store, session.WithLogger(log))
//
//	if !gw.IsAuthenticated() {
//	    // redirect to login
//	}
//	rec := gw.GetSession()
//	ctx = session.WithContext(ctx, rec)
//
//	// logout
//	gw.ClearSession()
//
// At bootstrap, sweep every managed key once:
//
//	report := gw.CleanupCorruptedStorage()
//
// CleanupCorruptedStorage is also available as a package function for tools
// that hold a storage and key set but no gateway.
//
// # Configuration
//
// Config can be populated from the environment via pkg/config:
//
//   - CLIENTSTATE_KEY_PREFIX          – key namespace (default "income_clarity_")
//   - CLIENTSTATE_MAX_SIZE            – byte cap per stored value (default 65536)
//   - CLIENTSTATE_CLEAR_ON_CORRUPTION – clear session keys on corruption (default true)
//
// # Error Handling
//
// Read operations never return errors. SaveSession, used by the login flow,
// returns:
//
//   - ErrInvalidRecord      – the record would not pass its own validator
//   - ErrStorageUnavailable – there is no storage to write to
package session
