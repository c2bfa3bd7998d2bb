// Package safeparse is the single entry point for turning a raw string read
// from client storage into a validated value.
//
// Parse never panics and never returns a partially valid value. Input passes
// through a fixed pipeline where every stage can short-circuit to a failed
// Result:
//
//  1. size gate: inputs longer than Options.MaxSize are rejected before any
//     decoding work (ErrSizeLimit)
//  2. sanitization: NUL bytes and invalid UTF-8 are rejected
//     (ErrSanitization); other control characters and a leading byte-order
//     mark are stripped
//  3. decode: strict JSON with numbers kept as json.Number; syntax errors,
//     truncation and trailing data fail (ErrParse)
//  4. depth gate: values nested deeper than Options.MaxDepth fail (ErrParse)
//  5. validate: the supplied validator.Predicate must accept the value
//     (ErrValidation); a missing validator fails closed
//
// Usage:
//
//	res := safeparse.Parse(raw, safeparse.Options{
//	    Validator: validator.SessionRecord,
//	    Context:   "session",
//	})
//	if !res.Success {
//	    // treat as absent; res.Error is safe to log
//	}
//
// ParseInto additionally decodes the accepted payload into a Go type:
//
//	res := safeparse.ParseInto[Prefs](raw, opts)
//
// Result.Error is a diagnostic string that never contains the raw payload.
// Result.Err wraps one of the sentinel errors so observability code can tell
// failure classes apart with errors.Is; callers are not expected to branch
// on it.
package safeparse
