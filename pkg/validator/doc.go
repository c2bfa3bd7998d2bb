// Package validator holds the predicates that decide whether a decoded JSON
// value has the shape expected for a kind of data persisted in client storage,
// plus the small Rule toolkit they are built from.
//
// # Architecture
//
// Checks are written declaratively: each shape check builds Rule values
// (IsObject, NonEmptyString, ValidTimestamp, PlainObject, ...) and evaluates
// them with Apply, which aggregates failures into ValidationErrors. The
// errors name fields and never echo the offending values, so they are safe to
// log.
//
// A Predicate is the boolean view of a check. A Registry maps each Kind to its
// predicate; adding a new persisted kind means registering one predicate:
//
//	reg := validator.DefaultRegistry()
//	reg.Register("drafts", validator.FromCheck(checkDrafts))
//
//	if !reg.Validate(validator.KindSession, decoded) {
//	    // treat as absent
//	}
//
// Built-in kinds:
//
//   - KindSession       – {"user":{"id","email",...},"session_token","expires_at"}
//   - KindCredentials   – {"user_id","token","remember"?}
//   - KindNotifications – [{"id","title","read"}, ...] up to MaxNotifications
//   - KindPreferences   – flat {"currency"?,"theme"?,"locale"?}
//
// Predicates never coerce: a number where a string is expected, an array
// where an object is expected, or a boolean timestamp is simply false.
// Registered predicates are wrapped with Safe so a panic reads as false.
//
// # Timestamps
//
// ParseTimestamp accepts ISO-8601 strings and epoch numbers. Numbers whose
// magnitude reaches EpochMillisThreshold are read as milliseconds, matching
// what JavaScript clients write with Date.now().
package validator
