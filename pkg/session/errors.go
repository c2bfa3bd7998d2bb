package session

import "errors"

var (
	// ErrInvalidRecord indicates a record that would not pass its own validator
	ErrInvalidRecord = errors.New("session.invalid_record")

	// ErrStorageUnavailable indicates there is no storage to write to
	ErrStorageUnavailable = errors.New("session.storage_unavailable")

	// ErrUnknownKind indicates a key bound to a kind the registry does not know
	ErrUnknownKind = errors.New("session.unknown_kind")

	// ErrInvalidUser indicates a user object without string id and email
	ErrInvalidUser = errors.New("session.invalid_user")

	// ErrInvalidTimestamp indicates an expires_at value that is not a point in time
	ErrInvalidTimestamp = errors.New("session.invalid_timestamp")
)
