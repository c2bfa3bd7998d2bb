package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/incomeclarity/clientstate/pkg/validator"
)

// Record is the identity payload persisted client-side at login.
type Record struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    Timestamp `json:"expires_at"`
}

// RecordFromValue builds a Record from an already decoded JSON object, such
// as safeparse.Result.Data. Keys are matched exactly; user.id, user.email
// and session_token must be non-blank strings.
func RecordFromValue(v any) (Record, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return Record{}, ErrInvalidRecord
	}

	user, err := userFromValue(fields["user"])
	if err != nil {
		return Record{}, err
	}

	token, ok := fields["session_token"].(string)
	if !ok || strings.TrimSpace(token) == "" {
		return Record{}, ErrInvalidRecord
	}

	expires, err := timestampFromValue(fields["expires_at"])
	if err != nil {
		return Record{}, err
	}

	return Record{User: user, SessionToken: token, ExpiresAt: expires}, nil
}

// UnmarshalJSON applies the same rules as RecordFromValue.
func (r *Record) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}
	rec, err := RecordFromValue(v)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// ExpiredAt reports whether the record is expired at now.
// A record expiring exactly at now is expired.
func (r Record) ExpiredAt(now time.Time) bool {
	return !now.Before(r.ExpiresAt.Time())
}

// User identifies the account a Record belongs to. Descriptive fields other
// than id and email are kept in Extra and written back unchanged.
type User struct {
	ID    string
	Email string
	Extra map[string]any
}

// MarshalJSON flattens Extra next to id and email.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+2)
	maps.Copy(out, u.Extra)
	out["id"] = u.ID
	out["email"] = u.Email
	return json.Marshal(out)
}

// UnmarshalJSON requires non-blank string id and email and collects every
// other field into Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return errors.Join(ErrInvalidUser, err)
	}
	user, err := userFromValue(v)
	if err != nil {
		return err
	}
	*u = user
	return nil
}

func userFromValue(v any) (User, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return User{}, ErrInvalidUser
	}

	id, idOK := fields["id"].(string)
	email, emailOK := fields["email"].(string)
	if !idOK || !emailOK || strings.TrimSpace(id) == "" || strings.TrimSpace(email) == "" {
		return User{}, ErrInvalidUser
	}

	u := User{ID: id, Email: email}
	if len(fields) > 2 {
		u.Extra = maps.Clone(fields)
		delete(u.Extra, "id")
		delete(u.Extra, "email")
	}
	return u, nil
}

// Timestamp is an expiry instant that remembers the JSON form it was read
// from, either an ISO-8601 string or an epoch number in seconds or
// milliseconds, so that re-encoding a Record reproduces it exactly.
type Timestamp struct {
	t   time.Time
	raw json.RawMessage
}

// NewTimestamp returns a Timestamp encoded as an RFC 3339 string.
func NewTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	raw, _ := json.Marshal(t.Format(time.RFC3339Nano))
	return Timestamp{t: t, raw: raw}
}

// NewEpochMillis returns a Timestamp encoded as epoch milliseconds.
func NewEpochMillis(t time.Time) Timestamp {
	t = time.UnixMilli(t.UnixMilli()).UTC()
	raw, _ := json.Marshal(t.UnixMilli())
	return Timestamp{t: t, raw: raw}
}

// Time returns the instant in UTC.
func (ts Timestamp) Time() time.Time { return ts.t }

// IsZero reports whether ts was never set.
func (ts Timestamp) IsZero() bool { return ts.raw == nil && ts.t.IsZero() }

func (ts Timestamp) String() string { return ts.t.Format(time.RFC3339) }

// MarshalJSON writes the original representation back.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.raw != nil {
		return ts.raw, nil
	}
	return json.Marshal(ts.t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts anything validator.ParseTimestamp accepts.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return errors.Join(ErrInvalidTimestamp, err)
	}
	t, ok := validator.ParseTimestamp(v)
	if !ok {
		return ErrInvalidTimestamp
	}

	ts.t = t
	ts.raw = bytes.Clone(bytes.TrimSpace(data))
	return nil
}

func timestampFromValue(v any) (Timestamp, error) {
	t, ok := validator.ParseTimestamp(v)
	if !ok {
		return Timestamp{}, ErrInvalidTimestamp
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Timestamp{}, errors.Join(ErrInvalidTimestamp, err)
	}
	return Timestamp{t: t, raw: raw}, nil
}

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
