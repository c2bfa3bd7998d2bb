package validator

import "regexp"

// MaxNotifications caps the cached notification list.
const MaxNotifications = 500

var (
	currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)
	themes       = []string{"light", "dark", "system"}
)

// Built-in predicates, one per Kind.
var (
	SessionRecord     = FromCheck(CheckSessionRecord)
	CachedCredentials = FromCheck(CheckCachedCredentials)
	NotificationList  = FromCheck(CheckNotificationList)
	Preferences       = FromCheck(CheckPreferences)
)

// CheckSessionRecord validates the stored session record:
//
//	{"user":{"id":"...","email":"..."},"session_token":"...","expires_at":"..."|123}
func CheckSessionRecord(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return Apply(PlainObject("session", value))
	}
	user, _ := obj["user"].(map[string]any)

	return Apply(
		PlainObject("session", value),
		IsObject("user", obj["user"]),
		NonEmptyString("user.id", user["id"]),
		NonEmptyString("user.email", user["email"]),
		NonEmptyString("session_token", obj["session_token"]),
		ValidTimestamp("expires_at", obj["expires_at"]),
	)
}

// CheckCachedCredentials validates the remembered-login record:
//
//	{"user_id":"...","token":"...","remember":true}
func CheckCachedCredentials(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return Apply(PlainObject("credentials", value))
	}

	return Apply(
		PlainObject("credentials", value),
		NonEmptyString("user_id", obj["user_id"]),
		NonEmptyString("token", obj["token"]),
		Optional(obj, "remember", IsBool),
	)
}

// CheckNotificationList validates the cached notification list:
//
//	[{"id":"...","title":"...","read":false}, ...]
func CheckNotificationList(value any) error {
	items, ok := value.([]any)
	if !ok {
		return Apply(IsArray("notifications", value))
	}

	rules := []Rule{MaxItems("notifications", items, MaxNotifications)}
	if len(items) > MaxNotifications {
		return Apply(rules...)
	}
	for _, item := range items {
		field := "notifications[]"
		obj, isObj := item.(map[string]any)
		if !isObj {
			rules = append(rules, PlainObject(field, item))
			continue
		}
		rules = append(rules,
			PlainObject(field, item),
			NonEmptyString(field+".id", obj["id"]),
			IsString(field+".title", obj["title"]),
			IsBool(field+".read", obj["read"]),
		)
	}
	return Apply(rules...)
}

// CheckPreferences validates cached user preferences. All fields are optional
// but none may be nested:
//
//	{"currency":"USD","theme":"dark","locale":"en-US"}
func CheckPreferences(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return Apply(PlainObject("preferences", value))
	}

	return Apply(
		PlainObject("preferences", value),
		ScalarValues("preferences", obj),
		Optional(obj, "currency", func(field string, v any) Rule {
			return Matches(field, v, currencyCode, "ISO 4217 currency code")
		}),
		Optional(obj, "theme", func(field string, v any) Rule {
			s, _ := v.(string)
			return OneOf(field, s, themes...)
		}),
		Optional(obj, "locale", NonEmptyString),
	)
}
