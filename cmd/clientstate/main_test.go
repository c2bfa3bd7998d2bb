package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/incomeclarity/clientstate/pkg/config"
	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/secrets"
)

const (
	validRaw  = `{"user":{"id":"u1","email":"ann@example.com"},"session_token":"tok123456","expires_at":"2099-01-01T00:00:00Z"}`
	brokenRaw = `{broken`
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetCache()

	cmd := newRootCmd("1.2.3", "abc123", "2026-01-01")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func seedFile(t *testing.T, values map[string]string) (string, *kvstore.FileStorage) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	store := kvstore.NewFileStorage(path)
	for k, v := range values {
		require.NoError(t, store.Set(k, v))
	}
	return path, store
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "clientstate version 1.2.3 (commit: abc123, built: 2026-01-01)\n", out)
}

func TestStatus(t *testing.T) {
	path, store := seedFile(t, map[string]string{
		"income_clarity_session":       validRaw,
		"income_clarity_notifications": brokenRaw,
	})

	out, err := run(t, "status", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "state:   valid")
	assert.Contains(t, out, "a**@example.com")
	assert.NotContains(t, out, "ann@example.com")
	assert.NotContains(t, out, "tok123456")
	assert.Regexp(t, `income_clarity_notifications\s+notifications\s+corrupted`, out)
	assert.Regexp(t, `income_clarity_credentials\s+credentials\s+missing`, out)

	// Read-only.
	raw, found, err := store.Get("income_clarity_notifications")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, brokenRaw, raw)
}

func TestStatus_CorruptedSessionIsNotCleared(t *testing.T) {
	path, store := seedFile(t, map[string]string{"income_clarity_session": brokenRaw})

	out, err := run(t, "status", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "state:   none")

	_, found, err := store.Get("income_clarity_session")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInspect(t *testing.T) {
	path, _ := seedFile(t, map[string]string{
		"app_session":       validRaw,
		"app_notifications": brokenRaw,
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "inspect", "--file", path, "--prefix", "app_")
		require.NoError(t, err)

		var rep storageReport
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.Equal(t, backendFile, rep.Backend)
		assert.Equal(t, path, rep.Target)
		assert.Equal(t, "valid", rep.State)
		require.NotNil(t, rep.Session)
		assert.Equal(t, "u1", rep.Session.UserID)
		assert.Equal(t, "to*****56", rep.Session.Token)
		require.Len(t, rep.Keys, 4)
		assert.Equal(t, keyOK, rep.Keys[0].Status)
		assert.Equal(t, keyMissing, rep.Keys[1].Status)
		assert.Equal(t, keyCorrupted, rep.Keys[2].Status)
		assert.Equal(t, "decode", rep.Keys[2].Stage)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "inspect", "--file", path, "--prefix", "app_", "-o", "yaml")
		require.NoError(t, err)

		var rep storageReport
		require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
		assert.Equal(t, "valid", rep.State)
		assert.Equal(t, "app_session", rep.Keys[0].Key)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "inspect", "--file", path, "-o", "xml")
		assert.ErrorIs(t, err, errUnknownOutput)
	})
}

func TestCleanup(t *testing.T) {
	path, store := seedFile(t, map[string]string{
		"income_clarity_session":       validRaw,
		"income_clarity_notifications": brokenRaw,
		"income_clarity_preferences":   `{"theme":"neon"}`,
	})

	out, err := run(t, "cleanup", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "checked 3, removed 2")
	assert.Contains(t, out, "removed income_clarity_notifications")
	assert.Contains(t, out, "removed income_clarity_preferences")

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"income_clarity_session"}, keys)

	out, err = run(t, "cleanup", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "checked 1, removed 0")
}

func TestClear(t *testing.T) {
	path, store := seedFile(t, map[string]string{
		"income_clarity_session":     validRaw,
		"income_clarity_credentials": `{"user_id":"u1","token":"t"}`,
		"income_clarity_preferences": `{"theme":"dark"}`,
	})

	out, err := run(t, "clear", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "session cleared\n", out)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"income_clarity_preferences"}, keys)
}

func TestProductionGuard(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	path, store := seedFile(t, map[string]string{
		"income_clarity_session":       validRaw,
		"income_clarity_notifications": brokenRaw,
	})

	_, err := run(t, "clear", "--file", path)
	assert.ErrorIs(t, err, errProduction)
	_, err = run(t, "cleanup", "--file", path)
	assert.ErrorIs(t, err, errProduction)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	// Read-only commands are allowed.
	_, err = run(t, "status", "--file", path)
	require.NoError(t, err)

	config.ResetCache()
	cmd := newRootCmd("dev", "none", "unknown")
	logs := &bytes.Buffer{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(logs)
	cmd.SetArgs([]string{"clear", "--force", "--file", path})
	require.NoError(t, cmd.Execute())

	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"income_clarity_notifications"}, keys)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &entry))
	assert.Equal(t, "session cleared", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "production", entry["env"])
}

func TestEnvConfiguration(t *testing.T) {
	path, _ := seedFile(t, map[string]string{"env_session": validRaw})

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CLIENTSTATE_FILE="+path+"\nCLIENTSTATE_KEY_PREFIX=env_\n"), 0o600))
	t.Setenv("CLIENTSTATE_FILE", "")
	t.Setenv("CLIENTSTATE_KEY_PREFIX", "")

	out, err := run(t, "status", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "state:   valid")
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, "status", "--backend", "sqlite")
	assert.ErrorIs(t, err, errUnknownBackend)
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr()+"/0")
	t.Setenv("REDIS_KEY_PREFIX", "cs:")
	t.Setenv("REDIS_RETRY_ATTEMPTS", "1")

	require.NoError(t, mr.Set("cs:income_clarity_session", validRaw))
	require.NoError(t, mr.Set("cs:income_clarity_credentials", `{"user_id":""}`))

	out, err := run(t, "cleanup", "--backend", "redis")
	require.NoError(t, err)
	assert.Contains(t, out, "removed income_clarity_credentials")
	assert.False(t, mr.Exists("cs:income_clarity_credentials"))
	assert.True(t, mr.Exists("cs:income_clarity_session"))

	out, err = run(t, "status", "--backend", "redis")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: redis ("+mr.Addr()+")")
	assert.Contains(t, out, "state:   valid")
}

func TestSealedFileBackend(t *testing.T) {
	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	sealer, err := secrets.NewSealer(key, "income_clarity_")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.json")
	plain := kvstore.NewFileStorage(path)
	sealed := kvstore.NewSealedStorage(plain, sealer)
	require.NoError(t, sealed.Set("income_clarity_session", validRaw))
	require.NoError(t, plain.Set("income_clarity_credentials", `{"user_id":"u1","token":"plaintext"}`))

	t.Setenv("CLIENTSTATE_SEAL_KEY", secrets.EncodeKey(key))

	out, err := run(t, "status", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "state:   valid")
	assert.Regexp(t, `income_clarity_credentials\s+credentials\s+corrupted`, out)

	_, err = run(t, "cleanup", "--file", path)
	require.NoError(t, err)
	keys, err := plain.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"income_clarity_session"}, keys)

	t.Setenv("CLIENTSTATE_SEAL_KEY", "short")
	_, err = run(t, "status", "--file", path)
	assert.ErrorIs(t, err, secrets.ErrInvalidKey)
}
