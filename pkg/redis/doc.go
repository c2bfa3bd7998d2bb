// Package redis connects to a Redis server and exposes it as a
// kvstore.Storage, so client state can be kept in Redis instead of a local
// file or memory.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Storage, a prefixed key/value adapter satisfying kvstore.Storage.
//   - Storage.Ping, a health check against the live connection.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewStorageWithConfig(client, cfg)
//	gateway := session.New(store)
//
// All keys written through Storage carry Config.KeyPrefix, and Keys only
// reports keys under that prefix (with the prefix stripped), so several
// applications can share one database.
//
// # Error Handling
//
//   - ErrEmptyURL   – no connection URL configured
//   - ErrInvalidURL – invalid connection URL
//   - ErrNotReady   – all connection attempts failed
//   - ErrUnhealthy  – PING failed
package redis
