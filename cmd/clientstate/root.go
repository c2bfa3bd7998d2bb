package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/incomeclarity/clientstate/pkg/config"
	"github.com/incomeclarity/clientstate/pkg/environment"
	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/logger"
	"github.com/incomeclarity/clientstate/pkg/redis"
	"github.com/incomeclarity/clientstate/pkg/secrets"
	"github.com/incomeclarity/clientstate/pkg/session"
)

const (
	backendFile  = "file"
	backendRedis = "redis"
)

var (
	errUnknownBackend = errors.New("clientstate: unknown backend")
	errProduction     = errors.New("clientstate: refusing to modify production storage without --force")
)

// AppConfig holds CLI settings read from the environment.
type AppConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Backend string `env:"CLIENTSTATE_BACKEND" envDefault:"file"`
	File    string `env:"CLIENTSTATE_FILE" envDefault:"clientstate.json"`

	// SealKey is a base64 32-byte key. When set, values are encrypted at rest.
	SealKey string `env:"CLIENTSTATE_SEAL_KEY"`
}

type rootFlags struct {
	envFile string
	backend string
	file    string
	prefix  string
}

func newRootCmd(version, commit, date string) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "clientstate",
		Short:         "Inspect and repair persisted client session state",
		Long:          "clientstate reads the keys the client application persists, reports which of them are corrupted, and removes them on request.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "load variables from this .env file first")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: file or redis (default $CLIENTSTATE_BACKEND)")
	pf.StringVar(&flags.file, "file", "", "path of the file backend (default $CLIENTSTATE_FILE)")
	pf.StringVar(&flags.prefix, "prefix", "", "storage key prefix (default $CLIENTSTATE_KEY_PREFIX)")

	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newInspectCmd(flags))
	rootCmd.AddCommand(newCleanupCmd(flags))
	rootCmd.AddCommand(newClearCmd(flags))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// app is what every storage subcommand works with.
type app struct {
	backend string
	target  string
	store   kvstore.Storage
	gateway *session.Gateway
	config  session.Config
	logger  *slog.Logger
	close   func() error
}

func (a *app) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// open resolves configuration and connects to the selected backend.
// Flags win over the environment.
func (f *rootFlags) open(cmd *cobra.Command, opts ...session.Option) (*app, error) {
	if f.envFile != "" {
		if err := config.LoadEnv(f.envFile); err != nil {
			return nil, err
		}
	}

	var appCfg AppConfig
	if err := config.Load(&appCfg); err != nil {
		return nil, err
	}
	var logCfg logger.Config
	if err := config.Load(&logCfg); err != nil {
		return nil, err
	}
	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("prefix") {
		sessCfg.KeyPrefix = f.prefix
	}

	env := environment.Parse(appCfg.Env)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(environment.WithContext(ctx, env))

	log := logger.FromConfig(logCfg, cmd.ErrOrStderr(), logger.WithContextExtractors(session.LoggerExtractor()))

	a := &app{
		backend: cmp.Or(f.backend, appCfg.Backend),
		config:  sessCfg,
		logger:  log,
	}

	switch a.backend {
	case backendFile:
		a.target = cmp.Or(f.file, appCfg.File)
		a.store = kvstore.NewFileStorage(a.target)
	case backendRedis:
		store, target, err := openRedis(cmd.Context())
		if err != nil {
			return nil, err
		}
		a.target = target
		a.store = store
		a.close = store.Close
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, a.backend)
	}

	if appCfg.SealKey != "" {
		sealer, err := newSealer(appCfg.SealKey, sessCfg.KeyPrefix)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.store = kvstore.NewSealedStorage(a.store, sealer)
	}

	a.gateway = session.NewFromConfig(sessCfg, a.store, append([]session.Option{session.WithLogger(log)}, opts...)...)
	return a, nil
}

// newSealer scopes the sealing key to the key prefix.
func newSealer(encodedKey, prefix string) (*secrets.Sealer, error) {
	key, err := secrets.ParseKey(encodedKey)
	if err != nil {
		return nil, err
	}
	return secrets.NewSealer(key, prefix)
}

func openRedis(ctx context.Context) (*redis.Storage, string, error) {
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return redis.NewStorageWithConfig(client, cfg), client.Options().Addr, nil
}

// guardProduction blocks commands that write to storage in production
// unless force is set.
func guardProduction(cmd *cobra.Command, force bool) error {
	if force || !environment.IsProduction(cmd.Context()) {
		return nil
	}
	return errProduction
}
