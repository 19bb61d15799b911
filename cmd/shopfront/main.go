package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/store"
	"shopfront/pkg/config"
	"shopfront/pkg/logger"
)

// app holds everything a command may need, wired once in PersistentPreRunE.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	store   store.CartStore
	manager *cart.Manager

	client        *api.Client
	catalog       *api.CatalogClient
	auth          *api.AuthClient
	orders        *api.OrdersClient
	notifications *api.NotificationsClient
	checkout      *checkout.Service
}

func (a *app) setup() error {
	a.cfg = config.Load()

	log, err := logger.New(logger.Options{
		Service: "shopfront",
		Env:     a.cfg.AppEnv,
		Level:   a.cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.log = log

	a.store, err = openStore(a.cfg, log)
	if err != nil {
		return err
	}
	a.manager = cart.New(a.store, log)

	a.client = api.NewClient(a.cfg.BackendBaseURL, a.cfg.RequestTimeout)
	if session, ok := loadSession(a.cfg.StateDir); ok {
		a.client.SetToken(session.Token)
	}

	a.catalog = api.NewCatalogClient(a.client)
	a.auth = api.NewAuthClient(a.client)
	a.orders = api.NewOrdersClient(a.client)
	a.notifications = api.NewNotificationsClient(a.client)
	a.checkout = checkout.NewService(a.manager, a.orders, log)
	return nil
}

func (a *app) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("failed to close cart store", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// openStore picks the persistence backend: redis when configured, the local
// sqlite file otherwise.
func openStore(cfg config.Config, log *zap.Logger) (store.CartStore, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return store.NewRedisStore(client, log), nil
	}
	if cfg.StateDir == ":memory:" {
		return store.NewMemoryStore(), nil
	}

	st, err := store.NewSQLiteStore(cfg.StateDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}
	return st, nil
}

// session is the locally cached login state, the CLI's stand-in for the
// browser keeping the token in local storage.
type session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

func sessionPath(stateDir string) string {
	return filepath.Join(stateDir, "session.json")
}

func loadSession(stateDir string) (session, bool) {
	raw, err := os.ReadFile(sessionPath(stateDir))
	if err != nil {
		return session{}, false
	}
	var s session
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" {
		return session{}, false
	}
	return s, true
}

func saveSession(stateDir string, s session) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(sessionPath(stateDir), raw, 0o600)
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "shopfront",
		Short:         "Local client for the shopfront platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	rootCmd.AddCommand(newCartCmd(a))
	rootCmd.AddCommand(newCheckoutCmd(a))
	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newServeCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
