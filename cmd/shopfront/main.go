package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"shopfront/cmd/shopfront/shop"
	"shopfront/internal/api"
	"shopfront/internal/auth"
	"shopfront/internal/cart"
	"shopfront/internal/config"
	"shopfront/internal/logging"
	"shopfront/internal/notify"
	"shopfront/internal/query"
	"shopfront/internal/storage"
)

var (
	// Global flags
	apiURL    string
	debug     bool
	ephemeral bool
)

// rootCmd launches the interactive storefront.
var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "shopfront - a terminal storefront client",
	Long: `shopfront is an interactive terminal client for the store API.

Browse and search the catalog, read reviews, manage a persistent cart,
and log in to review products and see your orders. Cart and session
state live under ~/.shopfront and survive restarts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("shopfront 0.1.0")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "store API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log under the state directory")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep cart and session in memory only")
	rootCmd.AddCommand(versionCmd)
}

func runStorefront() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if debug {
		cfg.Debug = true
	}

	if err := logging.Initialize(logging.Options{Dir: cfg.StateDir, Debug: cfg.Debug}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	var store storage.Store
	if ephemeral {
		store = storage.NewMemStore()
	} else {
		store = storage.NewFileStore(filepath.Join(cfg.StateDir, "state"))
	}

	// The notifier needs the running program, the client needs the auth
	// store's token, and the auth store needs the client as its backend.
	// Late-bound function values break both cycles: nothing fires before
	// p.Run starts.
	var program *tea.Program
	notifier := notify.Func(func(n notify.Notification) {
		if program != nil {
			program.Send(shop.ToastMsg{N: n})
		}
	})

	var authStore *auth.Store
	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout(),
		Tokens: api.TokenFunc(func() string {
			if authStore == nil {
				return ""
			}
			return authStore.Token()
		}),
		Notifier: notifier,
		OnUnauthorized: func() {
			if authStore != nil {
				authStore.ForceLogout()
			}
		},
	})
	authStore = auth.NewStore(client, store, notifier)
	authStore.OnForcedLogout(func() {
		if program != nil {
			program.Send(shop.ForcedLogoutMsg{})
		}
	})

	cartStore := cart.NewStore(store, notifier)
	cache := query.New()

	// Restore a prior session before the first authenticated request.
	authStore.CheckAuth()

	model := shop.New(shop.Deps{
		Config: cfg,
		Client: client,
		Auth:   authStore,
		Cart:   cartStore,
		Cache:  cache,
	})

	program = tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
