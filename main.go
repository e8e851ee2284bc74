package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/brb-shop/storefront/internal/core"
	"github.com/brb-shop/storefront/internal/storefront/assistant"
	"github.com/brb-shop/storefront/internal/storefront/cart"
	"github.com/brb-shop/storefront/internal/storefront/catalog"
	"github.com/brb-shop/storefront/internal/storefront/model"
	"github.com/brb-shop/storefront/internal/storefront/money"
	"github.com/brb-shop/storefront/internal/storefront/repo"
	"github.com/brb-shop/storefront/internal/storefront/tui"
	logx "github.com/brb-shop/storefront/pkg/logger"
	pkgredis "github.com/brb-shop/storefront/pkg/redis"
)

const businessName = "BRB Shop"

// AppConfig defines every configurable parameter, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogFile     string           `envconfig:"LOG_FILE"`

	// Infrastructure
	Redis   pkgredis.Config
	Storage model.StorageConfig

	Cart      model.CartConfig
	Currency  model.CurrencyConfig
	Assistant model.AssistantConfig
}

// app is everything a command needs, opened from AppConfig.
type app struct {
	cfg     AppConfig
	catalog *catalog.Catalog
	kv      model.KeyValueStore
	cart    *cart.Store
	money   *money.Formatter
	close   func() error
}

func loadConfig() (AppConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}

// openKV selects the cart persistence backend.
func openKV(ctx context.Context, cfg AppConfig) (model.KeyValueStore, func() error, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "memory":
		return repo.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		ttl, err := time.ParseDuration(cfg.Cart.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid CART_TTL %q: %w", cfg.Cart.TTL, err)
		}
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logx.Info().Str("backend", "redis").Msg("cart storage ready")
		return repo.NewRedisStore(rdb, cfg.Cart.Namespace, ttl), rdb.Close, nil
	case "sqlite", "":
		store, err := repo.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logx.Info().Str("backend", "sqlite").Str("path", cfg.Storage.SQLitePath).Msg("cart storage ready")
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}
}

func openApp(ctx context.Context, cfg AppConfig) (*app, error) {
	f, err := money.NewFormatter(cfg.Currency.Locale)
	if err != nil {
		return nil, err
	}
	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		catalog: catalog.Seed(),
		kv:      kv,
		cart:    cart.Open(ctx, kv),
		money:   f,
		close:   closeKV,
	}, nil
}

func newRootCmd(cfg AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "BRB Shop: a demo storefront with a persisted cart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	shop := newShopCmd(cfg)
	root.RunE = shop.RunE
	root.AddCommand(shop, newCatalogCmd(cfg), newCartCmd(cfg), newAssistantCmd(cfg))
	return root
}

func newShopCmd(cfg AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and manage the cart in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the TUI owns the terminal
			var w io.Writer = io.Discard
			if cfg.LogFile != "" {
				f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Writer: w})

			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			m := tui.New(cmd.Context(), a.catalog, a.cart, a.money)
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("run shop: %w", err)
			}
			return nil
		},
	}
}

func newCatalogCmd(cfg AppConfig) *cobra.Command {
	var query, category, sort string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products with the storefront's search, category and sort",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := money.NewFormatter(cfg.Currency.Locale)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			products := catalog.Seed().View(query, model.Category(category), model.SortKey(sort))
			if len(products) == 0 {
				fmt.Fprintln(out, "No products found.")
				return nil
			}
			for _, p := range products {
				stock := fmt.Sprintf("%d in stock", p.Stock)
				if !p.InStock() {
					stock = "Out of stock"
				}
				fmt.Fprintf(out, "%-4s %-22s %10s  ★ %.1f (%d)  %-12s %s\n",
					p.ID, p.Name, f.Format(p.Price), p.Rating, p.Reviews, p.Category, stock)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive name search")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryAll), "category filter (All, Apparel, Electronics, Home, Accessories)")
	cmd.Flags().StringVarP(&sort, "sort", "s", string(model.SortPopular), "popular, price-asc, price-desc or rating")
	return cmd
}

func newCartCmd(cfg AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Print the persisted cart with totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			lines := a.cart.Lines()
			if len(lines) == 0 {
				fmt.Fprintln(out, "Your cart is empty.")
				return nil
			}
			for _, l := range lines {
				fmt.Fprintf(out, "%-22s %3d × %10s = %10s\n", l.Name, l.Qty, a.money.Format(l.Price), a.money.Format(l.Subtotal()))
			}
			fmt.Fprintf(out, "Items: %d\nSubtotal: %s\nDelivery: Free\n", a.cart.Count(), a.money.Format(a.cart.Total()))
			return nil
		},
	}
}

func newAssistantCmd(cfg AppConfig) *cobra.Command {
	var session string
	var reset bool
	cmd := &cobra.Command{
		Use:   "assistant <query>",
		Short: "Ask the shopping assistant (requires GEMINI_API_KEY)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.close()

			conv := assistant.NewConversation(a.kv, session, cfg.Assistant.HistoryTurns)
			if reset {
				if err := conv.Clear(ctx); err != nil {
					return fmt.Errorf("reset conversation: %w", err)
				}
			}

			cm, err := assistant.NewChatModel(ctx, cfg.Assistant)
			if err != nil {
				return err
			}
			runner, err := assistant.Build(ctx, assistant.Config{
				ChatModel:    cm,
				ModelName:    cfg.Assistant.Model,
				Toolset:      assistant.NewToolset(a.catalog, a.cart, a.money),
				ToolMaxCalls: cfg.Assistant.ToolMaxCalls,
				BusinessName: businessName,
				CurrencyCode: a.money.Code(),
				Conversation: conv,
			})
			if err != nil {
				return err
			}

			answer, err := runner.Invoke(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("assistant: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", "default", "conversation id; turns are remembered per session")
	cmd.Flags().BoolVar(&reset, "reset", false, "forget earlier turns before asking")
	return cmd
}

func main() {
	logx.Init()

	cfg, err := loadConfig()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment})

	if err := newRootCmd(cfg).ExecuteContext(context.Background()); err != nil {
		logx.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
