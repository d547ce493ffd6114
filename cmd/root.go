package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mixle/internal/config"
	"github.com/robalobadob/mixle/internal/history"
	"github.com/robalobadob/mixle/internal/store"
)

// cli carries what every command needs once flags and env are resolved.
type cli struct {
	cfg config.Config
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "mixle",
		Short:         "Daily color-mixing puzzle",
		Long:          "Mixle: blend ten paints to match the day's secret color in six guesses.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MIXLE_DB env var)")
	root.PersistentFlags().String("storage", "", "History backend: sqlite or memory (overrides MIXLE_STORAGE env var)")

	root.AddCommand(c.serveCmd())
	root.AddCommand(c.statsCmd())
	root.AddCommand(c.shareCmd())
	root.AddCommand(c.challengeCmd())
	return root
}

// init loads configuration, applies flag overrides and sets the log level.
func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if s, _ := cmd.Flags().GetString("storage"); s != "" {
		cfg.Storage = s
	}
	db, _ := cmd.Flags().GetString("db")
	if cfg.Storage != store.KindMemory {
		if cfg.DBPath, err = cfg.ResolveDBPath(db); err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	c.cfg = cfg
	return nil
}

// openBackend opens the configured history backend.
func (c *cli) openBackend() (store.Backend, error) {
	b, err := store.Open(c.cfg.Storage, c.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return b, nil
}

// loadHistory opens the backend and reads the log without writing to it.
// The caller closes the backend.
func (c *cli) loadHistory(ctx context.Context) (*history.Store, store.Backend, error) {
	b, err := c.openBackend()
	if err != nil {
		return nil, nil, err
	}
	h := history.NewStore(b)
	if err := h.Read(ctx); err != nil {
		_ = b.Close()
		return nil, nil, fmt.Errorf("load history: %w", err)
	}
	return h, b, nil
}
