/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permacache/permacache/pkg/config"
	"github.com/permacache/permacache/pkg/item"
	"github.com/permacache/permacache/pkg/storage"
	"github.com/permacache/permacache/pkg/store"
)

// app bundles the wired-up record layer shared by all subcommands.
type app struct {
	cfg     *config.Config
	pool    *item.BufferPool
	items   *store.ItemStore
	backing *storage.PebbleStore
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "permacache",
	Short: "Permacache - persistent key-value cache",
	Long: `Permacache is a persistent key-value cache server. Records are kept
in a Pebble-backed store and passed around as pooled item buffers.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}
		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		backing, err := storage.NewPebbleStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		pool := item.NewBufferPool(cfg.Item.BufferSize, cfg.Item.PoolInitial, cfg.Item.PoolMax)
		a := &app{
			cfg:     cfg,
			pool:    pool,
			items:   store.NewItemStore(backing, item.NewAllocator(pool)),
			backing: backing,
		}

		// Stash in command context for subcommands
		cmd.SetContext(context.WithValue(cmd.Context(), "app", a))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if a, ok := cmd.Context().Value("app").(*app); ok {
			return a.backing.Close()
		}
		return nil
	},
}

// appFromContext pulls the wired app out of the command context.
func appFromContext(cmd *cobra.Command) (*app, bool) {
	a, ok := cmd.Context().Value("app").(*app)
	return a, ok
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the store (overrides config)")
}
