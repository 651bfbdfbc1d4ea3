package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/cache"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the persisted news cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show persisted cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.CachePath()
		store, err := cache.OpenSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		count, size, err := store.Stats()
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Cache: %s\n", dbPath)
		fmt.Printf("Articles: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		if snap, ok := store.Get(); ok {
			fmt.Printf("Last updated: %s\n", snap.LastUpdated.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the persisted snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.OpenSQLite(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
