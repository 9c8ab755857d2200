// File: cmd/cache.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/flowlens-cli/internal/cache"
	"github.com/xkilldash9x/flowlens-cli/internal/observability"
)

// newCacheCmd groups the cache maintenance subcommands.
func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the LLM response cache",
	}
	cacheCmd.AddCommand(newCacheStatsCmd())
	cacheCmd.AddCommand(newCacheClearCmd())
	return cacheCmd
}

func openCache() (*cache.Cache, error) {
	return cache.New(appConfig.Cache.Dir, appConfig.Cache.TTL, observability.GetLogger())
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count, size, and expired entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache()
			if err != nil {
				return err
			}

			stats, err := c.GetStats()
			if err != nil {
				return err
			}

			fmt.Printf("Cache dir:  %s\n", appConfig.Cache.Dir)
			fmt.Printf("Entries:    %d\n", stats.Entries)
			fmt.Printf("Size:       %d bytes\n", stats.TotalBytes)
			fmt.Printf("Expired:    %d\n", stats.Expired)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached LLM response",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache()
			if err != nil {
				return err
			}

			removed, err := c.Clear()
			if err != nil {
				return err
			}

			fmt.Printf("Removed %d cache entries.\n", removed)
			return nil
		},
	}
}
