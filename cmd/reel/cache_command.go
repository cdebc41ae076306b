package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"reel/internal/trackcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the converted track cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show track cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, warn, err := openCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", store.Path())
			fmt.Fprintf(out, "Entries:  %d\n", stats.Entries)
			fmt.Fprintf(out, "Hits:     %d\n", stats.Hits)
			formats := make([]string, 0, len(stats.Formats))
			for format := range stats.Formats {
				formats = append(formats, format)
			}
			sort.Strings(formats)
			for _, format := range formats {
				fmt.Fprintf(out, "  - %s: %d\n", format, stats.Formats[format])
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached track",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, warn, err := openCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Track cache already empty")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached tracks\n", removed)
			return nil
		},
	}
}

func openCache(ctx *commandContext) (*trackcache.Store, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	if !cfg.Cache.Enabled {
		return nil, "Track cache is disabled (set enabled = true under [cache] in config.toml)", nil
	}
	store, err := trackcache.Open(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("open track cache: %w", err)
	}
	return store, "", nil
}
