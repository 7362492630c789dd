package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-manager/internal/metrics"
	"github.com/jonathan/cv-manager/internal/observability"
	"github.com/jonathan/cv-manager/internal/store"
)

var metricsCommand = &cobra.Command{
	Use:   "metrics",
	Short: "Fetch citation metrics and write them back into the CV data",
	Long: `Fetches citation counts from Crossref for every publication with a DOI,
and optionally profile-level metrics (total citations, h-index, i10-index)
from a Google Scholar profile. Counts are written back into the data file
and mirrored in a cache side file; rendering only reads persisted counts.`,
	RunE: runMetrics,
}

var (
	metricsConfigPath string
	metricsData       string
	metricsCachePath  string
	metricsTitle      string
	metricsScholarID  string
	metricsDelay      int
	metricsShow       bool
	metricsVerbose    bool
)

func init() {
	metricsCommand.Flags().StringVar(&metricsConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	metricsCommand.Flags().StringVarP(&metricsData, "data", "d", "", "Path to the CV data file")
	metricsCommand.Flags().StringVar(&metricsCachePath, "cache", "", "Path to the metrics cache file")
	metricsCommand.Flags().StringVar(&metricsTitle, "publication", "", "Fetch a single publication by exact title")
	metricsCommand.Flags().StringVar(&metricsScholarID, "scholar", "", "Google Scholar profile ID for profile-level metrics")
	metricsCommand.Flags().IntVar(&metricsDelay, "delay", 0, "Seconds between consecutive fetches")
	metricsCommand.Flags().BoolVar(&metricsShow, "show", false, "Print cached metrics without fetching")
	metricsCommand.Flags().BoolVarP(&metricsVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(metricsCommand)
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(metricsConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = metricsData
	}
	if cmd.Flags().Changed("cache") {
		cfg.MetricsCache = metricsCachePath
	}
	if cmd.Flags().Changed("scholar") {
		cfg.ScholarID = metricsScholarID
	}
	if cmd.Flags().Changed("delay") {
		cfg.FetchDelay = metricsDelay
	}

	cache, err := metrics.LoadCache(cfg.MetricsCache)
	if err != nil {
		return err
	}

	if metricsShow {
		observability.NewPrinter(os.Stdout).PrintMetricsSummary(cache)
		return nil
	}

	record, err := loadRecord(cfg.Data)
	if err != nil {
		return err
	}

	client := metrics.NewClient()
	if cfg.FetchDelay > 0 {
		client.Delay = time.Duration(cfg.FetchDelay) * time.Second
	}
	ctx := context.Background()

	if metricsTitle != "" {
		citations, err := client.FetchOne(ctx, record, cache, metricsTitle)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s: %d citations\n", metricsTitle, citations)
	} else {
		result := client.FetchAll(ctx, record, cache)
		fmt.Fprintf(os.Stdout, "Fetched %d, skipped %d (no DOI), failed %d\n",
			result.Fetched, result.Skipped, result.Failed)
	}

	if cfg.ScholarID != "" {
		profile, err := client.ScholarProfile(ctx, cfg.ScholarID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: scholar profile fetch failed: %v\n", err)
		} else {
			cache.Profile = profile
			fmt.Fprintf(os.Stdout, "Profile: %d citations, h-index %d, i10-index %d\n",
				profile.Citations, profile.HIndex, profile.I10Index)
		}
	}

	if err := store.Save(cfg.Data, record); err != nil {
		return err
	}
	if err := metrics.SaveCache(cfg.MetricsCache, cache); err != nil {
		return err
	}

	if metricsVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintMetricsSummary(cache)
	}
	return nil
}
