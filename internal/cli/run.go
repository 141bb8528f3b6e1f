package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukfit/eventscrape/internal/adapters"
	"github.com/ukfit/eventscrape/internal/metrics"
	"github.com/ukfit/eventscrape/internal/model"
	"github.com/ukfit/eventscrape/internal/pipeline"
	"github.com/ukfit/eventscrape/internal/store"
	"github.com/ukfit/eventscrape/internal/worker"
)

var (
	siteID        string
	workers       int
	runTimeout    time.Duration
	storeDSN      string
	locationIQKey string
	taxonomyFile  string
	forceCategory string
	forceSubcat   string
	llmEnabled    bool
	llmModel      string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <fixture.json> [fixture.json...]",
	Short: "Normalize raw records from fixture files into the store",
	Long: `Run reads raw extracted records (JSON arrays of raw fields) and
pushes every record through the normalization pipeline: date
normalization, taxonomy classification, two-tier deduplication,
geocoding inside the UK fence, and insertion into the store.

Example:
  eventscrape run scraped/runthrough.json
  eventscrape run scraped/*.json --workers 8 --store-dsn postgres://...
  eventscrape run scraped/charity.json --category Charity --subcategory Fundraising`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&siteID, "site", "fixture", "site id recorded on events without one")
	runCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of concurrent normalization workers")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "total timeout for the run")
	runCmd.Flags().StringVar(&storeDSN, "store-dsn", "", "PostgreSQL DSN (empty: dry run, no inserts)")
	runCmd.Flags().StringVar(&locationIQKey, "locationiq-key", "", "LocationIQ API key (falls back to LOCATIONIQ_KEY env)")
	runCmd.Flags().StringVar(&taxonomyFile, "taxonomy", "", "taxonomy YAML file (empty: built-in default)")
	runCmd.Flags().StringVar(&forceCategory, "category", "", "force this category for every record")
	runCmd.Flags().StringVar(&forceSubcat, "subcategory", "", "forced subcategory (with --category)")
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM short-description summarizer")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")

	_ = viper.BindPFlag("store.dsn", runCmd.Flags().Lookup("store-dsn"))
	_ = viper.BindPFlag("geocode.locationiq_key", runCmd.Flags().Lookup("locationiq-key"))
	_ = viper.BindPFlag("taxonomy.file", runCmd.Flags().Lookup("taxonomy"))
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	logger := newLogger()
	cfg := buildConfig()

	var eventStore store.EventStore
	if cfg.Store.DSN != "" {
		db, err := store.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer func() { _ = db.Close() }()
		eventStore = store.NewPostgres(db, logger)
	} else {
		logger.Warn("no store DSN configured, running without persistence")
	}

	p, err := pipeline.New(pipeline.Options{
		Config:  cfg,
		Store:   eventStore,
		Metrics: metrics.NewBatchMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	var override *pipeline.CategoryOverride
	if forceCategory != "" {
		override = &pipeline.CategoryOverride{Category: forceCategory, Subcategory: forceSubcat}
	}

	registry := adapters.NewRegistry()
	for _, path := range args {
		id := siteID
		if !cmd.Flags().Changed("site") {
			id = fixtureSiteID(path)
		}
		registry.Register(adapters.NewFixtureSource(id, path, override))
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	var total pipeline.Report
	for _, src := range registry.Sources() {
		records, err := src.Fetch(ctx)
		if err != nil {
			logger.Error("source fetch failed, skipping", "site", src.SiteID(), "error", err)
			continue
		}
		report, _ := processor.Process(ctx, records, src.Override())
		total.Total += report.Total
		total.Accepted += report.Accepted
		total.Duplicate += report.Duplicate
		total.InvalidCoordinates += report.InvalidCoordinates
		total.Failed += report.Failed
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Records:              %d\n", total.Total)
	fmt.Fprintf(os.Stderr, "  Accepted:             %d\n", total.Accepted)
	fmt.Fprintf(os.Stderr, "  Duplicates:           %d\n", total.Duplicate)
	fmt.Fprintf(os.Stderr, "  Invalid coordinates:  %d\n", total.InvalidCoordinates)
	fmt.Fprintf(os.Stderr, "  Failed:               %d\n", total.Failed)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// fixtureSiteID derives a site id from the fixture filename.
func fixtureSiteID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// buildConfig layers defaults, config file/env values and flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if dsn := viper.GetString("store.dsn"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if key := viper.GetString("geocode.locationiq_key"); key != "" {
		cfg.Geocode.LocationIQKey = key
	} else if key := os.Getenv("LOCATIONIQ_KEY"); key != "" {
		cfg.Geocode.LocationIQKey = key
	}
	if file := viper.GetString("taxonomy.file"); file != "" {
		cfg.Taxonomy.File = file
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Enabled = true
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg
}
