package commands

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/suryaprakash-sp/mybillbook-scrape/lib/export"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/restyutil"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/scrapers/billbook"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/serviceutil"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/telemetry"
	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	scrapeFormat    *string
	scrapeOutput    *string
	scrapeCategory  *string
	scrapeMinStock  *float64
	scrapeMaxStock  *float64
	scrapeMinPrice  *float64
	scrapeMaxPrice  *float64
	scrapeNoSummary *bool
	scrapeQuiet     *bool
	scrapeDebugHttp *bool
)

func init() {
	flags := scrapeCmd.Flags()
	scrapeFormat = flags.String("format", "all", "Export format: all, json, csv, xlsx or sqlite.")
	scrapeOutput = flags.String("output", "output", "Directory to write exports to.")
	scrapeCategory = flags.String("category", "", "Only keep items in this category (exact match).")
	scrapeMinStock = flags.Float64("min-stock", 0, "Only keep items with at least this much stock.")
	scrapeMaxStock = flags.Float64("max-stock", 0, "Only keep items with at most this much stock.")
	scrapeMinPrice = flags.Float64("min-price", 0, "Only keep items selling for at least this price.")
	scrapeMaxPrice = flags.Float64("max-price", 0, "Only keep items selling for at most this price.")
	scrapeNoSummary = flags.Bool("no-summary", false, "Skip the summary tables.")
	scrapeQuiet = flags.Bool("quiet", false, "Suppress per-page progress logging.")
	scrapeDebugHttp = flags.Bool("debug-http", false, "Dump every HTTP exchange to .dev/resty/billbook.")
	rootCmd.AddCommand(scrapeCmd)
}

// criteriaFromFlags only binds bounds the user actually passed, so a
// zero value like --min-stock 0 still acts as a real constraint.
func criteriaFromFlags(cmd *cobra.Command) inventory.Criteria {
	var criteria inventory.Criteria
	if cmd.Flags().Changed("category") {
		criteria.Category = scrapeCategory
	}
	if cmd.Flags().Changed("min-stock") {
		criteria.MinStock = scrapeMinStock
	}
	if cmd.Flags().Changed("max-stock") {
		criteria.MaxStock = scrapeMaxStock
	}
	if cmd.Flags().Changed("min-price") {
		criteria.MinPrice = scrapeMinPrice
	}
	if cmd.Flags().Changed("max-price") {
		criteria.MaxPrice = scrapeMaxPrice
	}
	return criteria
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--format <all|json|csv|xlsx|sqlite>] [--output <dir>]",
	Short: "Fetches the full inventory catalog and writes it to export files.",
	Run: func(cmd *cobra.Command, args []string) {
		format, err := export.ParseFormat(*scrapeFormat)
		if err != nil {
			serviceutil.Fatal("bad --format", err)
		}

		session, err := loadSession()
		if err != nil {
			serviceutil.Fatal("failed to load session credentials", err)
		}

		if *scrapeDebugHttp {
			billbook.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/billbook"))
		}
		telemetry.InstrumentPerfStats(cmd.Context())

		client, err := billbook.NewClient(billbook.ClientOptions{Session: session})
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}

		var progress inventory.ProgressFunc
		if !*scrapeQuiet {
			progress = func(processed, total int) {
				if processed%50 == 0 || processed == total {
					slog.Info("enriching inventory", "processed", processed, "total", total)
				}
			}
		}
		service := inventory.NewService(client, inventory.Options{Progress: progress})

		t1 := time.Now()
		result, err := service.Run(cmd.Context(), criteriaFromFlags(cmd))
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info(
			"scraping time",
			"seconds", time.Since(t1).Seconds(),
			"items", len(result.Items),
			"failed", len(result.FailedIds),
		)

		if len(result.Items) == 0 && result.CategorySuggestion != "" {
			slog.Warn(
				"no items matched the category filter",
				"category", *scrapeCategory,
				"did_you_mean", result.CategorySuggestion,
			)
		}

		paths, err := export.Write(*scrapeOutput, format, result)
		if err != nil {
			serviceutil.Fatal("failed to write exports", err)
		}
		for _, path := range paths {
			slog.Info("wrote export", "path", path)
		}

		if !*scrapeNoSummary {
			printSummary(result)
		}
	},
}

func printSummary(result *inventory.FetchResult) {
	summary := inventory.Summarize(result)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Items", summary.TotalItems})
	t.AppendRow(table.Row{"Failed detail lookups", summary.FailedCount})
	t.AppendRow(table.Row{"Categories", len(summary.Categories)})
	t.AppendRow(table.Row{"Min price", fmt.Sprintf("%.2f", summary.MinPrice)})
	t.AppendRow(table.Row{"Max price", fmt.Sprintf("%.2f", summary.MaxPrice)})
	t.AppendRow(table.Row{"Avg price", fmt.Sprintf("%.2f", summary.AvgPrice)})
	t.AppendRow(table.Row{"Total stock value", fmt.Sprintf("%.2f", summary.TotalValue)})
	t.Render()

	if len(summary.Categories) == 0 {
		return
	}
	names := make([]string, 0, len(summary.Categories))
	for name := range summary.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	ct := table.NewWriter()
	ct.SetOutputMirror(os.Stdout)
	ct.SetStyle(table.StyleRounded)
	ct.AppendHeader(table.Row{"Category", "Items"})
	for _, name := range names {
		ct.AppendRow(table.Row{name, summary.Categories[name]})
	}
	ct.Render()
}
