package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"radarcli/internal/analytics"
	"radarcli/internal/config"
	"radarcli/internal/ehub"
	"radarcli/internal/exporter"
	"radarcli/internal/infrastructure"
	"radarcli/internal/services"
)

const dateLayout = "2006-01-02"

func main() {
	outputDir := flag.String("out", "", "output directory for reports (defaults to the configured reports directory)")
	days := flag.Int("days", 0, "trailing window in days (defaults to the configured lookback)")
	fromFlag := flag.String("from", "", "range start as YYYY-MM-DD (overrides -days, requires -to)")
	toFlag := flag.String("to", "", "range end as YYYY-MM-DD")
	first := flag.String("first", "", "first product description for a spread report")
	second := flag.String("second", "", "second product description for a spread report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *outputDir == "" {
		*outputDir = cfg.Paths.ReportsDir
	}

	from, to, err := resolveRange(cfg, *days, *fromFlag, *toFlag)
	if err != nil {
		logger.Error("Invalid date range", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := ehub.NewClient(cfg.Venue, logger)
	service := services.NewAnalyticsService(cfg, client, logger, nil)

	logger.Info("Loading analysis session",
		"from", from.Format(dateLayout),
		"to", to.Format(dateLayout))
	if err := service.LoadSession(ctx, from, to); err != nil {
		logger.Error("Failed to load analysis session", "error", err)
		os.Exit(1)
	}

	reports := exporter.NewReportExporter(*outputDir)

	summary, err := service.Summary(ctx)
	if err != nil {
		logger.Error("Failed to build daily summary", "error", err)
		os.Exit(1)
	}
	filename, err := reports.ExportSummary(summary)
	if err != nil {
		logger.Error("Failed to export daily summary", "error", err)
		os.Exit(1)
	}
	logger.Info("Exported daily summary", "file", filename)

	tables, err := exportProducts(ctx, service, reports, logger)
	if err != nil {
		logger.Error("Failed to export product reports", "error", err)
		os.Exit(1)
	}

	workbook := exporter.NewWorkbookExporter(*outputDir)
	workbookName, err := workbook.ExportWorkbook(summary, tables)
	if err != nil {
		logger.Error("Failed to export workbook", "error", err)
		os.Exit(1)
	}
	logger.Info("Exported workbook", "file", workbookName)

	if *first != "" && *second != "" {
		if err := exportSpread(ctx, service, reports, logger, *first, *second); err != nil {
			logger.Error("Failed to export spread report", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Report generation complete", "output_dir", *outputDir)
}

// resolveRange turns the CLI flags into a concrete date range.
func resolveRange(cfg *config.Config, days int, fromFlag, toFlag string) (time.Time, time.Time, error) {
	if (fromFlag == "") != (toFlag == "") {
		return time.Time{}, time.Time{}, fmt.Errorf("-from and -to must be given together")
	}
	if fromFlag != "" {
		from, err := time.Parse(dateLayout, fromFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date: %w", err)
		}
		to, err := time.Parse(dateLayout, toFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date: %w", err)
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("range end precedes range start")
		}
		return from, to, nil
	}

	if days <= 0 {
		days = cfg.Analysis.LookbackDays
	}
	to := time.Now()
	return to.AddDate(0, 0, -days), to, nil
}

// exportProducts writes bar and volume reports for every selectable
// product concurrently. Products without enough trades are skipped, not
// treated as failures.
func exportProducts(ctx context.Context, service *services.AnalyticsService, reports *exporter.ReportExporter, logger *slog.Logger) ([]*analytics.BarTable, error) {
	products, err := service.Products(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		tables []*analytics.BarTable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, product := range products {
		product := product
		g.Go(func() error {
			analysis, err := service.ProductAnalysis(gctx, product.Description)
			if err != nil {
				var insufficient *analytics.InsufficientDataError
				if errors.As(err, &insufficient) {
					logger.Info("Skipping product with too few trades",
						"product", product.Description,
						"trades", insufficient.Have)
					return nil
				}
				return fmt.Errorf("product %s: %w", product.Description, err)
			}

			if _, err := reports.ExportBars(analysis.Bars); err != nil {
				return err
			}
			if _, err := reports.ExportVolume(analysis.Volume); err != nil {
				return err
			}

			mu.Lock()
			tables = append(tables, analysis.Bars)
			mu.Unlock()

			logger.Info("Exported product reports",
				"product", product.Description,
				"bars", len(analysis.Bars.Bars))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func exportSpread(ctx context.Context, service *services.AnalyticsService, reports *exporter.ReportExporter, logger *slog.Logger, first, second string) error {
	table, err := service.Spread(ctx, first, second)
	if err != nil {
		return err
	}

	filenames, err := reports.ExportSpread(table)
	if err != nil {
		return err
	}
	logger.Info("Exported spread reports",
		"first", first,
		"second", second,
		"files", filenames)
	return nil
}
