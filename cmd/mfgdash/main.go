package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/cache"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/config"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/forecast"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/parser"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/region"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/service"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/store"
	"github.com/mojavemfg/mfgdashboard-sub000/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "mfgdash",
		Usage: "Operational tooling for the order and inventory dashboard",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import order export files into the persisted stores",
				Subcommands: []*cli.Command{
					{
						Name:      "items",
						Usage:     "Import an order-items export (one row per line item)",
						ArgsUsage: "<file>...",
						Action:    runImport(importOrderItems),
					},
					{
						Name:      "orders",
						Usage:     "Import a sold-orders export (one row per order)",
						ArgsUsage: "<file>...",
						Action:    runImport(importSoldOrders),
					},
				},
			},
			{
				Name:   "clear",
				Usage:  "Empty both persisted order collections",
				Action: runClear,
			},
			{
				Name:  "forecast",
				Usage: "Compute reorder forecasts from component and consumption JSON files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "components",
						Usage:    "JSON file with the component catalog",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "events",
						Usage: "JSON file with the consumption log",
					},
					&cli.StringFlag{
						Name:  "as-of",
						Usage: "Reference date (YYYY-MM-DD), defaults to today",
					},
				},
				Action: runForecast,
			},
			{
				Name:   "regions",
				Usage:  "Print order volume and revenue by US state and by country",
				Action: runRegions,
			},
			{
				Name:      "convert",
				Usage:     "Convert an XLSX export to delimited text on stdout",
				ArgsUsage: "<file.xlsx>",
				Action:    runConvert,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newIngestService(ctx context.Context) (*service.IngestService, func(), error) {
	cfg := config.Load()
	logger.SetLevel("release")

	blob, closeBlob, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	items := store.NewRecordStore(blob, "order_items", func(r domain.OrderRecord) string {
		return r.TransactionID
	})
	summaries := store.NewRecordStore(blob, "sold_orders", func(r domain.SaleSummaryRecord) string {
		return r.OrderID
	})

	svc := service.NewIngestService(items, summaries, nil, cache.NewNoopAnalyticsCache())
	return svc, closeBlob, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config) (store.BlobStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		pg, err := store.NewPostgresBlobStore(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	case "memory":
		return store.NewMemoryBlobStore(), nil, nil
	default:
		fs, err := store.NewFileBlobStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	}
}

type importAction func(ctx context.Context, svc *service.IngestService, filename, text string) (*service.ImportResult, error)

func importOrderItems(ctx context.Context, svc *service.IngestService, filename, text string) (*service.ImportResult, error) {
	return svc.ImportOrderItems(ctx, filename, text)
}

func importSoldOrders(ctx context.Context, svc *service.IngestService, filename, text string) (*service.ImportResult, error) {
	return svc.ImportSoldOrders(ctx, filename, text)
}

func runImport(action importAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("at least one file argument is required")
		}

		ctx := c.Context
		svc, closeStore, err := newIngestService(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		if closeStore != nil {
			defer closeStore()
		}

		for _, path := range c.Args().Slice() {
			text, err := readExport(path)
			if err != nil {
				return err
			}

			result, err := action(ctx, svc, filepath.Base(path), text)
			if err != nil {
				if errors.Is(err, service.ErrNothingToImport) {
					fmt.Printf("%s: no usable rows, skipped\n", path)
					continue
				}
				return fmt.Errorf("import %s: %w", path, err)
			}

			fmt.Printf("%s: %d records, %d added, %d duplicates, %d parse errors\n",
				path, result.Records, result.Added, result.Duplicates, result.ParseErrors)
		}
		return nil
	}
}

// readExport loads a delimited-text export, converting XLSX files first so
// both formats enter the same parse path.
func readExport(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		text, err := parser.ConvertXLSX(f)
		if err != nil {
			return "", fmt.Errorf("failed to convert %s: %w", path, err)
		}
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func runClear(c *cli.Context) error {
	svc, closeStore, err := newIngestService(c.Context)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	if err := svc.ClearOrders(c.Context); err != nil {
		return fmt.Errorf("failed to clear order collections: %w", err)
	}
	fmt.Println("order collections cleared")
	return nil
}

func runForecast(c *cli.Context) error {
	var components []domain.Component
	if err := readJSONFile(c.String("components"), &components); err != nil {
		return err
	}

	var events []domain.ConsumptionEvent
	if path := c.String("events"); path != "" {
		if err := readJSONFile(path, &events); err != nil {
			return err
		}
	}

	var asOf time.Time
	if raw := c.String("as-of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("as-of must be formatted as YYYY-MM-DD: %w", err)
		}
		asOf = parsed
	}

	results, err := forecast.Run(c.Context, components, events, asOf)
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}
	return printJSON(results)
}

func runRegions(c *cli.Context) error {
	svc, closeStore, err := newIngestService(c.Context)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	stats := region.Stats(svc.SoldOrders(c.Context))
	return printJSON(stats)
}

func runConvert(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one XLSX file argument is required")
	}

	path := c.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	text, err := parser.ConvertXLSX(f)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", path, err)
	}
	fmt.Print(text)
	return nil
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
