package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/engine"
	"github.com/nigelvd10/voorraad-analyse-app/internal/export"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository/memory"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "voorraad",
		Usage: "Reconcile stock exports and generate replenishment reports",
		Commands: []*cli.Command{
			reportCommand(),
			seedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Run a reconciliation pass over local files and write the report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "stock", Usage: "Stock export file (.csv or .xlsx)", Required: true},
			&cli.StringFlag{Name: "terms", Usage: "Commercial terms file"},
			&cli.StringFlag{Name: "shipments", Usage: "Inbound shipments file"},
			&cli.StringFlag{Name: "out", Usage: "Output file (extension selects the format)", Value: "voorraad_rapport.xlsx"},
			&cli.StringFlag{Name: "supplier", Usage: "Only include rows for this supplier"},
			&cli.StringFlag{Name: "status", Usage: "Only include rows with this status"},
			&cli.StringFlag{Name: "threshold-mode", Usage: "Overstock threshold mode: absolute or percent", Value: "percent"},
			&cli.Float64Flag{Name: "threshold-value", Usage: "Overstock threshold value", Value: 20},
			&cli.Float64Flag{Name: "safety-margin", Usage: "Safety margin percentage for order advice", Value: 10},
			&cli.StringFlag{Name: "date", Usage: "Evaluation date (YYYY-MM-DD), defaults to today"},
		},
		Action: runReport,
	}
}

func runReport(c *cli.Context) error {
	mode, ok := engine.ParseThresholdMode(c.String("threshold-mode"))
	if !ok {
		return fmt.Errorf("unknown threshold mode %q (expected absolute or percent)", c.String("threshold-mode"))
	}

	now := time.Now
	if raw := c.String("date"); raw != "" {
		day, err := time.Parse(etaLayout, raw)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
		now = func() time.Time { return day }
	}

	stock, err := loadStock(c.String("stock"))
	if err != nil {
		return err
	}

	var terms []domain.CommercialTerms
	if path := c.String("terms"); path != "" {
		if terms, err = loadTerms(path); err != nil {
			return err
		}
	}

	var shipments []domain.InboundShipment
	if path := c.String("shipments"); path != "" {
		if shipments, err = loadShipments(path); err != nil {
			return err
		}
	}

	eng := engine.NewWithClock(engine.Config{
		Threshold:       engine.ThresholdConfig{Mode: mode, Value: c.Float64("threshold-value")},
		SafetyMarginPct: c.Float64("safety-margin"),
	}, now)

	reports := service.NewReportService(
		memory.NewSnapshotStore(stock),
		memory.NewTermsStore(terms),
		memory.NewShipmentStore(shipments),
		eng,
		nil,
	)

	filter := domain.ReportFilter{
		Supplier: c.String("supplier"),
		Status:   c.String("status"),
	}

	report, err := reports.Report(context.Background(), filter)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := writeReport(out, report.Rows); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d rows\n", out, len(report.Rows))
	for _, sc := range report.Summary.StatusCounts {
		fmt.Printf("  %-13s %d\n", sc.Status.Label(), sc.Count)
	}
	fmt.Printf("  Voorraadwaarde %.2f\n", report.Summary.TotalValue)
	return nil
}

func writeReport(path string, rows []domain.EnrichedRow) error {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".csv"):
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.WriteCSV(f, rows)
	case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
		return export.SaveXLSX(path, rows)
	default:
		return fmt.Errorf("unsupported output extension for %s (expected .csv or .xlsx)", path)
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Seed the database from local files",
		Subcommands: []*cli.Command{
			{
				Name:  "terms",
				Usage: "Replace the commercial terms table from a file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "file", Usage: "Terms file with canonical columns", Required: true},
				},
				Action: seedTerms,
			},
			{
				Name:  "shipments",
				Usage: "Replace the inbound shipments table from a file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "file", Usage: "Shipments file with canonical columns", Required: true},
				},
				Action: seedShipments,
			},
		},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func seedTerms(c *cli.Context) error {
	rows, err := loadTerms(c.String("file"))
	if err != nil {
		return err
	}

	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM commercial_terms"); err != nil {
		return fmt.Errorf("failed to clear commercial_terms: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO commercial_terms
			(ean, sell_price, buy_price, shipping_cost, other_cost, supplier_name, moq, lead_time_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.EAN, row.SellPrice, row.BuyPrice, row.ShippingCost,
			row.OtherCost, row.SupplierName, row.MOQ, row.LeadTimeDays); err != nil {
			return fmt.Errorf("failed to insert terms for %s: %w", row.EAN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Printf("Seeded %d terms rows\n", len(rows))
	return nil
}

func seedShipments(c *cli.Context) error {
	rows, err := loadShipments(c.String("file"))
	if err != nil {
		return err
	}

	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM inbound_shipments"); err != nil {
		return fmt.Errorf("failed to clear inbound_shipments: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO inbound_shipments (ean, quantity, eta, supplier_name)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		var eta sql.NullTime
		if row.ETA != nil {
			eta = sql.NullTime{Time: *row.ETA, Valid: true}
		}
		if _, err := stmt.Exec(row.EAN, row.Quantity, eta, row.SupplierName); err != nil {
			return fmt.Errorf("failed to insert shipment for %s: %w", row.EAN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Printf("Seeded %d shipment rows\n", len(rows))
	return nil
}
