package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/adapters/sqlitestore"
	"tradeJournal/internal/app"
	"tradeJournal/internal/tradeimport"
)

// One-shot importer: reads a broker CSV export, saves the trades into the
// configured SQLite database and prints the resulting daily summary.
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <export.csv>", filepath.Base(os.Args[0]))
	}
	path := os.Args[1]

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(cfg.LogLevel)
	defer appLogger.Sync()

	// 3. Initialize Store
	store, err := sqlitestore.New(sqlitestore.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize trade store: %v", err)
	}
	defer store.Close()

	// 4. Wire the service
	parser, err := tradeimport.New(tradeimport.Config{Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize import parser: %v", err)
	}
	svc, err := app.NewJournalService(appLogger, store, parser, cfg.ImportPreview)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Cannot read file %s: %v", path, err)
	}

	ctx := context.Background()
	result, err := svc.ImportCSV(ctx, path, raw)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Imported %d trades (%d lines skipped) from %s\n", result.Saved, result.Skipped, path)

	stats, err := svc.DailyStats(ctx)
	if err != nil {
		log.Fatalf("Failed to compute daily stats: %v", err)
	}
	for _, day := range stats {
		rate := "n/a"
		if day.WinRate != nil {
			rate = fmt.Sprintf("%.0f%%", *day.WinRate)
		}
		fmt.Printf("%s  trades=%d  pnl=%s  winRate=%s\n", day.Date, day.Trades, day.PnL.StringFixed(2), rate)
	}
}
