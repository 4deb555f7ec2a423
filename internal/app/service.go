package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tradeJournal/internal/analytics"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/tradeimport"
	"tradeJournal/internal/utils"
)

// Binary signatures rejected before the parser ever sees the payload.
// Spreadsheet binaries are the common mistaken upload.
var binaryMagics = [][]byte{
	{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, // OLE compound file (.xls)
	{'P', 'K', 0x03, 0x04},                            // zip container (.xlsx)
}

// ImportResult reports the outcome of one CSV import: how many records were
// persisted, how many input lines were dropped as noise, and a small preview
// sample for the caller to display.
type ImportResult struct {
	Saved   int                  `json:"saved"`
	Skipped int                  `json:"skipped"`
	Preview []domain.TradeRecord `json:"preview"`
}

// JournalService orchestrates the trade journal: CSV import, manual entries,
// and the derived statistics. All operations are short-lived, single-request
// computations; the only suspension points are the store calls, which are
// awaited sequentially.
type JournalService struct {
	logger      ports.Logger
	store       ports.TradeStore
	parser      *tradeimport.Parser
	previewSize int
}

// NewJournalService creates a new application service instance.
func NewJournalService(logger ports.Logger, store ports.TradeStore, parser *tradeimport.Parser, previewSize int) (*JournalService, error) {
	if logger == nil || store == nil || parser == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	if previewSize <= 0 {
		return nil, fmt.Errorf("previewSize must be positive, got %d", previewSize)
	}
	return &JournalService{
		logger:      logger,
		store:       store,
		parser:      parser,
		previewSize: previewSize,
	}, nil
}

// ImportCSV parses raw broker export text and persists every accepted record.
// Unsupported file formats are rejected before parsing; malformed rows inside
// a supported file are dropped silently (logged only) and counted in the
// result. The save is all-or-nothing: on a store failure nothing is reported
// as partially saved.
func (s *JournalService) ImportCSV(ctx context.Context, filename string, raw []byte) (ImportResult, error) {
	if err := checkFormat(filename, raw); err != nil {
		return ImportResult{}, err
	}

	parsed := s.parser.Parse(ctx, string(raw))
	if len(parsed.Records) == 0 {
		// Nothing to import is not an error.
		s.logger.Info(ctx, "Import found no trade rows", map[string]interface{}{"filename": filename, "skipped": parsed.Skipped})
		return ImportResult{Skipped: parsed.Skipped, Preview: []domain.TradeRecord{}}, nil
	}

	saved, err := s.store.SaveAll(ctx, parsed.Records)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to save imported trades: %w", err)
	}

	preview := parsed.Records
	if len(preview) > s.previewSize {
		preview = preview[:s.previewSize]
	}
	s.logger.Info(ctx, "Trades imported", map[string]interface{}{"filename": filename, "saved": saved, "skipped": parsed.Skipped})
	return ImportResult{Saved: saved, Skipped: parsed.Skipped, Preview: preview}, nil
}

// AddTrade validates and persists a single manual journal entry.
func (s *JournalService) AddTrade(ctx context.Context, rec domain.TradeRecord) error {
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrInvalidRecord, err)
	}
	if _, err := s.store.SaveAll(ctx, []domain.TradeRecord{rec}); err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	s.logger.Info(ctx, "Trade added", map[string]interface{}{"symbol": rec.Symbol, "side": rec.Side})
	return nil
}

// ListTrades returns the full stored collection in insertion order.
func (s *JournalService) ListTrades(ctx context.Context) ([]domain.TradeRecord, error) {
	return s.store.GetAll(ctx)
}

// ClearTrades removes every record from the store.
func (s *JournalService) ClearTrades(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}
	s.logger.Info(ctx, "Trade collection cleared")
	return nil
}

// DailyStats computes the per-day statistics over the store's current
// contents. Read-only; an empty store yields an empty slice.
func (s *JournalService) DailyStats(ctx context.Context) ([]domain.DailyStat, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades for daily stats: %w", err)
	}
	return analytics.AggregateByDay(records), nil
}

// OverallStats computes the all-time summary over the store's current
// contents. Read-only; an empty store yields the zero-valued summary.
func (s *JournalService) OverallStats(ctx context.Context) (domain.OverallStats, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return domain.OverallStats{}, fmt.Errorf("failed to load trades for overall stats: %w", err)
	}
	return analytics.Summarize(records), nil
}

// ExportCSV writes the stored collection to w in the import column layout.
func (s *JournalService) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trades for export: %w", err)
	}
	return utils.WriteTradesToCSV(w, records)
}

// checkFormat rejects payloads that are clearly not delimited text. The
// parser itself never fails, so this is the one place a user-visible format
// error can originate.
func checkFormat(filename string, raw []byte) error {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && ext != ".csv" && ext != ".txt" {
		return fmt.Errorf("%w: %s", ports.ErrUnsupportedFormat, ext)
	}
	for _, magic := range binaryMagics {
		if bytes.HasPrefix(raw, magic) {
			return fmt.Errorf("%w: binary spreadsheet data", ports.ErrUnsupportedFormat)
		}
	}
	if bytes.IndexByte(raw, 0x00) >= 0 {
		return fmt.Errorf("%w: binary data", ports.ErrUnsupportedFormat)
	}
	return nil
}
