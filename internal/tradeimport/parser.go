package tradeimport

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// Parser converts raw broker CSV export text into trade records.
//
// Broker exports are unvalidated: headers may or may not be present, blank
// lines occur, quoting is inconsistent, and footer lines carry fewer fields
// than data rows. The parser never fails on malformed content; it degrades by
// omission, dropping rows it cannot understand and logging the reason at
// debug level. Given the same input it always produces the same output.
type Parser struct {
	mapper ColumnMapper
	logger ports.Logger
}

// Config holds configuration for the Parser.
type Config struct {
	Mapper ColumnMapper // Defaults to DefaultMapper when nil
	Logger ports.Logger
}

// Result is the outcome of one parse: the accepted records in input order and
// the number of post-header lines that were dropped as noise or malformed.
type Result struct {
	Records []domain.TradeRecord
	Skipped int
}

// New creates a new Parser.
func New(cfg Config) (*Parser, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Parser")
	}
	mapper := cfg.Mapper
	if mapper == nil {
		mapper = DefaultMapper()
	}
	return &Parser{mapper: mapper, logger: cfg.Logger}, nil
}

// Parse scans raw export text and returns the trade records it contains.
// Lines before the header sentinel are ignored; input without any sentinel
// yields zero records.
func (p *Parser) Parse(ctx context.Context, raw string) Result {
	cols := p.mapper.Columns()
	var res Result

	started := false
	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}

		if !started {
			if p.mapper.IsHeader(line) {
				started = true // The sentinel line itself is not a data row
			}
			continue
		}

		rec, reason := p.parseRow(line, cols)
		if reason != "" {
			res.Skipped++
			p.logger.Debug(ctx, "Skipping import row", map[string]interface{}{"line": lineNo, "reason": reason})
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// parseRow converts one post-header line into a record. A non-empty reason
// means the line was dropped.
func (p *Parser) parseRow(line string, cols Columns) (domain.TradeRecord, string) {
	var rec domain.TradeRecord

	fields := strings.Split(line, ",")
	if len(fields) < cols.MinFields {
		return rec, fmt.Sprintf("fewer than %d fields", cols.MinFields)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	symbol := stripQuotes(fields[cols.Symbol])
	if symbol == "" {
		return rec, "empty symbol"
	}
	if strings.EqualFold(symbol, "symbol") {
		// Re-check against the header label in case the sentinel scan
		// matched an earlier line.
		return rec, "header label in symbol field"
	}

	qty, err := strconv.ParseInt(stripQuotes(fields[cols.Quantity]), 10, 64)
	if err != nil {
		return rec, "non-numeric quantity"
	}
	if qty == 0 {
		return rec, "zero quantity"
	}

	price, err := decimal.NewFromString(stripQuotes(fields[cols.Price]))
	if err != nil {
		return rec, "non-numeric price"
	}
	if !price.IsPositive() {
		return rec, "non-positive price"
	}

	side := domain.Buy
	if qty < 0 {
		side = domain.Sell
		qty = -qty
	}
	description := stripQuotes(fields[cols.Description])
	// Description keywords take precedence over the quantity sign.
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "sold") || strings.Contains(lower, "sell"):
		side = domain.Sell
	case strings.Contains(lower, "bought") || strings.Contains(lower, "buy"):
		side = domain.Buy
	}

	rec = domain.TradeRecord{
		Symbol:      strings.ToUpper(symbol),
		Side:        side,
		Quantity:    qty,
		Price:       price,
		Date:        stripQuotes(fields[cols.Date]),
		Time:        stripQuotes(fields[cols.Time]),
		Description: description,
	}
	return rec, ""
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
