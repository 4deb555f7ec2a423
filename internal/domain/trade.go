package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TradeSide represents the direction of a trade fill (BUY or SELL).
type TradeSide string

const (
	Buy  TradeSide = "BUY"
	Sell TradeSide = "SELL"
)

// TradeRecord represents one fill (entry or exit) parsed from a broker export
// or entered manually through the journal API.
type TradeRecord struct {
	ID          string          `json:"id,omitempty"`          // Assigned by the store on save (empty until then)
	Symbol      string          `json:"symbol"`                // Ticker, upper case, non-empty
	Side        TradeSide       `json:"side"`                  // BUY or SELL, never ambiguous
	Quantity    int64           `json:"quantity"`              // Shares/contracts, always positive
	Price       decimal.Decimal `json:"price"`                 // Fill price, always positive
	Date        string          `json:"date"`                  // Date or date-time string; the date part keys aggregation
	Time        string          `json:"time,omitempty"`        // Optional time of day
	Description string          `json:"description,omitempty"` // Free-text annotation from the export
	NetPnL      decimal.Decimal `json:"netPnL"`                // Realized PnL, zero when unknown
}

// DateKey returns the calendar-date portion of Date, stripping any time
// component separated by 'T' or a space.
func (t *TradeRecord) DateKey() string {
	d := t.Date
	if i := strings.IndexAny(d, "T "); i >= 0 {
		d = d[:i]
	}
	return d
}

// Validate checks the record invariants. It does not normalize; callers that
// accept external input should call Normalize first.
func (t *TradeRecord) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("symbol must not be empty")
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("side must be %s or %s, got %q", Buy, Sell, t.Side)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", t.Price)
	}
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("date must not be empty")
	}
	return nil
}

// Normalize upper-cases and trims the symbol and trims the date/time fields.
func (t *TradeRecord) Normalize() {
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	t.Date = strings.TrimSpace(t.Date)
	t.Time = strings.TrimSpace(t.Time)
}
