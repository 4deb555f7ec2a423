package utils

import (
	"encoding/csv"
	"io"
	"strconv"

	"tradeJournal/internal/domain"
)

// WriteTradesToCSV writes records to w using the same column layout the
// importer consumes, so an export can be re-imported.
func WriteTradesToCSV(w io.Writer, records []domain.TradeRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"Symbol", "Description", "Quantity", "Price", "Date", "Time", "NetPnL"})

	for i := range records {
		r := &records[i]
		qty := r.Quantity
		if r.Side == domain.Sell {
			qty = -qty
		}
		writer.Write([]string{
			r.Symbol,
			r.Description,
			strconv.FormatInt(qty, 10),
			r.Price.String(),
			r.Date,
			r.Time,
			r.NetPnL.String(),
		})
	}
	return writer.Error()
}
