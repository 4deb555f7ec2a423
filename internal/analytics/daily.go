package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
)

// AggregateByDay groups trades by calendar date and computes per-day PnL,
// trade counts and win rate, sorted ascending by date.
//
// Win/loss classification is per symbol, not per trade: a round trip is often
// split across multiple fill records, and aggregating each symbol's PnL for
// the day before classifying avoids counting one profitable round trip as
// several wins. Symbols whose daily PnL nets to zero count as neither, and a
// day where every symbol is flat has no win rate at all.
func AggregateByDay(records []domain.TradeRecord) []domain.DailyStat {
	type dayGroup struct {
		trades   int
		bySymbol map[string]decimal.Decimal
	}

	days := make(map[string]*dayGroup)
	for i := range records {
		r := &records[i]
		key := r.DateKey()
		g := days[key]
		if g == nil {
			g = &dayGroup{bySymbol: make(map[string]decimal.Decimal)}
			days[key] = g
		}
		g.trades++
		g.bySymbol[r.Symbol] = g.bySymbol[r.Symbol].Add(r.NetPnL)
	}

	stats := make([]domain.DailyStat, 0, len(days))
	for date, g := range days {
		var pnl decimal.Decimal
		wins, losses := 0, 0
		for _, symbolPnL := range g.bySymbol {
			pnl = pnl.Add(symbolPnL)
			switch symbolPnL.Sign() {
			case 1:
				wins++
			case -1:
				losses++
			}
		}

		stat := domain.DailyStat{Date: date, PnL: pnl, Trades: g.trades}
		if wins+losses > 0 {
			rate := math.Round(float64(wins) / float64(wins+losses) * 100)
			stat.WinRate = &rate
		}
		stats = append(stats, stat)
	}

	// Lexicographic order equals chronological order for zero-padded ISO dates.
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}
