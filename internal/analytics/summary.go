package analytics

import (
	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
)

// Summarize computes the all-time statistics over the full trade set. It is
// computed fresh on every call; nothing is cached or persisted.
//
// A trade is a win when NetPnL > 0 and a loss when NetPnL < 0; zero-PnL
// trades are excluded from both counts, so WinCount+LossCount can be smaller
// than TotalTrades. An empty trade set yields the zero-valued summary.
func Summarize(records []domain.TradeRecord) domain.OverallStats {
	stats := domain.OverallStats{}
	if len(records) == 0 {
		zero := decimal.Zero
		stats.ProfitFactor = &zero
		return stats
	}

	var grossWins, grossLosses decimal.Decimal
	best := records[0].NetPnL
	worst := records[0].NetPnL

	for i := range records {
		pnl := records[i].NetPnL
		stats.TotalTrades++
		stats.TotalPnL = stats.TotalPnL.Add(pnl)

		switch pnl.Sign() {
		case 1:
			stats.WinCount++
			grossWins = grossWins.Add(pnl)
		case -1:
			stats.LossCount++
			grossLosses = grossLosses.Add(pnl)
		}

		if pnl.GreaterThan(best) {
			best = pnl
		}
		if pnl.LessThan(worst) {
			worst = pnl
		}
	}

	stats.BestTrade = best
	stats.WorstTrade = worst
	stats.AvgPnL = stats.TotalPnL.Div(decimal.NewFromInt(int64(stats.TotalTrades)))

	if decided := stats.WinCount + stats.LossCount; decided > 0 {
		stats.WinRate = float64(stats.WinCount) / float64(decided) * 100
	}
	if stats.WinCount > 0 {
		stats.AvgWinner = grossWins.Div(decimal.NewFromInt(int64(stats.WinCount)))
	}
	if stats.LossCount > 0 {
		stats.AvgLoser = grossLosses.Div(decimal.NewFromInt(int64(stats.LossCount)))
	}

	// Profit factor is undefined when there are wins but nothing on the
	// losing side to divide by; it stays nil in that case.
	switch {
	case stats.LossCount > 0:
		pf := grossWins.Div(grossLosses.Abs())
		stats.ProfitFactor = &pf
	case stats.WinCount == 0:
		zero := decimal.Zero
		stats.ProfitFactor = &zero
	}

	return stats
}
