package domain

import "github.com/shopspring/decimal"

// DailyStat aggregates PnL and win-rate figures for one calendar date.
type DailyStat struct {
	Date    string          `json:"date"`              // ISO date string, unique per entry
	PnL     decimal.Decimal `json:"pnl"`               // Sum of NetPnL across all trades that date
	Trades  int             `json:"trades"`            // Raw count of records that date
	WinRate *float64        `json:"winRate,omitempty"` // Percent of symbols with positive aggregate PnL; nil when every symbol was flat
}

// OverallStats is the all-time summary over the full trade set. It is always
// derived on demand, never persisted.
type OverallStats struct {
	TotalTrades int     `json:"totalTrades"`
	WinCount    int     `json:"winCount"` // Trades with NetPnL > 0
	LossCount   int     `json:"lossCount"` // Trades with NetPnL < 0; zero-PnL trades are neither
	WinRate     float64 `json:"winRate"`  // Percent, 0 when no wins and no losses

	TotalPnL  decimal.Decimal `json:"totalPnl"`
	AvgPnL    decimal.Decimal `json:"avgPnl"`
	AvgWinner decimal.Decimal `json:"avgWinner"` // Mean NetPnL over winning trades, zero when none
	AvgLoser  decimal.Decimal `json:"avgLoser"`  // Mean NetPnL over losing trades, zero when none

	// ProfitFactor is gross winning PnL over the magnitude of gross losing
	// PnL. It is omitted (nil) when there are wins but no losses, and zero
	// when there are neither.
	ProfitFactor *decimal.Decimal `json:"profitFactor,omitempty"`

	BestTrade  decimal.Decimal `json:"bestTrade"`  // Max single-trade NetPnL, zero when no trades
	WorstTrade decimal.Decimal `json:"worstTrade"` // Min single-trade NetPnL, zero when no trades
}
