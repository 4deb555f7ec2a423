package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// Store implements ports.TradeStore using SQLite.
type Store struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite store.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// New creates a new SQLite store instance.
func New(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite store")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/tradejournal.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %v", ports.ErrStoreUnavailable, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &Store{db: db, logger: cfg.Logger}

	if err := store.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite store ready", map[string]interface{}{"path": dbPath})

	return store, nil
}

// initializeSchema creates the trades table if it doesn't exist.
func (s *Store) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price TEXT NOT NULL,
		trade_date TEXT NOT NULL,
		trade_time TEXT DEFAULT '',
		description TEXT DEFAULT '',
		net_pnl TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades (trade_date);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		s.logger.Info(context.Background(), "Closing SQLite store")
		return s.db.Close()
	}
	return nil
}

// SaveAll appends records inside a single transaction so a failure saves
// nothing.
func (s *Store) SaveAll(ctx context.Context, records []domain.TradeRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", ports.ErrStoreUnavailable, err)
	}

	const query = `
	INSERT INTO trades (symbol, side, quantity, price, trade_date, trade_time, description, net_pnl)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range records {
		r := &records[i]
		if _, err := tx.ExecContext(ctx, query,
			r.Symbol, string(r.Side), r.Quantity, r.Price.String(),
			r.Date, r.Time, r.Description, r.NetPnL.String()); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("%w: failed to insert trade for symbol %s: %v", ports.ErrSaveFailed, r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: failed to commit trades: %v", ports.ErrSaveFailed, err)
	}
	s.logger.Debug(ctx, "Trades saved", map[string]interface{}{"count": len(records)})
	return len(records), nil
}

// GetAll retrieves all trades in insertion order.
func (s *Store) GetAll(ctx context.Context) ([]domain.TradeRecord, error) {
	const query = `
	SELECT id, symbol, side, quantity, COALESCE(price, '0'), trade_date,
	       COALESCE(trade_time, ''), COALESCE(description, ''), COALESCE(net_pnl, '0')
	FROM trades
	ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query trades: %v", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	records := make([]domain.TradeRecord, 0)
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan trade: %v", ports.ErrQueryFailed, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating trade rows: %v", ports.ErrQueryFailed, err)
	}
	return records, nil
}

// ClearAll removes every trade.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return fmt.Errorf("%w: failed to clear trades: %v", ports.ErrDeleteFailed, err)
	}
	s.logger.Debug(ctx, "Trades cleared")
	return nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.TradeRecord.
func scanTrade(sc scanner) (domain.TradeRecord, error) {
	var rec domain.TradeRecord
	var id int64
	var side, price, pnl string
	if err := sc.Scan(&id, &rec.Symbol, &side, &rec.Quantity, &price,
		&rec.Date, &rec.Time, &rec.Description, &pnl); err != nil {
		return rec, err
	}
	rec.ID = fmt.Sprintf("%d", id)
	rec.Side = domain.TradeSide(side)

	var err error
	if rec.Price, err = decimal.NewFromString(price); err != nil {
		return rec, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	if rec.NetPnL, err = decimal.NewFromString(pnl); err != nil {
		return rec, fmt.Errorf("invalid stored net_pnl %q: %w", pnl, err)
	}
	return rec, nil
}
