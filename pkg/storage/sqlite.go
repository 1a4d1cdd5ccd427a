package storage

import (
	"database/sql"

	"github.com/infotraining/quote_syncer/pkg/xerror"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbPath string) (DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "sqlite3: open %s failed", dbPath)
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS quotes (symbol TEXT PRIMARY KEY, price REAL, updated_at BIGINT)"); err != nil {
		db.Close()
		return nil, xerror.Wrap(err, xerror.DB, "sqlite3: create table quotes failed")
	}

	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) UpdateQuote(symbol string, price float64, timestamp int64) error {
	upsertSql := "INSERT INTO quotes (symbol, price, updated_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(symbol) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at " +
		"WHERE excluded.updated_at >= quotes.updated_at"
	if _, err := s.db.Exec(upsertSql, symbol, price, timestamp); err != nil {
		return xerror.Wrapf(err, xerror.DB, "sqlite3: update quote %s failed", symbol)
	}
	return nil
}

func (s *SQLiteDB) GetQuote(symbol string) (*Quote, error) {
	quote := Quote{Symbol: symbol}
	err := s.db.QueryRow("SELECT price, updated_at FROM quotes WHERE symbol = ?", symbol).Scan(&quote.Price, &quote.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrQuoteNotExists
	} else if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "sqlite3: query quote %s failed", symbol)
	}
	return &quote, nil
}

func (s *SQLiteDB) IsQuoteExist(symbol string) (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM quotes WHERE symbol = ?", symbol).Scan(&count); err != nil {
		return false, xerror.Wrapf(err, xerror.DB, "sqlite3: query quote %s failed", symbol)
	}
	return count > 0, nil
}

func (s *SQLiteDB) RemoveQuote(symbol string) error {
	if _, err := s.db.Exec("DELETE FROM quotes WHERE symbol = ?", symbol); err != nil {
		return xerror.Wrapf(err, xerror.DB, "sqlite3: delete quote %s failed", symbol)
	}
	return nil
}

func (s *SQLiteDB) ListQuotes() ([]Quote, error) {
	rows, err := s.db.Query("SELECT symbol, price, updated_at FROM quotes ORDER BY symbol")
	if err != nil {
		return nil, xerror.Wrap(err, xerror.DB, "sqlite3: query quotes failed")
	}
	defer rows.Close()

	return scanQuotes(rows)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
