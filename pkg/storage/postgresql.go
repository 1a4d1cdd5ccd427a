package storage

import (
	"database/sql"
	"fmt"

	"github.com/infotraining/quote_syncer/pkg/xerror"

	_ "github.com/lib/pq"
)

type PostgresqlDB struct {
	db *sql.DB
}

func NewPostgresqlDB(host string, port int, user string, password string) (DB, error) {
	url := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", user, password, host, port, "postgres")
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "postgresql: open %s:%d failed", host, port)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", remoteDBName)); err != nil {
		db.Close()
		return nil, xerror.Wrapf(err, xerror.DB, "postgresql: create schema %s failed", remoteDBName)
	}

	if _, err = db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.quotes (symbol VARCHAR(64) PRIMARY KEY, price DOUBLE PRECISION, updated_at BIGINT)", remoteDBName)); err != nil {
		db.Close()
		return nil, xerror.Wrap(err, xerror.DB, "postgresql: create table quotes failed")
	}

	return &PostgresqlDB{db: db}, nil
}

func (s *PostgresqlDB) UpdateQuote(symbol string, price float64, timestamp int64) error {
	upsertSql := fmt.Sprintf("INSERT INTO %s.quotes AS q (symbol, price, updated_at) VALUES ($1, $2, $3) "+
		"ON CONFLICT (symbol) DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at "+
		"WHERE EXCLUDED.updated_at >= q.updated_at", remoteDBName)
	if _, err := s.db.Exec(upsertSql, symbol, price, timestamp); err != nil {
		return xerror.Wrapf(err, xerror.DB, "postgresql: update quote %s failed", symbol)
	}
	return nil
}

func (s *PostgresqlDB) GetQuote(symbol string) (*Quote, error) {
	quote := Quote{Symbol: symbol}
	query := fmt.Sprintf("SELECT price, updated_at FROM %s.quotes WHERE symbol = $1", remoteDBName)
	err := s.db.QueryRow(query, symbol).Scan(&quote.Price, &quote.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrQuoteNotExists
	} else if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "postgresql: query quote %s failed", symbol)
	}
	return &quote, nil
}

func (s *PostgresqlDB) IsQuoteExist(symbol string) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s.quotes WHERE symbol = $1", remoteDBName)
	if err := s.db.QueryRow(query, symbol).Scan(&count); err != nil {
		return false, xerror.Wrapf(err, xerror.DB, "postgresql: query quote %s failed", symbol)
	}
	return count > 0, nil
}

func (s *PostgresqlDB) RemoveQuote(symbol string) error {
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s.quotes WHERE symbol = $1", remoteDBName), symbol); err != nil {
		return xerror.Wrapf(err, xerror.DB, "postgresql: delete quote %s failed", symbol)
	}
	return nil
}

func (s *PostgresqlDB) ListQuotes() ([]Quote, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT symbol, price, updated_at FROM %s.quotes ORDER BY symbol", remoteDBName))
	if err != nil {
		return nil, xerror.Wrap(err, xerror.DB, "postgresql: query quotes failed")
	}
	defer rows.Close()

	return scanQuotes(rows)
}

func (s *PostgresqlDB) Close() error {
	return s.db.Close()
}
