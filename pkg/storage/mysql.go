package storage

import (
	"database/sql"
	"fmt"

	"github.com/infotraining/quote_syncer/pkg/xerror"

	_ "github.com/go-sql-driver/mysql"
)

type MysqlDB struct {
	db *sql.DB
}

func NewMysqlDB(host string, port int, user string, password string) (DB, error) {
	dbForDDL, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/", user, password, host, port))
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: open %s@tcp(%s:%d) failed", user, host, port)
	}

	if _, err := dbForDDL.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", remoteDBName)); err != nil {
		dbForDDL.Close()
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: create database %s failed", remoteDBName)
	}
	dbForDDL.Close()

	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", user, password, host, port, remoteDBName))
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: open %s@tcp(%s:%d)/%s failed", user, host, port, remoteDBName)
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS quotes (`symbol` VARCHAR(64) PRIMARY KEY, `price` DOUBLE, `updated_at` BIGINT)"); err != nil {
		db.Close()
		return nil, xerror.Wrap(err, xerror.DB, "mysql: create table quotes failed")
	}

	return &MysqlDB{db: db}, nil
}

func (s *MysqlDB) UpdateQuote(symbol string, price float64, timestamp int64) error {
	// assignments run left to right, price must see the old updated_at
	upsertSql := "INSERT INTO quotes (symbol, price, updated_at) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE " +
		"price = IF(VALUES(updated_at) >= updated_at, VALUES(price), price), " +
		"updated_at = GREATEST(updated_at, VALUES(updated_at))"
	if _, err := s.db.Exec(upsertSql, symbol, price, timestamp); err != nil {
		return xerror.Wrapf(err, xerror.DB, "mysql: update quote %s failed", symbol)
	}
	return nil
}

func (s *MysqlDB) GetQuote(symbol string) (*Quote, error) {
	quote := Quote{Symbol: symbol}
	err := s.db.QueryRow("SELECT price, updated_at FROM quotes WHERE symbol = ?", symbol).Scan(&quote.Price, &quote.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrQuoteNotExists
	} else if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: query quote %s failed", symbol)
	}
	return &quote, nil
}

func (s *MysqlDB) IsQuoteExist(symbol string) (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM quotes WHERE symbol = ?", symbol).Scan(&count); err != nil {
		return false, xerror.Wrapf(err, xerror.DB, "mysql: query quote %s failed", symbol)
	}
	return count > 0, nil
}

func (s *MysqlDB) RemoveQuote(symbol string) error {
	if _, err := s.db.Exec("DELETE FROM quotes WHERE symbol = ?", symbol); err != nil {
		return xerror.Wrapf(err, xerror.DB, "mysql: delete quote %s failed", symbol)
	}
	return nil
}

func (s *MysqlDB) ListQuotes() ([]Quote, error) {
	rows, err := s.db.Query("SELECT symbol, price, updated_at FROM quotes ORDER BY symbol")
	if err != nil {
		return nil, xerror.Wrap(err, xerror.DB, "mysql: query quotes failed")
	}
	defer rows.Close()

	return scanQuotes(rows)
}

func (s *MysqlDB) Close() error {
	return s.db.Close()
}
