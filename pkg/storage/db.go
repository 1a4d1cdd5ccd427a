package storage

import "errors"

var (
	ErrQuoteNotExists = errors.New("quote not exists")
)

const (
	remoteDBName string = "quotes"
)

// Quote is the last price recorded for a symbol. Timestamp is in unix nanos.
type Quote struct {
	Symbol    string
	Price     float64
	Timestamp int64
}

type DB interface {
	// Insert or replace the quote of a symbol, unless the stored one is newer
	UpdateQuote(symbol string, price float64, timestamp int64) error
	// Get the quote of a symbol
	GetQuote(symbol string) (*Quote, error)
	// Check quote exist
	IsQuoteExist(symbol string) (bool, error)
	// Remove the quote of a symbol
	RemoveQuote(symbol string) error
	// ListQuotes returns all quotes ordered by symbol
	ListQuotes() ([]Quote, error)

	Close() error
}
