package storage

import (
	"database/sql"

	"github.com/infotraining/quote_syncer/pkg/xerror"
)

func scanQuotes(rows *sql.Rows) ([]Quote, error) {
	quotes := make([]Quote, 0)
	for rows.Next() {
		var quote Quote
		if err := rows.Scan(&quote.Symbol, &quote.Price, &quote.Timestamp); err != nil {
			return nil, xerror.Wrap(err, xerror.DB, "scan quote failed")
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, xerror.Wrap(err, xerror.DB, "iterate quotes failed")
	}
	return quotes, nil
}
