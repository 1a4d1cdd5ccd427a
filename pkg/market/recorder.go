package market

import (
	"sync/atomic"
	"time"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/infotraining/quote_syncer/pkg/storage"
	"github.com/infotraining/quote_syncer/pkg/xerror"
	"github.com/infotraining/quote_syncer/pkg/xmetrics"

	log "github.com/sirupsen/logrus"
)

// QuoteRecorder keeps the latest quote of every stock it observes in a
// storage.DB. Changes delivered out of order do not overwrite a newer quote.
// A storage failure stops the notification round.
type QuoteRecorder struct {
	db storage.DB
}

func NewQuoteRecorder(db storage.DB) *QuoteRecorder {
	return &QuoteRecorder{db: db}
}

func (r *QuoteRecorder) Update(_ *Stock, event PriceChanged) error {
	return r.record(event.Symbol, event.New, event.At)
}

// ListingObserver returns an owned Exchange observer recording the opening
// quote of every newly listed stock. The caller keeps the owner alive.
func (r *QuoteRecorder) ListingObserver() *observer.Owner[*Exchange, Listed] {
	return observer.Own[*Exchange, Listed](observer.Func[*Exchange, Listed](func(_ *Exchange, listed Listed) error {
		return r.record(listed.Symbol, listed.Price, listed.At)
	}))
}

func (r *QuoteRecorder) record(symbol string, price float64, at time.Time) error {
	if err := r.db.UpdateQuote(symbol, price, at.UnixNano()); err != nil {
		err = xerror.Wrapf(err, xerror.DB, "record quote %s failed", symbol)
		if xerr, ok := xerror.As(err); ok {
			xmetrics.AddError(xerr)
		}
		log.Warnf("record quote failed, err: %+v", err)
		return err
	}
	return nil
}

// MetricsObserver exports the price and update counters of the stocks it
// observes.
type MetricsObserver struct {
	updates atomic.Int64
}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) Update(_ *Stock, event PriceChanged) error {
	m.updates.Add(1)
	xmetrics.ObserveQuote(event.Symbol, event.New)
	return nil
}

// Updates returns the number of price changes seen so far.
func (m *MetricsObserver) Updates() int64 {
	return m.updates.Load()
}
