// Package market holds the concrete subjects of the syncer, stocks and the
// exchange listing them, together with the observers reacting to them.
package market

import (
	"math"
	"sync"
	"time"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/infotraining/quote_syncer/pkg/xerror"
)

type PriceChanged struct {
	Symbol string
	Old    float64
	New    float64
	At     time.Time
}

type Stock struct {
	*observer.Subject[*Stock, PriceChanged]
	notifier *observer.Notifier[*Stock, PriceChanged]

	symbol string

	mu    sync.RWMutex
	price float64
	// wall time of the last change, strictly increasing
	at time.Time
}

func validPrice(symbol string, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return xerror.Errorf(xerror.Market, "invalid price %v of %s", price, symbol)
	}
	return nil
}

func NewStock(symbol string, price float64) (*Stock, error) {
	if symbol == "" {
		return nil, xerror.New(xerror.Market, "empty symbol")
	}
	if err := validPrice(symbol, price); err != nil {
		return nil, err
	}

	s := &Stock{symbol: symbol, price: price, at: time.Now().Round(0)}
	s.Subject, s.notifier = observer.New[*Stock, PriceChanged](s)
	return s, nil
}

func (s *Stock) Symbol() string {
	return s.symbol
}

func (s *Stock) Price() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.price
}

// Quote returns the price together with the time it was set.
func (s *Stock) Quote() (float64, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.price, s.at
}

// SetPrice updates the price and, when it actually changed, publishes a
// PriceChanged to the subscribed observers. The stock's lock is not held
// while they run, so concurrent changes may reach an observer out of order:
// PriceChanged.At is taken under the lock and orders them. The first
// observer error is returned as is.
func (s *Stock) SetPrice(price float64) error {
	if err := validPrice(s.symbol, price); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.price
	if old == price {
		s.mu.Unlock()
		return nil
	}
	at := time.Now().Round(0)
	if !at.After(s.at) {
		at = s.at.Add(time.Nanosecond)
	}
	s.price = price
	s.at = at
	s.mu.Unlock()

	return s.notifier.Notify(PriceChanged{
		Symbol: s.symbol,
		Old:    old,
		New:    price,
		At:     at,
	})
}
