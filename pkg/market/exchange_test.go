package market

import (
	"errors"
	"runtime"
	"testing"

	"github.com/infotraining/quote_syncer/pkg/observer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listings struct {
	events []Listed
	err    error
}

func (l *listings) Update(_ *Exchange, event Listed) error {
	l.events = append(l.events, event)
	return l.err
}

func TestExchangeList(t *testing.T) {
	exchange := NewExchange()
	l := &listings{}
	exchange.Subscribe(observer.WeakRef[*Exchange, Listed](l))

	stock, err := exchange.List("ACME", 10)
	require.NoError(t, err)
	assert.Equal(t, "ACME", stock.Symbol())

	got, ok := exchange.Stock("ACME")
	require.True(t, ok)
	assert.Same(t, stock, got)

	_, err = exchange.List("ACME", 11)
	assert.ErrorIs(t, err, ErrStockListed)

	_, err = exchange.List("BOOM", -1)
	assert.Error(t, err)

	require.Len(t, l.events, 1)
	assert.Equal(t, "ACME", l.events[0].Symbol)
	assert.Equal(t, 10.0, l.events[0].Price)
	assert.Equal(t, 1, exchange.Len())
}

func TestExchangeListObserverError(t *testing.T) {
	exchange := NewExchange()
	errBoom := errors.New("boom")
	l := &listings{err: errBoom}
	exchange.Subscribe(observer.WeakRef[*Exchange, Listed](l))

	stock, err := exchange.List("ACME", 10)
	assert.Same(t, errBoom, err)
	require.NotNil(t, stock)

	_, ok := exchange.Stock("ACME")
	assert.True(t, ok)
	runtime.KeepAlive(l)
}

func TestExchangeStocksOrdered(t *testing.T) {
	exchange := NewExchange()
	for _, symbol := range []string{"ZETA", "ACME", "MEGA"} {
		_, err := exchange.List(symbol, 1)
		require.NoError(t, err)
	}

	var symbols []string
	for _, stock := range exchange.Stocks() {
		symbols = append(symbols, stock.Symbol())
	}
	assert.Equal(t, []string{"ACME", "MEGA", "ZETA"}, symbols)
}

func TestExchangeDelistAndUpdatePrice(t *testing.T) {
	exchange := NewExchange()
	_, err := exchange.List("ACME", 10)
	require.NoError(t, err)

	require.NoError(t, exchange.UpdatePrice("ACME", 12))
	stock, _ := exchange.Stock("ACME")
	assert.Equal(t, 12.0, stock.Price())

	assert.True(t, exchange.Delist("ACME"))
	assert.False(t, exchange.Delist("ACME"))

	err = exchange.UpdatePrice("ACME", 13)
	assert.ErrorIs(t, err, ErrStockNotListed)
	assert.Equal(t, 0, exchange.Len())
}
