package market

import (
	"errors"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/infotraining/quote_syncer/pkg/test_util"
	"github.com/infotraining/quote_syncer/pkg/xerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	zapobserver "go.uber.org/zap/zaptest/observer"
)

func newStock(t *testing.T, symbol string, price float64) *Stock {
	t.Helper()
	stock, err := NewStock(symbol, price)
	require.NoError(t, err)
	return stock
}

func TestInvestor(t *testing.T) {
	acme := newStock(t, "ACME", 10)
	mega := newStock(t, "MEGA", 2)

	investor := NewInvestor("alice")
	require.NoError(t, investor.Buy(acme, 5))
	require.NoError(t, investor.Buy(mega, 100))
	require.NoError(t, investor.Buy(acme, 5))
	assert.Error(t, investor.Buy(acme, 0))

	// buying twice does not subscribe twice
	assert.Equal(t, 1, acme.Len())
	assert.Equal(t, 300.0, investor.Value())

	require.NoError(t, acme.SetPrice(20))
	require.NoError(t, mega.SetPrice(1))
	assert.Equal(t, 300.0, investor.Value())

	assert.Equal(t, []Holding{
		{Symbol: "ACME", Shares: 10, Price: 20},
		{Symbol: "MEGA", Shares: 100, Price: 1},
	}, investor.Holdings())
	assert.Equal(t, "alice", investor.Name())
}

func TestInvestorIgnoresUnheldSymbols(t *testing.T) {
	investor := NewInvestor("bob")
	require.NoError(t, investor.Update(nil, PriceChanged{Symbol: "ACME", Old: 1, New: 2}))
	assert.Empty(t, investor.Holdings())
	assert.Equal(t, 0.0, investor.Value())
}

func TestQuoteRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := test_util.NewMockDB(ctrl)

	at := time.UnixMilli(1700000000000)
	db.EXPECT().UpdateQuote("ACME", 12.0, at.UnixNano()).Return(nil)

	r := NewQuoteRecorder(db)
	assert.NoError(t, r.Update(nil, PriceChanged{Symbol: "ACME", Old: 10, New: 12, At: at}))
}

func TestQuoteRecorderStopsRoundOnStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := test_util.NewMockDB(ctrl)
	errDisk := errors.New("disk full")
	db.EXPECT().UpdateQuote("ACME", 12.0, gomock.Any()).Return(errDisk)

	stock := newStock(t, "ACME", 10)
	recorderOwner := observer.Own[*Stock, PriceChanged](NewQuoteRecorder(db))
	after := &recorder{}
	stock.Subscribe(recorderOwner.Ref())
	stock.Subscribe(observer.WeakRef[*Stock, PriceChanged](after))

	err := stock.SetPrice(12)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	xerr, ok := xerror.As(err)
	require.True(t, ok)
	assert.Equal(t, xerror.DB, xerr.Category())
	// registered later, so not visited in this round
	assert.Empty(t, after.got())
	runtime.KeepAlive(recorderOwner)
}

func TestQuoteRecorderListingObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := test_util.NewMockDB(ctrl)
	db.EXPECT().UpdateQuote("ACME", 10.0, gomock.Any()).Return(nil)

	exchange := NewExchange()
	owner := NewQuoteRecorder(db).ListingObserver()
	exchange.Subscribe(owner.Ref())

	_, err := exchange.List("ACME", 10)
	require.NoError(t, err)

	owner.Close()
	// closed owner, no second call
	_, err = exchange.List("MEGA", 2)
	require.NoError(t, err)
}

func TestMetricsObserver(t *testing.T) {
	m := NewMetricsObserver()
	require.NoError(t, m.Update(nil, PriceChanged{Symbol: "ACME", Old: 1, New: 2}))
	require.NoError(t, m.Update(nil, PriceChanged{Symbol: "ACME", Old: 2, New: 3}))
	assert.Equal(t, int64(2), m.Updates())
}

func TestAuditLog(t *testing.T) {
	core, logs := zapobserver.New(zap.InfoLevel)
	audit := NewAuditLog(zap.New(core))

	stock := newStock(t, "ACME", 10)
	stock.Subscribe(observer.WeakRef[*Stock, PriceChanged](audit))
	require.NoError(t, stock.SetPrice(12))

	entries := logs.FilterMessage("price changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ACME", fields["symbol"])
	assert.Equal(t, 10.0, fields["old"])
	assert.Equal(t, 12.0, fields["new"])
	runtime.KeepAlive(audit)
}

func TestPriceAlertFiresOnce(t *testing.T) {
	stock := newStock(t, "ACME", 10)
	alert, err := NewPriceAlert(Above, 15)
	require.NoError(t, err)
	var fired []PriceChanged
	alert.OnFire(func(event PriceChanged) {
		fired = append(fired, event)
	})
	alert.Watch(stock)
	require.Equal(t, 1, stock.Len())

	require.NoError(t, stock.SetPrice(14))
	assert.False(t, alert.Fired())

	require.NoError(t, stock.SetPrice(16))
	assert.True(t, alert.Fired())
	event, ok := alert.Event()
	require.True(t, ok)
	assert.Equal(t, 16.0, event.New)

	// unsubscribed from inside its own Update
	assert.Equal(t, 0, stock.Len())
	require.NoError(t, stock.SetPrice(20))
	event, _ = alert.Event()
	assert.Equal(t, 16.0, event.New)
	require.Len(t, fired, 1)
	assert.Equal(t, 16.0, fired[0].New)
}

func TestPriceAlertBelow(t *testing.T) {
	stock := newStock(t, "ACME", 10)
	alert, err := NewPriceAlert(Below, 5)
	require.NoError(t, err)
	alert.Watch(stock)

	require.NoError(t, stock.SetPrice(6))
	assert.False(t, alert.Fired())
	require.NoError(t, stock.SetPrice(5))
	assert.True(t, alert.Fired())
	assert.Equal(t, Below, alert.Direction())
	assert.Equal(t, 5.0, alert.Threshold())
}

func TestPriceAlertInvalidThreshold(t *testing.T) {
	for _, threshold := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewPriceAlert(Above, threshold)
		require.Error(t, err, "threshold %v", threshold)
		xerr, ok := xerror.As(err)
		require.True(t, ok)
		assert.Equal(t, xerror.Market, xerr.Category())
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("above")
	require.NoError(t, err)
	assert.Equal(t, Above, d)
	d, err = ParseDirection("below")
	require.NoError(t, err)
	assert.Equal(t, Below, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
	assert.Equal(t, "above", Above.String())
}

func TestAutowire(t *testing.T) {
	exchange := NewExchange()
	investor := NewInvestor("carol")
	r := &recorder{}
	metrics := NewMetricsObserver()

	autowire := NewAutowire(r, metrics)
	exchange.Subscribe(autowire.Ref())

	acme, err := exchange.List("ACME", 10)
	require.NoError(t, err)
	require.NoError(t, investor.Buy(acme, 1))
	assert.Equal(t, 3, acme.Len())

	require.NoError(t, acme.SetPrice(11))
	assert.Len(t, r.got(), 1)
	assert.Equal(t, int64(1), metrics.Updates())

	autowire.Close()
	require.NoError(t, acme.SetPrice(12))
	// closed subscriptions are skipped, then pruned
	assert.Len(t, r.got(), 1)
	assert.Equal(t, int64(1), metrics.Updates())
	assert.Equal(t, 1, acme.Len())
	assert.Equal(t, 12.0, investor.Holdings()[0].Price)

	// no longer wires new listings either
	mega, err := exchange.List("MEGA", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, mega.Len())
	runtime.KeepAlive(autowire)
}
