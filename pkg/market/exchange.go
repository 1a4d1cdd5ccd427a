package market

import (
	"sync"
	"time"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/infotraining/quote_syncer/pkg/xerror"
	"github.com/infotraining/quote_syncer/pkg/xmetrics"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/btree"
)

var (
	ErrStockListed    = xerror.NewWithoutStack(xerror.Market, "stock already listed")
	ErrStockNotListed = xerror.NewWithoutStack(xerror.Market, "stock not listed")
)

const degree = 32

// Listed is published by an Exchange when a new stock gets listed.
type Listed struct {
	Symbol string
	Price  float64
	At     time.Time
}

type Exchange struct {
	*observer.Subject[*Exchange, Listed]
	notifier *observer.Notifier[*Exchange, Listed]

	mu     sync.RWMutex
	stocks *btree.Map[string, *Stock]
}

func NewExchange() *Exchange {
	e := &Exchange{
		stocks: btree.NewMap[string, *Stock](degree),
	}
	e.Subject, e.notifier = observer.New[*Exchange, Listed](e)
	return e
}

// List adds a stock and announces it. When an observer fails the stock stays
// listed and is returned along with the observer's error.
func (e *Exchange) List(symbol string, price float64) (*Stock, error) {
	stock, err := NewStock(symbol, price)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if _, ok := e.stocks.Get(symbol); ok {
		e.mu.Unlock()
		return nil, xerror.XWrapf(ErrStockListed, "symbol: %s", symbol)
	}
	e.stocks.Set(symbol, stock)
	e.mu.Unlock()

	log.Infof("list stock %s, price: %v", symbol, price)
	xmetrics.ListStock(symbol, price)

	_, at := stock.Quote()
	return stock, e.notifier.Notify(Listed{Symbol: symbol, Price: price, At: at})
}

// Delist removes a stock, it returns false if the symbol was not listed.
// Observers subscribed to the stock itself are left untouched.
func (e *Exchange) Delist(symbol string) bool {
	e.mu.Lock()
	_, ok := e.stocks.Delete(symbol)
	e.mu.Unlock()

	if ok {
		log.Infof("delist stock %s", symbol)
		xmetrics.DelistStock(symbol)
	}
	return ok
}

func (e *Exchange) Stock(symbol string) (*Stock, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.stocks.Get(symbol)
}

// Stocks returns the listed stocks ordered by symbol.
func (e *Exchange) Stocks() []*Stock {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stocks := make([]*Stock, 0, e.stocks.Len())
	e.stocks.Scan(func(_ string, stock *Stock) bool {
		stocks = append(stocks, stock)
		return true
	})
	return stocks
}

func (e *Exchange) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.stocks.Len()
}

func (e *Exchange) UpdatePrice(symbol string, price float64) error {
	stock, ok := e.Stock(symbol)
	if !ok {
		return xerror.XWrapf(ErrStockNotListed, "symbol: %s", symbol)
	}
	return stock.SetPrice(price)
}
