package market

import (
	"sync"
	"time"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/infotraining/quote_syncer/pkg/utils"
	"github.com/infotraining/quote_syncer/pkg/xerror"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Holding struct {
	Symbol string
	Shares int64
	Price  float64
}

// Investor values a portfolio at the last price it was told about.
type Investor struct {
	name string

	mu       sync.Mutex
	holdings map[string]int64
	prices   map[string]float64
	// time of the price in prices, older changes are ignored
	pricedAt map[string]time.Time
}

func NewInvestor(name string) *Investor {
	return &Investor{
		name:     name,
		holdings: make(map[string]int64),
		prices:   make(map[string]float64),
		pricedAt: make(map[string]time.Time),
	}
}

func (i *Investor) Name() string {
	return i.name
}

// Buy adds shares of stock to the portfolio and subscribes to its prices.
// The stock only keeps a weak reference to the investor.
func (i *Investor) Buy(stock *Stock, shares int64) error {
	if shares <= 0 {
		return xerror.Errorf(xerror.Market, "invalid shares %d of %s", shares, stock.Symbol())
	}

	price, at := stock.Quote()

	i.mu.Lock()
	i.holdings[stock.Symbol()] += shares
	i.setPrice(stock.Symbol(), price, at)
	i.mu.Unlock()

	stock.Subscribe(observer.WeakRef[*Stock, PriceChanged](i))
	return nil
}

func (i *Investor) Update(_ *Stock, event PriceChanged) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.holdings[event.Symbol]; !ok {
		return nil
	}
	if !i.setPrice(event.Symbol, event.New, event.At) {
		log.Debugf("investor %s ignores stale change of %s to %v", i.name, event.Symbol, event.New)
		return nil
	}
	log.Debugf("investor %s notified, %s: %v -> %v", i.name, event.Symbol, event.Old, event.New)
	return nil
}

// setPrice records price unless a newer one is known. i.mu must be held.
func (i *Investor) setPrice(symbol string, price float64, at time.Time) bool {
	if last, ok := i.pricedAt[symbol]; ok && !at.After(last) {
		return false
	}
	i.prices[symbol] = price
	i.pricedAt[symbol] = at
	return true
}

func (i *Investor) Value() float64 {
	i.mu.Lock()
	defer i.mu.Unlock()

	var value float64
	for symbol, shares := range i.holdings {
		value += float64(shares) * i.prices[symbol]
	}
	return value
}

// Holdings returns the portfolio ordered by symbol.
func (i *Investor) Holdings() []Holding {
	i.mu.Lock()
	holdings := utils.CopyMap(i.holdings)
	prices := utils.CopyMap(i.prices)
	i.mu.Unlock()

	symbols := maps.Keys(holdings)
	slices.Sort(symbols)

	result := make([]Holding, 0, len(symbols))
	for _, symbol := range symbols {
		result = append(result, Holding{Symbol: symbol, Shares: holdings[symbol], Price: prices[symbol]})
	}
	return result
}
