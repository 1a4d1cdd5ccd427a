package market

import (
	"sync"

	"github.com/infotraining/quote_syncer/pkg/observer"

	log "github.com/sirupsen/logrus"
)

// Autowire owns a set of stock observers and subscribes all of them to every
// stock the exchange lists.
type Autowire struct {
	mu     sync.Mutex
	owners []*observer.Owner[*Stock, PriceChanged]
}

func NewAutowire(observers ...observer.Observer[*Stock, PriceChanged]) *Autowire {
	owners := make([]*observer.Owner[*Stock, PriceChanged], 0, len(observers))
	for _, obs := range observers {
		owners = append(owners, observer.Own(obs))
	}
	return &Autowire{owners: owners}
}

func (a *Autowire) Ref() observer.Ref[*Exchange, Listed] {
	return observer.WeakRef[*Exchange, Listed](a)
}

func (a *Autowire) Update(exchange *Exchange, listed Listed) error {
	stock, ok := exchange.Stock(listed.Symbol)
	if !ok {
		// delisted before we got to it
		return nil
	}
	a.Wire(stock)
	return nil
}

// Wire subscribes the owned observers to stock.
func (a *Autowire) Wire(stock *Stock) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, owner := range a.owners {
		stock.Subscribe(owner.Ref())
	}
	log.Debugf("autowire %d observers to %s", len(a.owners), stock.Symbol())
}

// Close expires every subscription made by a. Stocks drop them on their next
// notification.
func (a *Autowire) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, owner := range a.owners {
		owner.Close()
	}
}
