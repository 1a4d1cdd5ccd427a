package market

import (
	"fmt"
	"math"
	"sync"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/infotraining/quote_syncer/pkg/xerror"

	log "github.com/sirupsen/logrus"
)

type Direction int

const (
	Above Direction = iota
	Below
)

func (d Direction) String() string {
	switch d {
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "above":
		return Above, nil
	case "below":
		return Below, nil
	default:
		return 0, xerror.Errorf(xerror.Market, "unknown direction %q", s)
	}
}

// PriceAlert fires once, on the first price reaching its threshold, and then
// unsubscribes itself from the stock.
type PriceAlert struct {
	direction Direction
	threshold float64

	mu     sync.Mutex
	fired  bool
	event  PriceChanged
	onFire func(PriceChanged)
}

func NewPriceAlert(direction Direction, threshold float64) (*PriceAlert, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold <= 0 {
		return nil, xerror.Errorf(xerror.Market, "invalid alert threshold %v", threshold)
	}
	return &PriceAlert{direction: direction, threshold: threshold}, nil
}

// OnFire registers fn to run once the alert fires. fn runs on the notifying
// goroutine, outside the alert's lock.
func (a *PriceAlert) OnFire(fn func(PriceChanged)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.onFire = fn
}

func (a *PriceAlert) Ref() observer.Ref[*Stock, PriceChanged] {
	return observer.WeakRef[*Stock, PriceChanged](a)
}

// Watch subscribes the alert to stock. The caller keeps the alert alive.
func (a *PriceAlert) Watch(stock *Stock) {
	stock.Subscribe(a.Ref())
}

func (a *PriceAlert) Direction() Direction {
	return a.direction
}

func (a *PriceAlert) Threshold() float64 {
	return a.threshold
}

func (a *PriceAlert) reached(price float64) bool {
	if a.direction == Above {
		return price >= a.threshold
	}
	return price <= a.threshold
}

func (a *PriceAlert) Update(stock *Stock, event PriceChanged) error {
	if !a.reached(event.New) {
		return nil
	}

	a.mu.Lock()
	if a.fired {
		// an unsubscribed alert may still see the round in flight
		a.mu.Unlock()
		return nil
	}
	a.fired = true
	a.event = event
	onFire := a.onFire
	a.mu.Unlock()

	stock.Unsubscribe(a.Ref())
	log.Infof("price alert fired, %s %s %v, price: %v", event.Symbol, a.direction, a.threshold, event.New)
	if onFire != nil {
		onFire(event)
	}
	return nil
}

func (a *PriceAlert) Fired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.fired
}

// Event returns the change that fired the alert.
func (a *PriceAlert) Event() (PriceChanged, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.event, a.fired
}
