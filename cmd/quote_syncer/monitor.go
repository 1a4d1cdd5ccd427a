package main

import (
	"runtime"
	"time"

	"github.com/infotraining/quote_syncer/pkg/market"

	log "github.com/sirupsen/logrus"
)

const (
	MONITOR_DURATION = time.Second * 60
)

type Monitor struct {
	exchange *market.Exchange
	stop     chan struct{}
}

func NewMonitor(exchange *market.Exchange) *Monitor {
	return &Monitor{
		exchange: exchange,
		stop:     make(chan struct{}),
	}
}

func (m *Monitor) dump() {
	log.Infof("[GOROUTINE] Total = %v", runtime.NumGoroutine())

	mb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}

	// see: https://golang.org/pkg/runtime/#MemStats
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	liveObjects := stats.Mallocs - stats.Frees
	log.Infof("[MEMORY STATS] Alloc = %v MiB, TotalAlloc = %v MiB, Sys = %v MiB, NumGC = %v, LiveObjects = %v",
		mb(stats.Alloc), mb(stats.TotalAlloc), mb(stats.Sys), stats.NumGC, liveObjects)

	stocks := m.exchange.Stocks()
	numSubscribers := 0
	numUnwatched := 0
	for _, stock := range stocks {
		n := stock.Len()
		numSubscribers += n
		if n == 0 {
			numUnwatched += 1
		}
	}

	log.Infof("[EXCHANGE STATS] Stocks = %v, Subscribers = %v, Unwatched = %v, ExchangeSubscribers = %v",
		len(stocks), numSubscribers, numUnwatched, m.exchange.Subject.Len())
}

func (m *Monitor) Start() {
	ticker := time.NewTicker(MONITOR_DURATION)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			log.Info("monitor stopped")
			return
		case <-ticker.C:
			m.dump()
		}
	}
}

func (m *Monitor) Stop() {
	log.Info("monitor stopping")
	close(m.stop)
}
