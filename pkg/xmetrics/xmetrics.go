package xmetrics

import (
	"github.com/hashicorp/go-metrics"
	"github.com/hashicorp/go-metrics/prometheus"
	"github.com/infotraining/quote_syncer/pkg/xerror"
)

func InitGlobal(serviceName string) error {
	sink, err := prometheus.NewPrometheusSink()
	if err != nil {
		return xerror.Wrap(err, xerror.Normal, "init prometheus sink failed")
	}

	if _, err := metrics.NewGlobal(metrics.DefaultConfig(serviceName), sink); err != nil {
		return xerror.Wrap(err, xerror.Normal, "new global metrics failed")
	}

	return nil
}

func AddError(err *xerror.XError) {
	metrics.IncrCounter(ErrorMetrics(err).Tag(), 1)
}

func ListStock(symbol string, price float64) {
	metrics.SetGauge(QuoteMetrics(symbol).Price().Tag(), float32(price))
	metrics.IncrCounter(DashboardMetrics().StockNum().Tag(), 1)
}

func DelistStock(symbol string) {
	metrics.IncrCounter(DashboardMetrics().StockNum().Tag(), -1)
}

func ObserveQuote(symbol string, price float64) {
	metrics.SetGauge(QuoteMetrics(symbol).Price().Tag(), float32(price))
	metrics.IncrCounter(QuoteMetrics(symbol).Updates().Tag(), 1)

	metrics.IncrCounter(DashboardMetrics().QuoteUpdates().Tag(), 1)
}

func AddAlert() {
	metrics.IncrCounter(DashboardMetrics().AlertNum().Tag(), 1)
}

func RemoveAlert() {
	metrics.IncrCounter(DashboardMetrics().AlertNum().Tag(), -1)
}
