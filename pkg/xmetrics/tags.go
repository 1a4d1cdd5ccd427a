package xmetrics

import "github.com/infotraining/quote_syncer/pkg/xerror"

type IMetricsTag interface {
	Tag() []string
}

type metricsTag struct {
	tags []string
}

// dashboard metrics
type dashboardMetrics struct {
	metricsTag
}

func DashboardMetrics() *dashboardMetrics {
	return &dashboardMetrics{
		metricsTag: metricsTag{[]string{"dashboard"}},
	}
}

func (d *dashboardMetrics) Tag() []string {
	return d.tags
}

func (d *dashboardMetrics) StockNum() IMetricsTag {
	d.tags = append(d.tags, "stockNum")
	return d
}

func (d *dashboardMetrics) QuoteUpdates() IMetricsTag {
	d.tags = append(d.tags, "quoteUpdates")
	return d
}

func (d *dashboardMetrics) AlertNum() IMetricsTag {
	d.tags = append(d.tags, "alertNum")
	return d
}

// quote metrics
type quoteMetrics struct {
	metricsTag
	symbol string
}

func QuoteMetrics(symbol string) *quoteMetrics {
	return &quoteMetrics{
		metricsTag: metricsTag{[]string{"quote"}},
		symbol:     symbol,
	}
}

func (q *quoteMetrics) Tag() []string {
	q.tags = append(q.tags, q.symbol)
	return q.tags
}

func (q *quoteMetrics) Price() IMetricsTag {
	q.tags = append(q.tags, "price")
	return q
}

func (q *quoteMetrics) Updates() IMetricsTag {
	q.tags = append(q.tags, "updates")
	return q
}

// error metrics
type errorMetrics struct {
	metricsTag
}

func ErrorMetrics(err *xerror.XError) IMetricsTag {
	errMetrics := &errorMetrics{
		metricsTag: metricsTag{[]string{"error", err.Category().Name()}},
	}

	switch {
	case err.IsRecoverable():
		errMetrics.tags = append(errMetrics.tags, "recoverable")
	case err.IsPanic():
		errMetrics.tags = append(errMetrics.tags, "panic")
	default:
		errMetrics.tags = append(errMetrics.tags, "unknown")
	}

	return errMetrics
}

func (e *errorMetrics) Tag() []string {
	return e.tags
}
