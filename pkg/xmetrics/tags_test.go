package xmetrics

import (
	"errors"
	"testing"

	"github.com/infotraining/quote_syncer/pkg/xerror"
	"github.com/stretchr/testify/assert"
)

func TestDashboardTags(t *testing.T) {
	assert.Equal(t, []string{"dashboard", "stockNum"}, DashboardMetrics().StockNum().Tag())
	assert.Equal(t, []string{"dashboard", "quoteUpdates"}, DashboardMetrics().QuoteUpdates().Tag())
	assert.Equal(t, []string{"dashboard", "alertNum"}, DashboardMetrics().AlertNum().Tag())
}

func TestQuoteTags(t *testing.T) {
	assert.Equal(t, []string{"quote", "price", "ACME"}, QuoteMetrics("ACME").Price().Tag())
	assert.Equal(t, []string{"quote", "updates", "ACME"}, QuoteMetrics("ACME").Updates().Tag())
}

func TestErrorTags(t *testing.T) {
	err := xerror.NewWithoutStack(xerror.DB, "boom")
	assert.Equal(t, []string{"error", "db", "recoverable"}, ErrorMetrics(err).Tag())

	perr := xerror.PanicWithoutStack(xerror.Market, "boom")
	assert.Equal(t, []string{"error", "market", "panic"}, ErrorMetrics(perr).Tag())
}

func TestAddErrorWithoutGlobal(t *testing.T) {
	// the default global sink is a blackhole; recording must not panic
	xerr, ok := xerror.As(xerror.Wrap(errors.New("io"), xerror.DB, "write"))
	assert.True(t, ok)
	assert.NotPanics(t, func() {
		AddError(xerr)
		ObserveQuote("ACME", 12.5)
		ListStock("ACME", 12.5)
		DelistStock("ACME")
		AddAlert()
		RemoveAlert()
	})
}
