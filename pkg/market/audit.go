package market

import (
	"go.uber.org/zap"
)

// AuditLog writes one structured entry per price change.
type AuditLog struct {
	logger *zap.Logger
}

func NewAuditLog(logger *zap.Logger) *AuditLog {
	return &AuditLog{logger: logger}
}

func (a *AuditLog) Update(_ *Stock, event PriceChanged) error {
	a.logger.Info("price changed",
		zap.String("symbol", event.Symbol),
		zap.Float64("old", event.Old),
		zap.Float64("new", event.New),
		zap.Time("at", event.At))
	return nil
}
