package service

import (
	"context"

	"go.uber.org/zap"

	"store-ledger/internal/logger"
)

// requestLogger tags base with the request id carried by ctx, if any
func requestLogger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if id := logger.GetRequestID(ctx); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
