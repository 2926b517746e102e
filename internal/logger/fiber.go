package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// FiberMiddleware logs every request and stores the request id and a
// request-scoped logger in the user context. Services read the id back
// with GetRequestID to tag their own logs.
func FiberMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		ctx, reqLogger := WithRequestID(c.UserContext(), logger, requestID)
		reqLogger = reqLogger.With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		c.SetUserContext(WithContext(ctx, reqLogger))

		if err := c.Next(); err != nil {
			// Let the app's error handler write the status before we read it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.IP()),
			zap.Int("body_size", len(c.Response().Body())),
		}
		if query := string(c.Request().URI().QueryString()); query != "" {
			fields = append(fields, zap.String("query", query))
		}

		switch {
		case status >= 500:
			reqLogger.Error("http request", fields...)
		case status >= 400:
			reqLogger.Warn("http request", fields...)
		default:
			reqLogger.Info("http request", fields...)
		}
		return nil
	}
}
