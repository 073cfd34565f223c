// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeep/pkg/logger"
)

// RequestContextKey - ключ Locals, под которым лежит контекст запроса с request_id.
const RequestContextKey = "requestContext"

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Каждый запрос получает собственный request_id в контексте.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), "")
		ctx.Locals(RequestContextKey, requestCtx)

		start := time.Now()
		path := ctx.Path()
		method := ctx.Method()

		log := logger.Log(requestCtx).With(
			zap.String("path", path),
			zap.String("method", method),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, "request started")

		err := ctx.Next()

		latency := time.Since(start)
		status := ctx.Response().StatusCode()

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			log.Error(requestCtx, "request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "request completed", logFields...)
		return nil
	}
}
