package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger logs one structured entry per request with request_id, method, path, status and
// latency in milliseconds. 5xx responses are logged at error level, 4xx at warn.
func Logger(log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		rid := RequestIDFrom(c)

		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		log.Log(level, "http request", fields...)

		return err
	}
}
