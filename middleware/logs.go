package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"Meridian/Models"
)

// LogConfig holds configuration for the request logging middleware.
type LogConfig struct {
	// Include the authenticated user in log fields
	IncludeUser bool
	// Skip logging for specific paths
	SkipPaths []string
}

// RequestLogger logs one structured line per request through the shared
// application logger.
func RequestLogger() fiber.Handler {
	return LoggingMiddleware(LogConfig{IncludeUser: true})
}

func LoggingMiddleware(cfg LogConfig) fiber.Handler {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		fields := logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
			"ip":      c.IP(),
		}
		if cfg.IncludeUser {
			if user, ok := c.Locals("user").(Models.User); ok {
				fields["user_id"] = user.ID
				fields["user"] = user.FullName
			}
		}
		if err != nil {
			fields["error"] = err.Error()
		}

		entry := Models.Log.WithFields(fields)
		switch {
		case c.Response().StatusCode() >= 500:
			entry.Error("request")
		case c.Response().StatusCode() >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}

		return err
	}
}
