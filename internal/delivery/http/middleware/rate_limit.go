package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/geo-directory/internal/pkg/errors"
	"github.com/geo-directory/internal/pkg/metrics"
	"github.com/geo-directory/internal/pkg/utils"
)

// RateLimit - общий token bucket на процесс. perSecond <= 0 отключает ограничение.
// Пути из skip не ограничиваются.
func RateLimit(perSecond float64, burst int, skip ...string) fiber.Handler {
	if perSecond <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}
		if !limiter.Allow() {
			metrics.RateLimitRejects.Inc()
			c.Set(fiber.HeaderRetryAfter, "1")
			return utils.SendError(c, errors.ErrRateLimited)
		}
		return c.Next()
	}
}
