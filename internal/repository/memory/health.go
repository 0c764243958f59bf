package memory

import "context"

// HealthChecker - хранилище в памяти всегда доступно
type HealthChecker struct{}

func (HealthChecker) Health(ctx context.Context) error {
	return ctx.Err()
}
