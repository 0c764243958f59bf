package memory

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
)

// Counter - всё, что умеет посчитать свои записи
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type statsRepository struct {
	cities    Counter
	countries Counter
	states    Counter
}

// NewStatsRepository считает статистику по трём коллекциям параллельно
func NewStatsRepository(cities, countries, states Counter) repository.StatsRepository {
	return &statsRepository{
		cities:    cities,
		countries: countries,
		states:    states,
	}
}

func (r *statsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{}

	g, ctx := errgroup.WithContext(ctx)
	count := func(c Counter, dst *int) {
		g.Go(func() error {
			n, err := c.Count(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(r.cities, &stats.Cities)
	count(r.countries, &stats.Countries)
	count(r.states, &stats.States)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.LastUpdated = time.Now().UTC()
	return stats, nil
}
