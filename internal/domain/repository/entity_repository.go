package repository

import (
	"context"

	"github.com/geo-directory/internal/domain"
)

// EntityRepository определяет хранилище одной коллекции (города, страны или штаты).
// Ошибки: errors.ErrNotFound для отсутствующего ключа, errors.ErrConflict
// при нарушении уникальности.
type EntityRepository[T domain.Record[T]] interface {
	// Kind возвращает описание коллекции
	Kind() domain.Kind

	// List возвращает записи и общее их количество
	List(ctx context.Context, opts domain.ListOptions) ([]T, int, error)

	// Get возвращает запись по ключу
	Get(ctx context.Context, key domain.Key) (T, error)

	// Create сохраняет новую запись и возвращает её id
	Create(ctx context.Context, record T) (string, error)

	// Update применяет частичное обновление и возвращает результат
	Update(ctx context.Context, key domain.Key, patch domain.Patch) (T, error)

	// Delete удаляет запись по ключу
	Delete(ctx context.Context, key domain.Key) error

	// Search возвращает записи, удовлетворяющие всем условиям фильтра
	Search(ctx context.Context, filter domain.Filter) ([]T, error)

	// Count возвращает количество записей
	Count(ctx context.Context) (int, error)
}

// CityRepository - хранилище городов
type CityRepository = EntityRepository[domain.City]

// CountryRepository - хранилище стран
type CountryRepository = EntityRepository[domain.Country]

// StateRepository - хранилище штатов
type StateRepository = EntityRepository[domain.State]
