package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/pkg/errors"
)

type entityRepository[T domain.Record[T]] struct {
	kind   domain.Kind
	items  *cache.Cache
	logger *zap.Logger
	// mu сериализует составные записи: проверку уникальности и переименование
	mu sync.Mutex
}

// NewEntityRepository создаёт хранилище коллекции в памяти процесса
func NewEntityRepository[T domain.Record[T]](kind domain.Kind, logger *zap.Logger) repository.EntityRepository[T] {
	return &entityRepository[T]{
		kind:   kind,
		items:  cache.New(cache.NoExpiration, 0),
		logger: logger.With(zap.String("collection", kind.Plural)),
	}
}

func NewCityRepository(logger *zap.Logger) repository.CityRepository {
	return NewEntityRepository[domain.City](domain.CityKind, logger)
}

func NewCountryRepository(logger *zap.Logger) repository.CountryRepository {
	return NewEntityRepository[domain.Country](domain.CountryKind, logger)
}

func NewStateRepository(logger *zap.Logger) repository.StateRepository {
	return NewEntityRepository[domain.State](domain.StateKind, logger)
}

// storageKey - ключ go-cache; нулевой байт не встречается в именах
func storageKey(key domain.Key) string {
	key = key.Normalize()
	return key.Name + "\x00" + key.StateCode
}

func (r *entityRepository[T]) Kind() domain.Kind {
	return r.kind
}

func (r *entityRepository[T]) List(ctx context.Context, opts domain.ListOptions) ([]T, int, error) {
	records := r.all()
	sortRecords(records, opts.SortBy, opts.Order)

	total := len(records)
	if !opts.Paginated() {
		return records, total, nil
	}

	offset := opts.Offset()
	if offset >= total {
		return []T{}, total, nil
	}
	end := offset + opts.Limit
	if end > total {
		end = total
	}
	return records[offset:end], total, nil
}

func (r *entityRepository[T]) Get(ctx context.Context, key domain.Key) (T, error) {
	if v, ok := r.items.Get(storageKey(key)); ok {
		return v.(T), nil
	}
	var zero T
	return zero, errors.NotFound(r.kind.Singular, key.Normalize().String())
}

func (r *entityRepository[T]) Create(ctx context.Context, record T) (string, error) {
	record = record.Normalized().WithID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(record, ""); err != nil {
		return "", err
	}
	if err := r.items.Add(storageKey(record.Key()), record, cache.NoExpiration); err != nil {
		return "", errors.Conflict(r.kind.Singular, record.Key().String())
	}

	r.logger.Debug("Record created",
		zap.String("key", record.Key().String()),
		zap.String("id", record.Value(domain.FieldID)))
	return record.Value(domain.FieldID), nil
}

func (r *entityRepository[T]) Update(ctx context.Context, key domain.Key, patch domain.Patch) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	oldKey := storageKey(key)
	v, ok := r.items.Get(oldKey)
	if !ok {
		return zero, errors.NotFound(r.kind.Singular, key.Normalize().String())
	}

	current := v.(T)
	updated := current.Patched(patch)
	newKey := storageKey(updated.Key())

	if err := r.checkUnique(updated, current.Value(domain.FieldID)); err != nil {
		return zero, err
	}

	if newKey == oldKey {
		if err := r.items.Replace(oldKey, updated, cache.NoExpiration); err != nil {
			return zero, errors.NotFound(r.kind.Singular, key.Normalize().String())
		}
		return updated, nil
	}

	// Переименование: новый ключ не должен быть занят
	if err := r.items.Add(newKey, updated, cache.NoExpiration); err != nil {
		return zero, errors.Conflict(r.kind.Singular, updated.Key().String())
	}
	r.items.Delete(oldKey)

	r.logger.Debug("Record renamed",
		zap.String("from", key.String()),
		zap.String("to", updated.Key().String()))
	return updated, nil
}

func (r *entityRepository[T]) Delete(ctx context.Context, key domain.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := storageKey(key)
	if _, ok := r.items.Get(k); !ok {
		return errors.NotFound(r.kind.Singular, key.Normalize().String())
	}
	r.items.Delete(k)
	return nil
}

func (r *entityRepository[T]) Search(ctx context.Context, filter domain.Filter) ([]T, error) {
	records := domain.Apply(filter, r.all())
	sortRecords(records, domain.FieldName, domain.SortAsc)
	return records, nil
}

func (r *entityRepository[T]) Count(ctx context.Context) (int, error) {
	return r.items.ItemCount(), nil
}

func (r *entityRepository[T]) all() []T {
	items := r.items.Items()
	records := make([]T, 0, len(items))
	for _, item := range items {
		records = append(records, item.Object.(T))
	}
	return records
}

// checkUnique проверяет уникальные поля вне ключа (state_code у штатов).
// Запись с id == selfID не считается конфликтом.
func (r *entityRepository[T]) checkUnique(record T, selfID string) error {
	for _, field := range r.kind.UniqueFields {
		value := record.Value(field)
		for _, other := range r.all() {
			if other.Value(domain.FieldID) == selfID {
				continue
			}
			if strings.EqualFold(other.Value(field), value) {
				return errors.Conflict(r.kind.Singular, field+" "+value)
			}
		}
	}
	return nil
}

// sortRecords сортирует по полю (по умолчанию по имени); числа сравниваются как числа
func sortRecords[T domain.Record[T]](records []T, field string, order domain.SortOrder) {
	if field == "" {
		field = domain.FieldName
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		c := compareValues(a.Value(field), b.Value(field))
		if c == 0 {
			c = strings.Compare(a.Key().String(), b.Key().String())
		}
		if order == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func compareValues(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
