package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/pkg/errors"
	"github.com/geo-directory/internal/pkg/metrics"
	"github.com/geo-directory/internal/pkg/validator"
	"github.com/geo-directory/internal/repository/cache"
	"github.com/geo-directory/internal/usecase/dto"
)

// EntityUseCase - бизнес-логика одной коллекции: валидация, cache-aside
// чтение, публикация изменений и bulk-операции
type EntityUseCase[T domain.Record[T]] struct {
	repo      repository.EntityRepository[T]
	cacheRepo repository.CacheRepository
	publisher repository.ChangePublisher
	logger    *zap.Logger
	kind      domain.Kind
	cacheTTL  time.Duration
	maxBulk   int
}

// NewEntityUseCase создает use case коллекции. publisher может быть nil,
// тогда события изменений не публикуются.
func NewEntityUseCase[T domain.Record[T]](
	repo repository.EntityRepository[T],
	cacheRepo repository.CacheRepository,
	publisher repository.ChangePublisher,
	logger *zap.Logger,
	cacheTTL time.Duration,
	maxBulk int,
) *EntityUseCase[T] {
	kind := repo.Kind()
	return &EntityUseCase[T]{
		repo:      repo,
		cacheRepo: cacheRepo,
		publisher: publisher,
		logger:    logger.With(zap.String("collection", kind.Plural)),
		kind:      kind,
		cacheTTL:  cacheTTL,
		maxBulk:   maxBulk,
	}
}

// Kind возвращает описание коллекции
func (uc *EntityUseCase[T]) Kind() domain.Kind {
	return uc.kind
}

// cachedRecords - то, что лежит в кеше для list/search
type cachedRecords[T any] struct {
	Records []T `json:"records"`
	Total   int `json:"total"`
}

// List возвращает все записи коллекции, опционально постранично
func (uc *EntityUseCase[T]) List(ctx context.Context, req dto.ListRequest) (resp *dto.ListResponse[T], err error) {
	defer func() { uc.observe("list", err) }()

	req.Order = strings.ToLower(req.Order)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if req.SortBy != "" && !uc.kind.Sortable(req.SortBy) {
		return nil, errors.Validation("sort_by must be one of: " + strings.Join(uc.kind.SortFields, ", "))
	}
	opts := req.Options()

	cacheKey := fmt.Sprintf("list:%d:%d:%s:%s", opts.Page, opts.Limit, opts.SortBy, opts.Order)
	loaded, err := cacheAside(ctx, uc, cacheKey, func() (cachedRecords[T], error) {
		records, total, err := uc.repo.List(ctx, opts)
		return cachedRecords[T]{Records: records, Total: total}, err
	})
	if err != nil {
		return nil, err
	}

	resp = &dto.ListResponse[T]{Plural: uc.kind.Plural, Records: loaded.Records}
	if opts.Paginated() {
		resp.Page, resp.Limit, resp.Total = opts.Page, opts.Limit, loaded.Total
	}
	return resp, nil
}

// Get возвращает запись по ключу
func (uc *EntityUseCase[T]) Get(ctx context.Context, key domain.Key) (record T, err error) {
	defer func() { uc.observe("get", err) }()

	key = key.Normalize()
	if err := dto.ValidateKey(uc.kind, key); err != nil {
		return record, err
	}

	return cacheAside(ctx, uc, "get:"+key.String(), func() (T, error) {
		return uc.repo.Get(ctx, key)
	})
}

// Create валидирует тело запроса и создаёт запись
func (uc *EntityUseCase[T]) Create(ctx context.Context, body []byte) (record T, err error) {
	defer func() { uc.observe("create", err) }()

	record, err = uc.create(ctx, body)
	if err != nil {
		return record, err
	}
	uc.bumpVersion(ctx)
	return record, nil
}

func (uc *EntityUseCase[T]) create(ctx context.Context, body []byte) (T, error) {
	var record T
	patch, err := validator.DecodeFields(uc.kind, body)
	if err != nil {
		return record, err
	}

	record = record.Patched(patch)
	id, err := uc.repo.Create(ctx, record)
	if err != nil {
		return record, err
	}
	record = record.WithID(id)

	uc.logger.Info("Record created", zap.String("key", record.Key().String()), zap.String("id", id))
	uc.publish(ctx, domain.ChangeCreated, record.Key(), id)
	return record, nil
}

// Update применяет частичное обновление к записи
func (uc *EntityUseCase[T]) Update(ctx context.Context, key domain.Key, body []byte) (record T, err error) {
	defer func() { uc.observe("update", err) }()

	record, err = uc.update(ctx, key, body)
	if err != nil {
		return record, err
	}
	uc.bumpVersion(ctx)
	return record, nil
}

func (uc *EntityUseCase[T]) update(ctx context.Context, key domain.Key, body []byte) (T, error) {
	var record T
	key = key.Normalize()
	if err := dto.ValidateKey(uc.kind, key); err != nil {
		return record, err
	}

	patch, err := validator.DecodePatch(uc.kind, body)
	if err != nil {
		return record, err
	}

	record, err = uc.repo.Update(ctx, key, patch)
	if err != nil {
		return record, err
	}

	uc.logger.Info("Record updated",
		zap.String("key", key.String()),
		zap.Strings("fields", patch.Fields()))
	uc.publish(ctx, domain.ChangeUpdated, record.Key(), record.Value(domain.FieldID))
	return record, nil
}

// Delete удаляет запись по ключу
func (uc *EntityUseCase[T]) Delete(ctx context.Context, key domain.Key) (err error) {
	defer func() { uc.observe("delete", err) }()

	if err := uc.delete(ctx, key); err != nil {
		return err
	}
	uc.bumpVersion(ctx)
	return nil
}

func (uc *EntityUseCase[T]) delete(ctx context.Context, key domain.Key) error {
	key = key.Normalize()
	if err := dto.ValidateKey(uc.kind, key); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, key); err != nil {
		return err
	}

	uc.logger.Info("Record deleted", zap.String("key", key.String()))
	uc.publish(ctx, domain.ChangeDeleted, key, "")
	return nil
}

// Search возвращает записи, удовлетворяющие всем переданным параметрам.
// Без единого непустого параметра - ошибка MISSING_PARAMETERS.
func (uc *EntityUseCase[T]) Search(ctx context.Context, params map[string]string) (resp *dto.ListResponse[T], err error) {
	defer func() { uc.observe("search", err) }()

	filter := uc.kind.NewFilter(params)
	if filter.Empty() {
		return nil, errors.MissingParams(uc.kind.SearchParamNames())
	}

	loaded, err := cacheAside(ctx, uc, "search:"+filterCacheKey(filter), func() (cachedRecords[T], error) {
		records, err := uc.repo.Search(ctx, filter)
		return cachedRecords[T]{Records: records, Total: len(records)}, err
	})
	if err != nil {
		return nil, err
	}

	return &dto.ListResponse[T]{Plural: uc.kind.Plural, Records: loaded.Records}, nil
}

// Count возвращает количество записей
func (uc *EntityUseCase[T]) Count(ctx context.Context) (n int, err error) {
	defer func() { uc.observe("count", err) }()

	return cacheAside(ctx, uc, "count", func() (int, error) {
		return uc.repo.Count(ctx)
	})
}

// BulkCreate создаёт записи по одной; ошибка элемента не прерывает остальные
func (uc *EntityUseCase[T]) BulkCreate(ctx context.Context, items []json.RawMessage) (*dto.BulkResponse, error) {
	if err := uc.checkBulkSize(len(items)); err != nil {
		return nil, err
	}

	resp := newBulkResponse()
	for i, item := range items {
		record, err := uc.create(ctx, item)
		uc.observe("bulk_create", err)
		if err != nil {
			resp.fail(i, record.Key().String(), err)
			continue
		}
		resp.ok(record.Value(domain.FieldID))
	}

	uc.finishBulk(ctx, "create", resp)
	return resp.BulkResponse, nil
}

// BulkUpdate обновляет записи по одной
func (uc *EntityUseCase[T]) BulkUpdate(ctx context.Context, items []dto.BulkUpdateItem) (*dto.BulkResponse, error) {
	if err := uc.checkBulkSize(len(items)); err != nil {
		return nil, err
	}

	resp := newBulkResponse()
	for i, item := range items {
		key, err := dto.DecodeKey(uc.kind, item.ID)
		if err == nil {
			_, err = uc.update(ctx, key, item.Fields)
		}
		uc.observe("bulk_update", err)
		if err != nil {
			resp.fail(i, key.String(), err)
			continue
		}
		resp.ok(key.String())
	}

	uc.finishBulk(ctx, "update", resp)
	return resp.BulkResponse, nil
}

// BulkDelete удаляет записи по одной
func (uc *EntityUseCase[T]) BulkDelete(ctx context.Context, items []json.RawMessage) (*dto.BulkResponse, error) {
	if err := uc.checkBulkSize(len(items)); err != nil {
		return nil, err
	}

	resp := newBulkResponse()
	for i, item := range items {
		key, err := dto.DecodeKey(uc.kind, item)
		if err == nil {
			err = uc.delete(ctx, key)
		}
		uc.observe("bulk_delete", err)
		if err != nil {
			resp.fail(i, key.String(), err)
			continue
		}
		resp.ok(key.String())
	}

	uc.finishBulk(ctx, "delete", resp)
	return resp.BulkResponse, nil
}

func (uc *EntityUseCase[T]) checkBulkSize(n int) error {
	if n == 0 {
		return errors.Validation("Request body must be a non-empty JSON array")
	}
	if uc.maxBulk > 0 && n > uc.maxBulk {
		return errors.Validation(fmt.Sprintf("Too many items: %d (max %d)", n, uc.maxBulk))
	}
	return nil
}

func (uc *EntityUseCase[T]) finishBulk(ctx context.Context, op string, resp *bulkResult) {
	if resp.Success > 0 {
		uc.bumpVersion(ctx)
	}
	uc.logger.Info("Bulk operation finished",
		zap.String("operation", op),
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed))
}

// publish отправляет событие изменения; ошибка только логируется
func (uc *EntityUseCase[T]) publish(ctx context.Context, op domain.ChangeOp, key domain.Key, id string) {
	if uc.publisher == nil {
		return
	}
	event := domain.ChangeEvent{
		Kind: uc.kind.Singular,
		Op:   op,
		Key:  key,
		ID:   id,
		At:   time.Now().UTC(),
	}
	if err := uc.publisher.PublishChange(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish change event",
			zap.String("op", string(op)),
			zap.String("key", key.String()),
			zap.Error(err))
	}
}

// version - текущая версия коллекции в кеше, -1 если кеш недоступен
func (uc *EntityUseCase[T]) version(ctx context.Context) int64 {
	data, err := uc.cacheRepo.Get(ctx, cache.VersionKey(uc.kind.Plural))
	if err != nil {
		uc.logger.Warn("Failed to read collection version", zap.Error(err))
		return -1
	}
	if data == nil {
		return 0
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return -1
	}
	return v
}

// bumpVersion инвалидирует все закешированные ответы коллекции и снимок /stats
func (uc *EntityUseCase[T]) bumpVersion(ctx context.Context) {
	if _, err := uc.cacheRepo.Incr(ctx, cache.VersionKey(uc.kind.Plural)); err != nil {
		uc.logger.Warn("Failed to bump collection version", zap.Error(err))
	}
	if err := uc.cacheRepo.Delete(ctx, cache.StatsKey); err != nil {
		uc.logger.Warn("Failed to drop statistics snapshot", zap.Error(err))
	}
}

func (uc *EntityUseCase[T]) observe(op string, err error) {
	metrics.EntityOperations.WithLabelValues(uc.kind.Plural, op, resultLabel(err)).Inc()
}

// cacheAside читает значение из кеша или загружает и кеширует его
func cacheAside[T domain.Record[T], V any](ctx context.Context, uc *EntityUseCase[T], name string, load func() (V, error)) (V, error) {
	version := uc.version(ctx)
	if version < 0 {
		metrics.CacheRequests.WithLabelValues(uc.kind.Plural, "error").Inc()
		return load()
	}

	key := cache.EntryKey(uc.kind.Plural, version, name)
	if data, err := uc.cacheRepo.Get(ctx, key); err == nil && data != nil {
		var cached V
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheRequests.WithLabelValues(uc.kind.Plural, "hit").Inc()
			return cached, nil
		}
		uc.logger.Warn("Failed to decode cached value", zap.String("key", key))
	}
	metrics.CacheRequests.WithLabelValues(uc.kind.Plural, "miss").Inc()

	value, err := load()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache value", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

// filterCacheKey - стабильное представление фильтра: name=new&state_code=NY
func filterCacheKey(filter domain.Filter) string {
	parts := make([]string, 0, len(filter))
	for _, c := range filter {
		value := strings.ToLower(c.Value)
		parts = append(parts, c.Field+"="+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, "&")
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if appErr, ok := errors.As(err); ok {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}

type bulkResult struct {
	*dto.BulkResponse
}

func newBulkResponse() *bulkResult {
	return &bulkResult{&dto.BulkResponse{IDs: []string{}, Errors: []dto.BulkError{}}}
}

func (r *bulkResult) ok(id string) {
	r.Success++
	r.IDs = append(r.IDs, id)
}

func (r *bulkResult) fail(index int, id string, err error) {
	r.Failed++
	msg := errors.ErrInternalServer.Message
	if appErr, ok := errors.As(err); ok {
		msg = appErr.Message
	}
	r.Errors = append(r.Errors, dto.BulkError{Index: index, ID: id, Error: msg})
}
