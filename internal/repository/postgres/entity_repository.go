package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	apperrors "github.com/geo-directory/internal/pkg/errors"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type entityRepository[T domain.Record[T]] struct {
	db      *DB
	kind    domain.Kind
	columns []string
	logger  *zap.Logger
}

// NewEntityRepository создаёт репозиторий коллекции поверх таблицы kind.Table
func NewEntityRepository[T domain.Record[T]](db *DB, kind domain.Kind) repository.EntityRepository[T] {
	return &entityRepository[T]{
		db:      db,
		kind:    kind,
		columns: selectColumns(kind),
		logger:  db.logger.With(zap.String("table", kind.Table)),
	}
}

func NewCityRepository(db *DB) repository.CityRepository {
	return NewEntityRepository[domain.City](db, domain.CityKind)
}

func NewCountryRepository(db *DB) repository.CountryRepository {
	return NewEntityRepository[domain.Country](db, domain.CountryKind)
}

func NewStateRepository(db *DB) repository.StateRepository {
	return NewEntityRepository[domain.State](db, domain.StateKind)
}

func (r *entityRepository[T]) Kind() domain.Kind {
	return r.kind
}

func (r *entityRepository[T]) List(ctx context.Context, opts domain.ListOptions) ([]T, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := buildListQuery(r.kind, opts).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	records := []T{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.Error("List failed", zap.Error(err))
		return nil, 0, fmt.Errorf("list %s: %w: %w", r.kind.Plural, apperrors.ErrDatabaseError, err)
	}
	return records, total, nil
}

func (r *entityRepository[T]) Get(ctx context.Context, key domain.Key) (T, error) {
	var record T
	key = key.Normalize()

	query, args, err := psql.Select(r.columns...).
		From(r.kind.Table).
		Where(keyCondition(r.kind, key)).
		ToSql()
	if err != nil {
		return record, fmt.Errorf("build get query: %w", err)
	}

	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, apperrors.NotFound(r.kind.Singular, key.String())
		}
		return record, fmt.Errorf("get %s %q: %w: %w", r.kind.Singular, key.String(), apperrors.ErrDatabaseError, err)
	}
	return record, nil
}

func (r *entityRepository[T]) Create(ctx context.Context, record T) (string, error) {
	record = record.Normalized().WithID(uuid.NewString())

	if _, err := r.db.NamedExecContext(ctx, insertQuery(r.kind), record); err != nil {
		if conflict := r.conflictError(err, record.Key(), record); conflict != nil {
			return "", conflict
		}
		r.logger.Error("Create failed", zap.String("key", record.Key().String()), zap.Error(err))
		return "", fmt.Errorf("create %s: %w: %w", r.kind.Singular, apperrors.ErrDatabaseError, err)
	}
	return record.Value(domain.FieldID), nil
}

func (r *entityRepository[T]) Update(ctx context.Context, key domain.Key, patch domain.Patch) (T, error) {
	var record T
	key = key.Normalize()
	patch = patch.Normalized()

	query, args, err := buildUpdateQuery(r.kind, key, patch, r.columns).ToSql()
	if err != nil {
		return record, fmt.Errorf("build update query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, apperrors.NotFound(r.kind.Singular, key.String())
		}
		renamed := domain.Key{Name: key.Name, StateCode: key.StateCode}
		if v, ok := patch.String(domain.FieldName); ok {
			renamed.Name = v
		}
		if v, ok := patch.String(domain.FieldStateCode); ok && r.kind.CompositeKey() {
			renamed.StateCode = v
		}
		var zero T
		if conflict := r.conflictError(err, renamed, zero.Patched(patch)); conflict != nil {
			return record, conflict
		}
		return record, fmt.Errorf("update %s %q: %w: %w", r.kind.Singular, key.String(), apperrors.ErrDatabaseError, err)
	}
	return record, nil
}

func (r *entityRepository[T]) Delete(ctx context.Context, key domain.Key) error {
	key = key.Normalize()

	query, args, err := psql.Delete(r.kind.Table).Where(keyCondition(r.kind, key)).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s %q: %w: %w", r.kind.Singular, key.String(), apperrors.ErrDatabaseError, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s rows affected: %w: %w", r.kind.Singular, apperrors.ErrDatabaseError, err)
	}
	if n == 0 {
		return apperrors.NotFound(r.kind.Singular, key.String())
	}
	return nil
}

func (r *entityRepository[T]) Search(ctx context.Context, filter domain.Filter) ([]T, error) {
	query, args, err := buildSearchQuery(r.kind, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	records := []T{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.Error("Search failed", zap.Any("params", filter.Params()), zap.Error(err))
		return nil, fmt.Errorf("search %s: %w: %w", r.kind.Plural, apperrors.ErrDatabaseError, err)
	}
	return records, nil
}

func (r *entityRepository[T]) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(r.kind.Table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w: %w", r.kind.Plural, apperrors.ErrDatabaseError, err)
	}
	return n, nil
}

// conflictError маппит нарушение уникального индекса в ErrConflict
func (r *entityRepository[T]) conflictError(err error, key domain.Key, record T) error {
	constraint, ok := uniqueConstraint(err)
	if !ok {
		return nil
	}
	for _, field := range r.kind.UniqueFields {
		if constraint == r.kind.Table+"_"+field+"_key" {
			return apperrors.Conflict(r.kind.Singular, field+" "+record.Value(field))
		}
	}
	return apperrors.Conflict(r.kind.Singular, key.String())
}

// uniqueConstraint распознаёт unique_violation от pgx и от lib/pq
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func selectColumns(kind domain.Kind) []string {
	columns := []string{domain.FieldID}
	for _, f := range kind.Fields {
		columns = append(columns, f.Name)
	}
	return columns
}

func insertQuery(kind domain.Kind) string {
	columns := selectColumns(kind)
	params := make([]string, len(columns))
	for i, c := range columns {
		params[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		kind.Table, strings.Join(columns, ", "), strings.Join(params, ", "))
}

func keyCondition(kind domain.Kind, key domain.Key) squirrel.Eq {
	cond := squirrel.Eq{domain.FieldName: key.Name}
	if kind.CompositeKey() {
		cond[domain.FieldStateCode] = key.StateCode
	}
	return cond
}

// escapeLike экранирует метасимволы LIKE, чтобы значение искалось буквально
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func buildSearchQuery(kind domain.Kind, filter domain.Filter) squirrel.SelectBuilder {
	where := squirrel.And{}
	for _, c := range filter {
		switch c.Mode {
		case domain.MatchExact:
			where = append(where, squirrel.Expr(fmt.Sprintf("UPPER(%s) = UPPER(?)", c.Field), c.Value))
		default:
			where = append(where, squirrel.ILike{c.Field: "%" + escapeLike(c.Value) + "%"})
		}
	}

	return psql.Select(selectColumns(kind)...).
		From(kind.Table).
		Where(where).
		OrderBy(orderBy(kind, domain.FieldName, domain.SortAsc)...)
}

func buildListQuery(kind domain.Kind, opts domain.ListOptions) squirrel.SelectBuilder {
	q := psql.Select(selectColumns(kind)...).
		From(kind.Table).
		OrderBy(orderBy(kind, opts.SortBy, opts.Order)...)

	if opts.Paginated() {
		q = q.Limit(uint64(opts.Limit)).Offset(uint64(opts.Offset()))
	}
	return q
}

func buildUpdateQuery(kind domain.Kind, key domain.Key, patch domain.Patch, columns []string) squirrel.UpdateBuilder {
	q := psql.Update(kind.Table).
		Where(keyCondition(kind, key)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	for _, field := range patch.Fields() {
		q = q.Set(field, patch[field])
	}
	return q
}

// orderBy - только колонки из kind.SortFields; ключевые поля добавляются для стабильного порядка
func orderBy(kind domain.Kind, sortBy string, order domain.SortOrder) []string {
	if !kind.Sortable(sortBy) {
		sortBy = domain.FieldName
	}
	dir := "ASC"
	if order == domain.SortDesc {
		dir = "DESC NULLS LAST"
	}

	clauses := []string{sortBy + " " + dir}
	for _, f := range kind.KeyFields {
		if f != sortBy {
			clauses = append(clauses, f+" ASC")
		}
	}
	return clauses
}
