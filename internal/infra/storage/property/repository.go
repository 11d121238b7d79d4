package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RealtyService/pkg/geo"
	"github.com/m04kA/SMC-RealtyService/pkg/psqlbuilder"
)

var propertyColumns = []string{
	"id",
	"name",
	"type",
	"status",
	"description",
	"address",
	"price",
	"bedrooms",
	"bathrooms",
	"area",
	"facilities",
	"images",
	"agent_id",
	"latitude",
	"longitude",
	"created_at",
	"updated_at",
}

// Спецсимволы LIKE в пользовательском запросе экранируются
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository репозиторий объектов недвижимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет объект, ID генерируется здесь
func (r *Repository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *property
	created.ID = uuid.NewString()

	lat, lon := locationArgs(created.Location)
	query, args, err := psqlbuilder.Insert("properties").
		Columns(propertyColumns...).
		Values(
			created.ID,
			created.Name,
			created.Type,
			statusArg(created.Status),
			created.Description,
			created.Address,
			created.Price,
			created.Bedrooms,
			created.Bathrooms,
			created.Area,
			pq.Array(nonNil(created.Facilities)),
			pq.Array(nonNil(created.Images)),
			created.AgentID,
			lat,
			lon,
			created.CreatedAt,
			created.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	property, err := scanProperty(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan property: %v", ErrScanRow, err)
	}

	return property, nil
}

// GetByIDs получает объекты по списку ID; отсутствующие просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Property, error) {
	result := make(map[string]*domain.Property, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	properties, err := scanProperties(rows)
	if err != nil {
		return nil, err
	}

	for _, p := range properties {
		result[p.ID] = p
	}
	return result, nil
}

// GetLatest получает последние добавленные объекты, новые первыми
func (r *Repository) GetLatest(ctx context.Context, limit int) ([]*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(propertyColumns...).
		From("properties").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatest - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatest - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// Search фильтрует объекты на стороне БД по всем критериям, кроме радиуса
// limit <= 0 означает отсутствие ограничения
func (r *Repository) Search(ctx context.Context, filters domain.PropertyFilters, limit int) ([]*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(propertyColumns...).
		From("properties").
		OrderBy("created_at DESC")

	if filters.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filters.Type})
	}
	if filters.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filters.Status})
	}
	if filters.PriceMin != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price": *filters.PriceMin})
	}
	if filters.PriceMax != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price": *filters.PriceMax})
	}
	if len(filters.Facilities) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Expr("facilities @> ?", pq.Array(filters.Facilities)))
	}
	if filters.Query != nil {
		if q := strings.TrimSpace(*filters.Query); q != "" {
			pattern := "%" + likeEscaper.Replace(q) + "%"
			selectBuilder = selectBuilder.Where(squirrel.Or{
				squirrel.ILike{"name": pattern},
				squirrel.ILike{"address": pattern},
				squirrel.ILike{"type": pattern},
			})
		}
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// Update перезаписывает изменяемые поля объекта
func (r *Repository) Update(ctx context.Context, property *domain.Property) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	lat, lon := locationArgs(property.Location)
	query, args, err := psqlbuilder.Update("properties").
		SetMap(map[string]interface{}{
			"name":        property.Name,
			"type":        property.Type,
			"status":      statusArg(property.Status),
			"description": property.Description,
			"address":     property.Address,
			"price":       property.Price,
			"bedrooms":    property.Bedrooms,
			"bathrooms":   property.Bathrooms,
			"area":        property.Area,
			"facilities":  pq.Array(nonNil(property.Facilities)),
			"images":      pq.Array(nonNil(property.Images)),
			"latitude":    lat,
			"longitude":   lon,
			"updated_at":  property.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": property.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// Delete удаляет объект; избранное удаляется каскадно
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// BackfillStatus проставляет статус объектам, у которых он не задан
func (r *Repository) BackfillStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("properties").
		Set("status", status).
		Where(squirrel.Or{
			squirrel.Eq{"status": nil},
			squirrel.Eq{"status": ""},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: BackfillStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BackfillStatus - execute update: %v", ErrExecQuery, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BackfillStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return updated, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var (
		p        domain.Property
		status   sql.NullString
		lat, lon sql.NullFloat64
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Type,
		&status,
		&p.Description,
		&p.Address,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		pq.Array(&p.Facilities),
		pq.Array(&p.Images),
		&p.AgentID,
		&lat,
		&lon,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.PropertyStatus(status.String)
	if lat.Valid && lon.Valid {
		p.Location = &geo.Point{Latitude: lat.Float64, Longitude: lon.Float64}
	}

	return &p, nil
}

// scanProperties сканирует результаты запроса в слайс объектов
func scanProperties(rows *sql.Rows) ([]*domain.Property, error) {
	properties := make([]*domain.Property, 0)

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanProperties - scan row: %v", ErrScanRow, err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanProperties - rows error: %v", ErrScanRow, err)
	}

	return properties, nil
}

func locationArgs(loc *geo.Point) (interface{}, interface{}) {
	if loc == nil {
		return nil, nil
	}
	return loc.Latitude, loc.Longitude
}

// statusArg сохраняет пустой статус как NULL
func statusArg(s domain.PropertyStatus) interface{} {
	if s == "" {
		return nil
	}
	return string(s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
