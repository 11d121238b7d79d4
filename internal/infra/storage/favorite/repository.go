package favorite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RealtyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RealtyService/pkg/psqlbuilder"
)

// Repository репозиторий избранного
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория избранного
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет объект в избранное пользователя
func (r *Repository) Create(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *favorite
	created.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("favorites").
		Columns("id", "user_id", "property_id", "created_at").
		Values(created.ID, created.UserID, created.PropertyID, created.CreatedAt).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return nil, ErrFavoriteExists
		case pgerr.IsForeignKeyViolation(err):
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// FindByUserAndProperty ищет запись избранного для пары (пользователь, объект)
func (r *Repository) FindByUserAndProperty(ctx context.Context, userID, propertyID string) (*domain.Favorite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "property_id", "created_at").
		From("favorites").
		Where(squirrel.Eq{"user_id": userID, "property_id": propertyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByUserAndProperty - build select query: %v", ErrBuildQuery, err)
	}

	var fav domain.Favorite
	err = executor.QueryRowContext(ctx, query, args...).Scan(&fav.ID, &fav.UserID, &fav.PropertyID, &fav.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByUserAndProperty - scan favorite: %v", ErrScanRow, err)
	}

	return &fav, nil
}

// GetByUser получает избранное пользователя, новые первыми
func (r *Repository) GetByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "property_id", "created_at").
		From("favorites").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	favorites := make([]*domain.Favorite, 0)
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.PropertyID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByUser - scan row: %v", ErrScanRow, err)
		}
		favorites = append(favorites, &fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUser - rows error: %v", ErrScanRow, err)
	}

	return favorites, nil
}

// Delete удаляет запись избранного
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("favorites").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}
