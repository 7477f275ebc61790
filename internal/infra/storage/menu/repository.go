// Package menu persists the service catalog (categories and menu items).
package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	"github.com/beautylounge/salon-booking-service/pkg/dbmetrics"
	"github.com/beautylounge/salon-booking-service/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var itemColumns = []string{
	"mi.id",
	"mi.category_id",
	"mc.name AS category_name",
	"mi.name",
	"mi.description",
	"mi.price",
	"mi.duration_minutes",
	"mi.created_at",
	"mi.updated_at",
}

// Repository persists the catalog in Postgres.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a menu repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetItemByID fetches one menu item with its category name.
func (r *Repository) GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("menu_items mi").
		Join("menu_categories mc ON mc.id = mi.category_id").
		Where(squirrel.Eq{"mi.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByID - scan item: %v", ErrScanRow, err)
	}

	return item, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.MenuCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "slug").
		From("menu_categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.MenuCategory, 0)
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan category: %v", ErrScanRow, err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - iterate rows: %v", ErrExecQuery, err)
	}

	return categories, nil
}

// ListItemsByCategorySlug returns the items of one category.
func (r *Repository) ListItemsByCategorySlug(ctx context.Context, slug string) ([]*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("menu_items mi").
		Join("menu_categories mc ON mc.id = mi.category_id").
		Where(squirrel.Eq{"mc.slug": slug}).
		OrderBy("mi.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListItemsByCategorySlug - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryItems(ctx, executor, "ListItemsByCategorySlug", query, args)
}

// ListItems returns the whole catalog.
func (r *Repository) ListItems(ctx context.Context) ([]*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("menu_items mi").
		Join("menu_categories mc ON mc.id = mi.category_id").
		OrderBy("mc.name ASC, mi.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryItems(ctx, executor, "ListItems", query, args)
}

// CreateItem inserts a menu item.
func (r *Repository) CreateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("menu_items").
		Columns("category_id", "name", "description", "price", "duration_minutes").
		Values(item.CategoryID, item.Name, item.Description, item.Price, item.DurationMinutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateItem - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateItem - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// UpdateItem updates a menu item's editable fields.
func (r *Repository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("menu_items").
		Set("category_id", item.CategoryID).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("duration_minutes", item.DurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateItem - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateItem - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateItem - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}

// DeleteItem removes a menu item.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("menu_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteItem - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteItem - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteItem - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}

func (r *Repository) queryItems(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.MenuItem, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan item: %v", ErrScanRow, op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.CategoryID,
		&item.CategoryName,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.DurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}
