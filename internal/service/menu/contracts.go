package menu

import (
	"context"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// MenuRepository persists the catalog.
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]*domain.MenuCategory, error)
	ListItems(ctx context.Context) ([]*domain.MenuItem, error)
	ListItemsByCategorySlug(ctx context.Context, slug string) ([]*domain.MenuItem, error)
	GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, id int64) error
}

// Logger logs service progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
