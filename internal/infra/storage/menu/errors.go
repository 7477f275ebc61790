package menu

import "errors"

var (
	// ErrMenuItemNotFound is returned when a menu item does not exist.
	ErrMenuItemNotFound = errors.New("menu.repository: menu item not found")

	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = errors.New("menu.repository: category not found")

	// ErrBuildQuery is returned when the SQL builder fails.
	ErrBuildQuery = errors.New("menu.repository: failed to build query")

	// ErrExecQuery is returned when executing a query fails.
	ErrExecQuery = errors.New("menu.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("menu.repository: failed to scan row")
)
