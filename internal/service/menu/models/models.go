// Package models holds the menu service request and response shapes.
package models

import "github.com/beautylounge/salon-booking-service/internal/domain"

// SaveItemRequest creates or updates a menu item. Price is in whole FCFA.
type SaveItemRequest struct {
	CategoryID      int64  `json:"categoryId"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// CategoryResponse is one catalog category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ItemResponse is one catalog entry.
type ItemResponse struct {
	ID              int64  `json:"id"`
	CategoryID      int64  `json:"categoryId"`
	CategoryName    string `json:"categoryName"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ItemListResponse wraps an item list.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// CategoryListResponse wraps a category list.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// FromDomainCategory converts a domain category.
func FromDomainCategory(c *domain.MenuCategory) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// FromDomainItem converts a domain menu item.
func FromDomainItem(i *domain.MenuItem) ItemResponse {
	return ItemResponse{
		ID:              i.ID,
		CategoryID:      i.CategoryID,
		CategoryName:    i.CategoryName,
		Name:            i.Name,
		Description:     i.Description,
		Price:           i.Price,
		DurationMinutes: i.DurationMinutes,
	}
}

// FromDomainItemList converts an item slice.
func FromDomainItemList(items []*domain.MenuItem) *ItemListResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, FromDomainItem(i))
	}
	return &ItemListResponse{Items: out, Total: len(out)}
}
