// Package menu exposes the service catalog and its back-office management.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	menuRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/menu"
	"github.com/beautylounge/salon-booking-service/internal/service/menu/models"
)

// Service manages the catalog.
type Service struct {
	repo   MenuRepository
	logger Logger
}

// NewService creates the menu service.
func NewService(repo MenuRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListCategories returns all catalog categories.
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}

	out := make([]models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, models.FromDomainCategory(c))
	}
	return &models.CategoryListResponse{Categories: out}, nil
}

// ListItems returns the catalog, optionally narrowed to one category slug.
func (s *Service) ListItems(ctx context.Context, categorySlug string) (*models.ItemListResponse, error) {
	var (
		items []*domain.MenuItem
		err   error
	)
	if categorySlug == "" {
		items, err = s.repo.ListItems(ctx)
	} else {
		items, err = s.repo.ListItemsByCategorySlug(ctx, categorySlug)
	}
	if err != nil {
		s.logger.Error("ListItems: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListItems - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainItemList(items), nil
}

// GetItem fetches one catalog entry.
func (s *Service) GetItem(ctx context.Context, id int64) (*models.ItemResponse, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("GetItem: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetItem - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainItem(item)
	return &resp, nil
}

// CreateItem adds a catalog entry. Back office only.
func (s *Service) CreateItem(ctx context.Context, req *models.SaveItemRequest) (*models.ItemResponse, error) {
	s.logger.Info("CreateItem: %q in category=%d", req.Name, req.CategoryID)

	if err := validateSaveItem(req); err != nil {
		s.logger.Warn("CreateItem: validation failed: %v", err)
		return nil, err
	}

	item, err := s.repo.CreateItem(ctx, &domain.MenuItem{
		CategoryID:      req.CategoryID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		s.logger.Error("CreateItem: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateItem - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainItem(item)
	return &resp, nil
}

// UpdateItem edits a catalog entry. Back office only.
func (s *Service) UpdateItem(ctx context.Context, id int64, req *models.SaveItemRequest) error {
	s.logger.Info("UpdateItem: id=%d", id)

	if err := validateSaveItem(req); err != nil {
		s.logger.Warn("UpdateItem: validation failed: %v", err)
		return err
	}

	err := s.repo.UpdateItem(ctx, &domain.MenuItem{
		ID:              id,
		CategoryID:      req.CategoryID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("UpdateItem: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateItem - repository error: %v", ErrInternal, err)
	}

	return nil
}

// DeleteItem removes a catalog entry. Back office only.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	s.logger.Info("DeleteItem: id=%d", id)

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("DeleteItem: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteItem - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateSaveItem(req *models.SaveItemRequest) error {
	if req.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
