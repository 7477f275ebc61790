// Package menu exposes the catalog endpoints, public reads and back-office
// writes.
package menu

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	menuService "github.com/beautylounge/salon-booking-service/internal/service/menu"
	"github.com/beautylounge/salon-booking-service/internal/service/menu/models"
)

const (
	msgInvalidBody   = "corps de requête invalide"
	msgInvalidItemID = "identifiant de prestation invalide"
	msgItemNotFound  = "prestation introuvable"
)

// MenuService is the service behind the handlers.
type MenuService interface {
	ListCategories(ctx context.Context) (*models.CategoryListResponse, error)
	ListItems(ctx context.Context, categorySlug string) (*models.ItemListResponse, error)
	GetItem(ctx context.Context, id int64) (*models.ItemResponse, error)
	CreateItem(ctx context.Context, req *models.SaveItemRequest) (*models.ItemResponse, error)
	UpdateItem(ctx context.Context, id int64, req *models.SaveItemRequest) error
	DeleteItem(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleListCategories GET /api/v1/menu/categories
func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("GET /menu/categories - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, categories)
}

// HandleListItems GET /api/v1/menu/items
// Query params: category (optional slug)
func (h *Handler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("GET /menu/items - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// HandleGetItem GET /api/v1/menu/items/{id}
func (h *Handler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, menuService.ErrItemNotFound) {
			handlers.RespondNotFound(w, msgItemNotFound)
			return
		}
		h.logger.Error("GET /menu/items/{id} - Failed for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

// HandleCreateItem POST /api/v1/admin/menu/items
func (h *Handler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.SaveItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		if errors.Is(err, menuService.ErrInvalidInput) {
			h.logger.Warn("POST /admin/menu/items - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
		h.logger.Error("POST /admin/menu/items - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/menu/items - Created item id=%d", item.ID)
	handlers.RespondJSON(w, http.StatusCreated, item)
}

// HandleUpdateItem PUT /api/v1/admin/menu/items/{id}
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req models.SaveItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.UpdateItem(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, menuService.ErrItemNotFound):
			handlers.RespondNotFound(w, msgItemNotFound)
		case errors.Is(err, menuService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)
		default:
			h.logger.Error("PUT /admin/menu/items/{id} - Failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/menu/items/{id} - Updated item id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteItem DELETE /api/v1/admin/menu/items/{id}
func (h *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, menuService.ErrItemNotFound) {
			handlers.RespondNotFound(w, msgItemNotFound)
			return
		}
		h.logger.Error("DELETE /admin/menu/items/{id} - Failed for id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/menu/items/{id} - Deleted item id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return 0, false
	}
	return id, true
}
