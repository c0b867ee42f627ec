package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/klasique2/Bellak-voting/internal/middleware"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// CategoryHandler serves the read-only query-parameter lookup proxies kept
// for the storefront client: category by id and nominees by category.
type CategoryHandler struct {
	api *upstream.Client
}

func NewCategoryHandler(api *upstream.Client) *CategoryHandler {
	return &CategoryHandler{api: api}
}

// GetByID handles GET /api/get-category-by-id?id=
func (h *CategoryHandler) GetByID(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Query("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	resp, err := h.api.Get(c.Context(), "/categories/"+id+"/")
	if err != nil {
		middleware.Logger.Error().Err(err).Str("category_id", id).Msg("category lookup failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if !resp.OK() {
		return middleware.ErrorResponse(c, resp.Status,
			fmt.Sprintf("Failed to fetch category: %s", resp.StatusText))
	}

	return sendJSON(c, fiber.StatusOK, resp.Body)
}

// NomineesByCategory handles GET /api/get-nominees-by-category?category_id=
func (h *CategoryHandler) NomineesByCategory(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Query("category_id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	resp, err := h.api.Get(c.Context(), "/categories/"+id+"/nominees/")
	if err != nil {
		middleware.Logger.Error().Err(err).Str("category_id", id).Msg("nominee lookup failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if !resp.OK() {
		middleware.Logger.Warn().Str("category_id", id).Int("status", resp.Status).
			Msg("failed to fetch nominees for category")
		return middleware.ErrorResponse(c, resp.Status,
			fmt.Sprintf("Failed to fetch nominees: %s", resp.StatusText))
	}

	return sendJSON(c, fiber.StatusOK, resp.Body)
}
