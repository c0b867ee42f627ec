package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/klasique2/Bellak-voting/internal/middleware"
	"github.com/klasique2/Bellak-voting/internal/model"
	"github.com/klasique2/Bellak-voting/internal/service"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// CatalogHandler exposes the typed data-access layer: category lists,
// per-category results, the merged category+nominees view, and the cross-
// category nominee feed.
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(c fiber.Ctx) error {
	page, err := h.svc.GetCategories(c.Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(page)
}

// Results handles GET /api/categories/:id/results
func (h *CatalogHandler) Results(c fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Category ID must be numeric")
	}
	results, err := h.svc.GetVotingResults(c.Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(results)
}

// WithNominees handles GET /api/categories/:id/full
func (h *CatalogHandler) WithNominees(c fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Category ID must be numeric")
	}
	details, err := h.svc.GetCategoryWithNominees(c.Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(details)
}

// AllNominees handles GET /api/nominees
func (h *CatalogHandler) AllNominees(c fiber.Ctx) error {
	nominees, err := h.svc.GetAllNominees(c.Context())
	if err != nil {
		return catalogError(c, err)
	}
	if nominees == nil {
		nominees = []model.Nominee{}
	}
	return c.JSON(nominees)
}

func pathID(c fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// catalogError maps a typed API error onto the lookup {error} envelope:
// upstream statuses relay as-is, transport failures surface as 503.
func catalogError(c fiber.Ctx, err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			middleware.Logger.Error().Err(err).Msg("catalog fetch: upstream unreachable")
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "Voting service unavailable")
		}
		middleware.Logger.Warn().Int("status", apiErr.Status).Msg("catalog fetch failed")
		return middleware.ErrorResponse(c, apiErr.Status, apiErr.Message)
	}
	middleware.Logger.Error().Err(err).Msg("catalog fetch failed")
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}
