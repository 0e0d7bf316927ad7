package handlers

import (
	"errors"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"
	"github.com/darickquinto0629/ulevha/internal/core/services"
	"github.com/darickquinto0629/ulevha/internal/pkg/pagination"
	"github.com/darickquinto0629/ulevha/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResidentHandler handles resident registry endpoints
type ResidentHandler struct {
	residentService *services.ResidentService
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(residentService *services.ResidentService) *ResidentHandler {
	return &ResidentHandler{residentService: residentService}
}

// filterFromQuery builds the typed filter from query parameters
func filterFromQuery(c *fiber.Ctx, searchParam string) *repositories.ResidentFilter {
	return &repositories.ResidentFilter{
		Search:   c.Query(searchParam),
		AgeGroup: c.Query("ageGroup"),
		Gender:   c.Query("gender"),
		Street:   c.Query("street"),
	}
}

// List lists active residents with pagination and filters
// @Summary List residents
// @Description Paginated, filtered listing of active residents
// @Tags Residents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Substring over names, household number, resident id, contact number"
// @Param ageGroup query string false "Age bucket (0-17, 18-30, 31-45, 46-59, 60+)"
// @Param gender query string false "Exact gender match"
// @Param street query string false "Exact address match"
// @Success 200 {object} response.Response
// @Router /residents [get]
func (h *ResidentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := filterFromQuery(c, "search")

	residents, total, err := h.residentService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch residents")
	}

	return response.Paginated(c, "Residents retrieved successfully", residents, pagination.GetMeta(params, total))
}

// Search lists residents but requires at least one criterion
// @Summary Search residents
// @Description Same filters as list; query or at least one filter is required
// @Tags Residents
// @Produce json
// @Security BearerAuth
// @Param query query string false "Substring search term"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /residents/search [get]
func (h *ResidentHandler) Search(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := filterFromQuery(c, "query")

	residents, total, err := h.residentService.Search(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrSearchCriteriaRequired) {
			return response.BadRequest(c, "Search query is required")
		}
		return response.InternalServerError(c, "Failed to search residents")
	}

	return response.Paginated(c, "Residents retrieved successfully", residents, pagination.GetMeta(params, total))
}

// Stats returns demographic aggregates over active residents
// @Summary Resident statistics
// @Description Totals plus gender, street, educational attainment and age-bucket breakdowns
// @Tags Residents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /residents/stats [get]
func (h *ResidentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.residentService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

// GetByID returns a single active resident
// @Summary Get resident
// @Tags Residents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident row id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residents/{id} [get]
func (h *ResidentHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid resident id")
	}

	resident, err := h.residentService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to fetch resident")
	}

	return response.Success(c, "Resident retrieved successfully", resident)
}

// Create creates a resident with a generated RES-NNN id
// @Summary Create resident
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateResidentInput true "Resident data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /residents [post]
func (h *ResidentHandler) Create(c *fiber.Ctx) error {
	var req services.CreateResidentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	summary, err := h.residentService.Create(c.Context(), &req)
	if err != nil {
		var missing *services.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			return response.BadRequest(c, missing.Error())
		case errors.Is(err, services.ErrInvalidDateOfBirth):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAttainmentOtherRequired):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create resident")
		}
	}

	return response.Created(c, "Resident created successfully", summary)
}

// Update applies a partial update; omitted fields keep their values
// @Summary Update resident
// @Tags Residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident row id"
// @Param body body services.UpdateResidentInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residents/{id} [put]
func (h *ResidentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid resident id")
	}

	var req services.UpdateResidentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resident, err := h.residentService.Update(c.Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResidentNotFound):
			return response.NotFound(c, "Resident not found")
		case errors.Is(err, services.ErrDuplicateResidentID):
			return response.BadRequest(c, "Resident ID already exists")
		case errors.Is(err, services.ErrInvalidDateOfBirth):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAttainmentOtherRequired):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update resident")
		}
	}

	return response.Success(c, "Resident updated successfully", resident)
}

// Delete soft-deletes a resident (admin only, enforced at the route)
// @Summary Delete resident
// @Description Marks the resident inactive; the row is retained
// @Tags Residents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident row id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residents/{id} [delete]
func (h *ResidentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid resident id")
	}

	if err := h.residentService.SoftDelete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to delete resident")
	}

	return response.Success(c, "Resident deleted successfully", nil)
}
