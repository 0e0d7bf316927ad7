package handlers

import (
	"errors"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/core/services"
	"github.com/darickquinto0629/ulevha/internal/pkg/pagination"
	"github.com/darickquinto0629/ulevha/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles operator account endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// actor returns the authenticated caller's id and role from locals
func actor(c *fiber.Ctx) (uint, string) {
	id, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	return id, role
}

// List lists operator accounts (admin only, enforced at the route)
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param role query string false "Filter by role name"
// @Param search query string false "Substring over name and email"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), c.Query("role"), c.Query("search"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.Paginated(c, "Users retrieved successfully", users, pagination.GetMeta(params, total))
}

// GetByID returns a single user. Staff may fetch only their own record.
// @Summary Get user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	actorID, role := actor(c)
	if role != models.RoleAdmin && actorID != uint(id) {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	user, err := h.userService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// Create creates an operator account (admin only, enforced at the route)
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID, _ := actor(c)
	user, err := h.userService.Create(c.Context(), &req, actorID, clientMeta(c))
	if err != nil {
		var missing *services.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			return response.BadRequest(c, missing.Error())
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", user)
}

// Update applies a partial update. Staff may update only their own
// record and cannot change role or active status.
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	actorID, role := actor(c)
	if role != models.RoleAdmin && actorID != uint(id) {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	var req services.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Privileged fields are admin only
	if role != models.RoleAdmin {
		req.Role = nil
		req.IsActive = nil
	}

	user, err := h.userService.Update(c.Context(), uint(id), &req, actorID, clientMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrNoFieldsToUpdate):
			return response.BadRequest(c, "No fields to update")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", user)
}

// Delete removes an operator account (admin only, enforced at the route)
// @Summary Delete user
// @Description Permanently removes the account; audit entries keep a null actor
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	actorID, _ := actor(c)
	if err := h.userService.Delete(c.Context(), uint(id), actorID, clientMeta(c)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}
