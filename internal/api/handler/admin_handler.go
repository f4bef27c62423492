package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskvault/todo-api/internal/core/ports"
)

// AdminHandler exposes the unfiltered todo views. Routes using it are gated
// by the RBAC middleware with the admin role.
type AdminHandler struct {
	service ports.TodoService
}

func NewAdminHandler(service ports.TodoService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListAll handles GET /admin/todos.
//
// @Summary      List every todo regardless of owner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/todos [get]
func (h *AdminHandler) ListAll(c echo.Context) error {
	todos, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// DeleteAny handles DELETE /admin/todos/:id.
//
// @Summary      Delete any todo regardless of owner
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/todos/{id} [delete]
func (h *AdminHandler) DeleteAny(c echo.Context) error {
	if err := h.service.DeleteAny(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
