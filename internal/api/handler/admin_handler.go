package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/upgrad/stackoverflow/internal/api/middleware"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// DeleteUser removes a user account. Admin only.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Param        Authorization  header    string  true  "Access token"
// @Param        userId         path      string  true  "User id"
// @Success      200            {object}  statusResponse
// @Failure      401            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /admin/user/{userId} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	u, err := h.admin.DeleteUser(c.Request().Context(), middleware.Token(c), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{ID: u.ID, Status: "USER SUCCESSFULLY DELETED"})
}
