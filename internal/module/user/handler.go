package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/userpage/internal/domain"
	"github.com/simp-lee/userpage/internal/pkg"
)

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	var q ListUsersQuery
	if !pkg.BindQuery(c, &q) {
		return
	}

	page, err := h.svc.GetUsers(c.Request.Context(), q.Name, q.Page, q.Size)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "users retrieved", page)
}
