package handler

import (
	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/deppfellow/tweteroo/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c echo.Context, req *model.CreateUserRequest) (*model.User, error) {
	return h.userService.Create(c.Request().Context(), req)
}
