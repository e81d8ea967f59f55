package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the caller with its role sub-profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, p, "User retrieved successfully.")
}

type CreateUserRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone"`
}

// Create registers the caller. The id always comes from the session.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "UserHandler.Create", "invalid request body", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	u, err := h.users.Create(c.Request.Context(), &models.User{
		ID:        userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, u, "User created successfully.")
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "UserHandler.Update", "invalid request body", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	u, err := h.users.Update(c.Request.Context(), userID, services.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, u, "User updated successfully.")
}

type SetRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

func (h *UserHandler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "UserHandler.SetRole", "role is required", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.users.SetRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, p, "User role updated successfully.")
}
