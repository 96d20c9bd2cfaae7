package handler

import (
	"net/http"
	"strconv"

	"user-api/internal/adapter/gin/response"
	"user-api/internal/usecase/user"
	apperrors "user-api/pkg/errors"
	"user-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// Context keys set by the decode middleware.
const (
	userIDKey         = "user_id"
	createUserBodyKey = "create_user_body"
)

// CreateUserRequest represents the HTTP request body for creating a user.
// Both fields must be present; empty strings are accepted and unknown fields ignored.
type CreateUserRequest struct {
	Name  *string `json:"name" binding:"required"`
	Email *string `json:"email" binding:"required"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DecodeID parses the :id path parameter for the handlers after it.
// A non-integer id ends the request with 400 before they run.
func (h *UserHandler) DecodeID(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.handleError(c, apperrors.NewInvalidIDError(raw))
		return
	}
	c.Set(userIDKey, id)
}

// DecodeCreateUser binds the POST /users body for CreateUser.
// A malformed body or a missing field ends the request with 400.
func (h *UserHandler) DecodeCreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, apperrors.FromBindingError(err))
		return
	}
	c.Set(createUserBodyKey, user.CreateUserRequest{
		Name:  *req.Name,
		Email: *req.Email,
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{Name: u.Name, Email: u.Email}
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id. Requires DecodeID earlier in the chain.
func (h *UserHandler) GetUser(c *gin.Context) {
	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: c.GetInt64(userIDKey)})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// CreateUser handles POST /users. Requires DecodeCreateUser earlier in the chain.
func (h *UserHandler) CreateUser(c *gin.Context) {
	req := c.MustGet(createUserBodyKey).(user.CreateUserRequest)

	resp, err := h.uc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// UpdateUser handles PUT /users/:id. The body is ignored and the response is empty.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	if err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{ID: c.GetInt64(userIDKey)}); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// DeleteUser handles DELETE /users/:id. The response is empty.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: c.GetInt64(userIDKey)}); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// handleError logs err and writes its JSON error body.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status, _ := apperrors.StatusOf(err)
	log := logger.WithContext(c.Request.Context(), h.log).With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)

	if status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("request rejected")
	}

	response.Error(c, err)
}
