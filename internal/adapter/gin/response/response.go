// Package response renders error bodies shared by handlers and middleware.
package response

import (
	"net/http"

	apperrors "user-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// internalMessage replaces the message of every 5xx response.
const internalMessage = "An internal error occurred"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error writes err as an ErrorResponse with the status from apperrors.StatusOf
// and aborts the remaining handlers. Server errors never expose their details.
func Error(c *gin.Context, err error) {
	status, code := apperrors.StatusOf(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = internalMessage
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}
