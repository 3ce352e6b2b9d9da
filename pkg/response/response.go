package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uyenbatu/wedding-backend/pkg/apperror"
)

// ErrorBody is the envelope for every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success is the body for operations that return nothing but an acknowledgement.
type Success struct {
	Success bool `json:"success"`
}

// OK sends a 200 JSON response with body as-is.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Done sends 200 {"success": true}.
func Done(c *gin.Context) {
	c.JSON(http.StatusOK, Success{Success: true})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err})
}

// Forbidden sends 403.
func Forbidden(c *gin.Context, err string) {
	c.JSON(http.StatusForbidden, ErrorBody{Error: err})
}

// NotFound sends 404.
func NotFound(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: err})
}

// MethodNotAllowed sends 405.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorBody{Error: "Method not allowed"})
}

// Internal sends 500.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: err})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInput:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON envelope. Input, NotFound and Authorization
// errors expose their message; everything else gets fallback so causes stay
// server-side.
func Error(c *gin.Context, err error, fallback string) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)
	msg := fallback
	if status != http.StatusInternalServerError {
		msg = apperror.MessageOf(err, fallback)
	}
	c.JSON(status, ErrorBody{Error: msg})
}
