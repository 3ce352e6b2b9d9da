package response

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes the request body into dst and answers 400 "Invalid JSON"
// when it cannot. An empty body decodes as {}.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid JSON")
		return false
	}
	return true
}
