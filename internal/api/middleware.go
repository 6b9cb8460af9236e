package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ashvale/arena/internal/constants"
)

// RequestID attaches a request id to every request, honoring one supplied
// by the caller so upstream traces stay connected.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constants.LogFieldRequestID, id)
		c.Header(constants.HeaderRequestID, id)
		c.Next()
	}
}
