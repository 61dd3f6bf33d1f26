package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "requestId"
)

// requestIDMiddleware tags every request with an id for log correlation.
// An inbound X-Request-Id is kept so upstream traces stay connected;
// otherwise a fresh uuid is issued. The id is echoed on the response.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	// store in Gin context
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// requestID returns the id assigned by requestIDMiddleware, or "" outside it.
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
