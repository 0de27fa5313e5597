package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pisquared/dashboard_service/internal/domain/services/session"
)

const (
	// SessionHeader carries the dashboard session ID on requests and responses.
	SessionHeader = "X-Session-ID"

	// SessionIDKey is the gin context key holding the resolved session ID.
	SessionIDKey = "session_id"
)

// Session resolves the caller's dashboard session. A missing, malformed or
// expired session ID silently gets a fresh session; the resolved ID is echoed
// back so the client can stick to it.
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id uuid.UUID

		if header := c.GetHeader(SessionHeader); header != "" {
			if parsed, err := uuid.Parse(header); err == nil {
				if _, err := store.Get(parsed); err == nil {
					id = parsed
				}
			}
		}
		if id == uuid.Nil {
			id = store.Create().ID
		}

		c.Set(SessionIDKey, id)
		c.Header(SessionHeader, id.String())
		c.Next()
	}
}

// SessionID extracts the resolved session ID from the gin context.
func SessionID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(SessionIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
