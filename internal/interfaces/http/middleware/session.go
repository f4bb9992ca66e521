package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guesthub/backend/internal/interfaces/http/dto"
)

// SessionHeader is the HTTP header carrying the guest session identifier.
// The session is minted by the frontend when a guest scans the room QR code;
// the backend treats it as an opaque string.
const SessionHeader = "X-Session-ID"

// SessionIDKey is the gin context key for the session ID
const SessionIDKey = "session_id"

// MaxSessionIDLength bounds the session ID to keep hostile headers out of
// cache keys and log fields.
const MaxSessionIDLength = 128

// SessionID extracts the guest session ID from the request header and stores
// it in the gin context. Missing sessions are not an error here; endpoints
// that need one use RequireSession.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if len(sessionID) > MaxSessionIDLength {
			sessionID = ""
		}
		if sessionID != "" {
			c.Set(SessionIDKey, sessionID)
		}
		c.Next()
	}
}

// RequireSession aborts with 400 when the request carries no usable session ID
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSessionID(c) == "" {
			requestID := getRequestIDFromContext(c)
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeMissingSession,
				"X-Session-ID header is required",
				requestID,
			))
			return
		}
		c.Next()
	}
}

// GetSessionID returns the session ID stored by SessionID, or ""
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
