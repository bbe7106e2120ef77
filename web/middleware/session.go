package middleware

import (
	"net/http"

	apperrors "concept-graph/errors"
	"concept-graph/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is the context key under which the resolved session is stored.
const SessionKey = "session"

// SessionMiddleware resolves the :session path parameter to a live editor
// session and aborts with 404 when it is unknown or expired.
func SessionMiddleware(sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := uuid.Parse(c.Param("session"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
			}
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session resolved by SessionMiddleware.
func SessionFrom(c *gin.Context) *store.Session {
	value, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	return value.(*store.Session)
}
