package middleware

import "github.com/gin-gonic/gin"

// clientIDKey is the key used to store the authenticated client's ID in the
// request context.
const clientIDKey = contextKey("clientID")

// GetClientIDFromContext retrieves the authenticated client ID from the Gin
// context. It returns the client ID and a boolean indicating if it was found.
func GetClientIDFromContext(c *gin.Context) (string, bool) {
	clientIDVal := c.Request.Context().Value(clientIDKey)
	if clientIDVal == nil {
		return "", false
	}

	clientID, ok := clientIDVal.(string)
	if !ok {
		return "", false
	}

	return clientID, true
}
