package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
	capsKey      = contextKey("capabilities")
)

// CapManualEntries is the capability required to post manual journal entries.
// Who holds it is decided by the auth collaborator; the engine only checks
// the flag.
const CapManualEntries = "manual_entries"

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok
}

// GetCompanyIDFromContext retrieves the tenant the request is scoped to.
// Tenancy is always explicit: every engine call receives it as a parameter.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(companyIDKey))
	if !exists {
		return "", false
	}
	companyID, ok := v.(string)
	return companyID, ok
}

// HasCapability reports whether the authenticated caller carries the named
// capability.
func HasCapability(c *gin.Context, cap string) bool {
	v, exists := c.Get(string(capsKey))
	if !exists {
		return false
	}
	caps, ok := v.([]string)
	if !ok {
		return false
	}
	for _, have := range caps {
		if have == cap {
			return true
		}
	}
	return false
}
