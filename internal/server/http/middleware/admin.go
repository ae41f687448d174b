package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminCodeHeader carries the shared admin code for back-office endpoints.
const AdminCodeHeader = "X-Admin-Code"

// AdminRequired rejects requests that do not present the shared admin code.
func AdminRequired(adminCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AdminCodeHeader)
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(adminCode)) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
