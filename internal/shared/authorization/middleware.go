package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/shared/constants"
	"tally/internal/shared/utils"
)

// RequireRoles returns a guard that allows the request only if the resolved
// role claim is one of the given roles. It expects an authentication
// middleware to have stored the claim in the context beforehand.
func RequireRoles(roles ...Role) gin.HandlerFunc {
	allowed := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := ParseRole(c.GetString(constants.ContextKeyRole))
		if _, ok := allowed[role]; !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "you do not have the required permissions for this")
			c.Abort()
			return
		}
		c.Next()
	}
}
