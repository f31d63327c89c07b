package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kalam-platform/app-analytics/internal/models"
)

const (
	UserRoleKey  = "user_role"
	UserIDKey    = "user_id"
	UserNameKey  = "user_name"
	UserEmailKey = "user_email"
	TokenKey     = "user_token"

	// DashboardRoleKey and DashboardUserIDKey hold the dashboard being read,
	// which differs from the caller when an admin inspects another user
	DashboardRoleKey   = "dashboard_role"
	DashboardUserIDKey = "dashboard_user_id"

	RoleAdmin = "ADMIN"
)

// ExtractUserContext reads the identity headers injected by the gateway
// after it validated the JWT:
//   - X-User-ID: user id (sub)
//   - X-User-Role: ADMIN, BLOGGER, WRITER or VOCALIST
//   - X-User-Name, X-User-Email
//
// The bearer token is kept as-is so it can be forwarded to the CMS.
func ExtractUserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader("X-User-ID")); userID != "" {
			c.Set(UserIDKey, userID)
		}
		if role := strings.TrimSpace(c.GetHeader("X-User-Role")); role != "" {
			c.Set(UserRoleKey, strings.ToUpper(role))
		}
		if userName := c.GetHeader("X-User-Name"); userName != "" {
			c.Set(UserNameKey, userName)
		}
		if userEmail := c.GetHeader("X-User-Email"); userEmail != "" {
			c.Set(UserEmailKey, userEmail)
		}
		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			c.Set(TokenKey, token)
		}

		c.Next()
	}
}

func getString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func GetUserRole(c *gin.Context) string  { return getString(c, UserRoleKey) }
func GetUserID(c *gin.Context) string    { return getString(c, UserIDKey) }
func GetUserName(c *gin.Context) string  { return getString(c, UserNameKey) }
func GetUserEmail(c *gin.Context) string { return getString(c, UserEmailKey) }

// GetToken returns the caller's bearer token without the scheme
func GetToken(c *gin.Context) string { return getString(c, TokenKey) }

// GetDashboardRole returns the role resolved by RequireDashboardAccess
func GetDashboardRole(c *gin.Context) models.Role {
	if v, exists := c.Get(DashboardRoleKey); exists {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return ""
}

// GetDashboardUserID returns the dashboard owner resolved by RequireDashboardAccess
func GetDashboardUserID(c *gin.Context) string { return getString(c, DashboardUserIDKey) }

func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == RoleAdmin
}

// HasRole reports whether the user has one of the roles
func HasRole(c *gin.Context, roles ...string) bool {
	userRole := GetUserRole(c)
	for _, role := range roles {
		if userRole == role {
			return true
		}
	}
	return false
}

// RequireRole rejects users that have none of the roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		if !HasRole(c, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":          "Access denied: insufficient permissions",
				"roles_required": roles,
				"user_role":      GetUserRole(c),
			})
			return
		}
		c.Next()
	}
}

// RequireAuthentication rejects requests without a user identity
func RequireAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" && GetUserRole(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.Next()
	}
}

// RequireDashboardAccess guards /analytics/:role routes. ADMIN may read any
// dashboard; other users only the dashboard of their own role, scoped to
// their own user id.
func RequireDashboardAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := models.ParseRole(c.Param("role"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid dashboard role",
				"details": err.Error(),
			})
			return
		}

		userRole := GetUserRole(c)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		requested := strings.TrimSpace(c.Query("user_id"))
		ownerID := requested

		if userRole != RoleAdmin {
			if userRole != role.Claim() {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":   "Access denied: you can only read your own dashboard",
					"details": "role " + userRole + " cannot read the " + string(role) + " dashboard",
				})
				return
			}

			userID := GetUserID(c)
			if requested != "" && requested != userID {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Access denied: you can only read your own dashboard",
				})
				return
			}
			ownerID = userID
		}

		c.Set(DashboardRoleKey, role)
		c.Set(DashboardUserIDKey, ownerID)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
