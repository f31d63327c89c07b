package middlewares

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrMalformedToken = errors.New("malformed token")

// JWTClaims are the CMS token claims this service reads
type JWTClaims struct {
	Sub      string   `json:"sub"`
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Roles    []string `json:"roles"`
	IsAdmin  bool     `json:"is_admin"`
	Username string   `json:"username"`
}

// JWTAuthMiddleware fills the user context from the bearer token payload when
// the gateway headers are absent. The signature is not checked here; the CMS
// validates the same token on every upstream call.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != "" && GetUserID(c) != "" {
			c.Next()
			return
		}

		token := GetToken(c)
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token not provided"})
			return
		}

		claims, err := parseJWTClaims(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"details": err.Error(),
			})
			return
		}

		c.Set(TokenKey, token)
		if GetUserID(c) == "" {
			c.Set(UserIDKey, claims.ID())
		}
		if GetUserRole(c) == "" {
			c.Set(UserRoleKey, extractPrimaryRole(claims))
		}
		if GetUserName(c) == "" && claims.Name != "" {
			c.Set(UserNameKey, claims.Name)
		}
		if GetUserEmail(c) == "" && claims.Email != "" {
			c.Set(UserEmailKey, claims.Email)
		}

		c.Next()
	}
}

// ID returns the user id claim, preferring sub
func (c *JWTClaims) ID() string {
	if c.Sub != "" {
		return c.Sub
	}
	return c.UserID
}

// parseJWTClaims decodes the payload segment without verifying the signature
func parseJWTClaims(token string) (*JWTClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, ErrMalformedToken
	}

	var claims JWTClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, ErrMalformedToken
	}
	if claims.ID() == "" {
		return nil, errors.New("token has no subject")
	}
	return &claims, nil
}

// extractPrimaryRole maps the CMS role claims to a dashboard role. Admin wins
// over any other role the user holds.
func extractPrimaryRole(claims *JWTClaims) string {
	if claims.IsAdmin {
		return RoleAdmin
	}

	roles := append([]string{claims.Role}, claims.Roles...)
	primary := ""
	for _, r := range roles {
		switch strings.ToUpper(strings.TrimSpace(r)) {
		case "ADMIN", "SUPERADMIN":
			return RoleAdmin
		case "BLOGGER", "WRITER", "VOCALIST":
			if primary == "" {
				primary = strings.ToUpper(strings.TrimSpace(r))
			}
		}
	}
	if primary == "" {
		return "USER"
	}
	return primary
}
