package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's ID.
	ContextUserID = "userID"
	// ContextClaims is the gin context key holding the validated *Claims.
	ContextClaims = "claims"
)

// TokenValidator validates a raw bearer token.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// RevocationChecker reports whether a token identifier has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// revoked may be nil, in which case no denylist lookup is made.
func AuthRequired(v TokenValidator, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := v.Validate(tokenStr)
		if err != nil {
			_ = c.Error(err)
			msg := "invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "token expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				slog.Error("revocation lookup failed", "error", err, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "authentication unavailable"})
				return
			}
			if isRevoked {
				_ = c.Error(ErrTokenRevoked)
				abortUnauthorized(c, "token revoked")
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: msg})
}
