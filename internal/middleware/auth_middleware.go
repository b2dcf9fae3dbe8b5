package middleware

import (
	"errors"
	"net/http"
	"strings"

	"familysync/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	MemberIDKey = "member_id"
	FamilyIDKey = "family_id"
	EmailKey    = "email"
)

// TokenParser validates a bearer token and returns who it was issued to.
type TokenParser interface {
	Parse(token string) (*auth.Identity, error)
}

func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		id, err := tokens.Parse(token)
		if errors.Is(err, auth.ErrInvalidClaims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid member ID in token"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(MemberIDKey, id.MemberID)
		if id.FamilyID != nil {
			c.Set(FamilyIDKey, *id.FamilyID)
		}
		c.Set(EmailKey, id.Email)
		c.Next()
	}
}

// MemberID returns the authenticated member, or nil outside of
// JWTAuthMiddleware.
func MemberID(c *gin.Context) *uuid.UUID {
	return uuidFrom(c, MemberIDKey)
}

// FamilyID returns the family claimed by the token, if any.
func FamilyID(c *gin.Context) *uuid.UUID {
	return uuidFrom(c, FamilyIDKey)
}

func uuidFrom(c *gin.Context, key string) *uuid.UUID {
	v, ok := c.Get(key)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
