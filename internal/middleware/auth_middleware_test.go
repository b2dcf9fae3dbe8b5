package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"familysync/internal/auth"
	"familysync/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const jwtSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	tokens := auth.NewTokenService(jwtSecret, "", time.Hour)

	// Защищенный маршрут
	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(tokens))

	protected.GET("/resource", func(c *gin.Context) {
		memberID := middleware.MemberID(c)
		if memberID == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Member ID not found in context"})
			return
		}

		body := gin.H{
			"message":   "Access granted",
			"member_id": memberID,
			"email":     c.GetString(middleware.EmailKey),
		}
		if familyID := middleware.FamilyID(c); familyID != nil {
			body["family_id"] = familyID
		}
		c.JSON(http.StatusOK, body)
	})

	return r
}

func generateTestToken(t *testing.T, id auth.Identity) string {
	t.Helper()
	token, err := auth.NewTokenService(jwtSecret, "", time.Hour).Generate(id)
	assert.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	router := setupRouter()
	memberID, familyID := uuid.New(), uuid.New()
	token := generateTestToken(t, auth.Identity{MemberID: memberID, FamilyID: &familyID, Email: "jane@smith.family"})

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), memberID.String())
	assert.Contains(t, resp.Body.String(), familyID.String())
	assert.Contains(t, resp.Body.String(), "jane@smith.family")
}

func TestJWTAuthMiddleware_TokenWithoutFamily(t *testing.T) {
	// Arrange
	router := setupRouter()
	token := generateTestToken(t, auth.Identity{MemberID: uuid.New()})

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "family_id")
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	// Arrange
	router := setupRouter()

	// Запрос без заголовка авторизации
	req, _ := http.NewRequest("GET", "/protected/resource", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	// Arrange
	router := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	// Arrange
	router := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_TokenWithInvalidMemberID(t *testing.T) {
	// Arrange
	router := setupRouter()

	// Токен с недействительным форматом ID участника
	claims := jwt.MapClaims{
		"member_id": "not-a-valid-uuid",
		"exp":       jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}
	tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(jwtSecret))

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid member ID in token")
}
