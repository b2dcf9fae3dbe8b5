package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"familysync/internal/auth"
	"familysync/internal/handler"
	"familysync/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Мок справочника участников
type MockMemberDirectory struct {
	mock.Mock
}

func (m *MockMemberDirectory) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	args := m.Called(ctx, id)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.Member), args.Error(1)
}

func (m *MockMemberDirectory) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	args := m.Called(ctx, email)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.Member), args.Error(1)
}

func setupAuthTest() (*gin.Engine, *MockMemberDirectory, *auth.TokenService) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockRepo := new(MockMemberDirectory)
	tokens := auth.NewTokenService("test-secret", "powersync-dev", 24*time.Hour)
	authHandler := handler.NewAuthHandler(mockRepo, tokens)

	r.GET("/api/auth/token/:memberId", authHandler.Token)
	r.POST("/api/auth/login", authHandler.Login)
	return r, mockRepo, tokens
}

func testMember(password string) *model.Member {
	email := "test@example.com"
	familyID := uuid.New()
	m := &model.Member{
		Audit:    model.Audit{ID: uuid.New()},
		Name:     "Test Member",
		Email:    &email,
		FamilyID: &familyID,
	}
	if password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		h := string(hash)
		m.PasswordHash = &h
	}
	return m
}

func postLogin(router *gin.Engine, body any) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestToken_Success(t *testing.T) {
	// Arrange
	router, mockRepo, tokens := setupAuthTest()
	member := testMember("")
	mockRepo.On("GetByID", mock.Anything, member.ID).Return(member, nil)

	req, _ := http.NewRequest("GET", "/api/auth/token/"+member.ID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.TokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, member.ID, response.MemberID)
	assert.Equal(t, member.FamilyID, response.FamilyID)
	assert.Equal(t, "test@example.com", response.Email)
	assert.Equal(t, int64(86400000), response.ExpiresIn)

	// Токен должен проходить проверку
	id, err := tokens.Parse(response.Token)
	require.NoError(t, err)
	assert.Equal(t, member.ID, id.MemberID)
	assert.Equal(t, member.FamilyID, id.FamilyID)

	mockRepo.AssertExpectations(t)
}

func TestToken_InvalidMemberID(t *testing.T) {
	router, mockRepo, _ := setupAuthTest()

	req, _ := http.NewRequest("GET", "/api/auth/token/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestToken_MemberNotFound(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupAuthTest()
	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/api/auth/token/"+id.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Member not found", response["error"])
	mockRepo.AssertExpectations(t)
}

func TestToken_RepositoryError(t *testing.T) {
	router, mockRepo, _ := setupAuthTest()
	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, errors.New("connection reset"))

	req, _ := http.NewRequest("GET", "/api/auth/token/"+id.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupAuthTest()
	member := testMember("password123")

	// Адрес приводится к нижнему регистру перед поиском
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(member, nil)

	// Act
	resp := postLogin(router, handler.LoginRequest{Email: "Test@Example.com", Password: "password123"})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.TokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, member.ID, response.MemberID)

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupAuthTest()
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testMember("correct_password"), nil)

	// Act
	resp := postLogin(router, handler.LoginRequest{Email: "test@example.com", Password: "wrong_password"})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Invalid credentials", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestLogin_MemberWithoutPassword(t *testing.T) {
	router, mockRepo, _ := setupAuthTest()
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testMember(""), nil)

	resp := postLogin(router, handler.LoginRequest{Email: "test@example.com", Password: "anything"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestLogin_MemberNotFound(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupAuthTest()

	// Участник не найден
	mockRepo.On("FindByEmail", mock.Anything, "nonexistent@example.com").Return(nil, nil)

	// Act
	resp := postLogin(router, handler.LoginRequest{Email: "nonexistent@example.com", Password: "password123"})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Invalid credentials", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidInput(t *testing.T) {
	router, mockRepo, _ := setupAuthTest()

	resp := postLogin(router, gin.H{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}
