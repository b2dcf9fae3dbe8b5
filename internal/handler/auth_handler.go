package handler

import (
	"net/http"
	"strings"

	"familysync/internal/auth"
	"familysync/internal/model"
	"familysync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	members repository.MemberDirectory
	tokens  *auth.TokenService
}

func NewAuthHandler(members repository.MemberDirectory, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{members: members, tokens: tokens}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string     `json:"token"`
	MemberID  uuid.UUID  `json:"member_id"`
	FamilyID  *uuid.UUID `json:"family_id"`
	Email     string     `json:"email"`
	ExpiresIn int64      `json:"expires_in"`
}

// Token issues a sync token for a known member.
//
//	@Summary	Issue a sync token for a member
//	@Tags		Auth
//	@Produce	json
//	@Param		memberId	path		string	true	"Member ID"
//	@Success	200			{object}	TokenResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/api/auth/token/{memberId} [get]
func (h *AuthHandler) Token(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	member, err := h.members.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	h.issue(c, member)
}

// Login checks the member's password and issues a sync token.
//
//	@Summary	Log in with email and password
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		LoginRequest	true	"Credentials"
//	@Success	200			{object}	TokenResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	401			{object}	map[string]string
//	@Router		/api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	member, err := h.members.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if member == nil || member.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*member.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.issue(c, member)
}

func (h *AuthHandler) issue(c *gin.Context, member *model.Member) {
	var email string
	if member.Email != nil {
		email = *member.Email
	}

	token, err := h.tokens.Generate(auth.Identity{MemberID: member.ID, FamilyID: member.FamilyID, Email: email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		MemberID:  member.ID,
		FamilyID:  member.FamilyID,
		Email:     email,
		ExpiresIn: h.tokens.TTL().Milliseconds(),
	})
}
