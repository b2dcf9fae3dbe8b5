package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// KeyID is sent in the token header so the sync service can pick the
// shared HS512 key.
const KeyID = "powersync-hs512-key"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Identity is who a token was issued to.
type Identity struct {
	MemberID uuid.UUID
	FamilyID *uuid.UUID
	Email    string
}

type Claims struct {
	MemberID string  `json:"member_id"`
	FamilyID *string `json:"family_id"`
	Email    string  `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret   []byte
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenService(secret, audience string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL is how long issued tokens stay valid.
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Generate(id Identity) (string, error) {
	now := s.now()
	claims := Claims{
		MemberID: id.MemberID.String(),
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.MemberID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if id.FamilyID != nil {
		family := id.FamilyID.String()
		claims.FamilyID = &family
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	token.Header["kid"] = KeyID
	return token.SignedString(s.secret)
}

func (s *TokenService) Parse(tokenStr string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	memberID, err := uuid.Parse(claims.MemberID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	id := &Identity{MemberID: memberID, Email: claims.Email}
	if claims.FamilyID != nil {
		familyID, err := uuid.Parse(*claims.FamilyID)
		if err != nil {
			return nil, ErrInvalidClaims
		}
		id.FamilyID = &familyID
	}
	return id, nil
}
