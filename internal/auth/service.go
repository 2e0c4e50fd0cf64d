package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SusanneRenken/quizly/internal/models"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 24 * time.Hour
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenStore records revoked refresh tokens. Logout blacklists the token's
// JTI until the token would have expired anyway.
type TokenStore interface {
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type Service struct {
	repo      *Repository
	jwtSecret []byte
	tokens    TokenStore
}

func NewService(repo *Repository, jwtSecret string, tokens TokenStore) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokens:    tokens,
	}
}

func (s *Service) Register(username, email, password, confirmedPassword string) error {
	if password != confirmedPassword {
		return ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.CreateUser(&models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	})
}

// Login verifies the credentials and issues an access/refresh token pair.
func (s *Service) Login(username, password string) (*models.User, string, string, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.issueToken(user, "access", AccessTokenTTL)
	if err != nil {
		return nil, "", "", err
	}

	refresh, err := s.issueToken(user, "refresh", RefreshTokenTTL)
	if err != nil {
		return nil, "", "", err
	}

	return user, access, refresh, nil
}

// Refresh validates a refresh token and issues a new access token. A missing,
// malformed, expired, or blacklisted refresh token is rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return "", ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", ErrInvalidToken
	}

	revoked, err := s.tokens.IsBlacklisted(ctx, jti)
	if err != nil || revoked {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(uint(userID))
	if err != nil {
		return "", ErrInvalidToken
	}

	return s.issueToken(user, "access", AccessTokenTTL)
}

// Logout blacklists the refresh token. Tokens that are already invalid are
// ignored; logout always succeeds from the caller's point of view.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	claims, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return
	}

	jti, _ := claims["jti"].(string)
	exp, expErr := claims.GetExpirationTime()
	if jti == "" || expErr != nil || exp == nil {
		return
	}

	if ttl := time.Until(exp.Time); ttl > 0 {
		s.tokens.Blacklist(ctx, jti, ttl)
	}
}

func (s *Service) issueToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"type":     tokenType,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	if tokenType == "refresh" {
		claims["jti"] = uuid.NewString()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) parseToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
