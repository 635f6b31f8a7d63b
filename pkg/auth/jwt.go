package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the verified identity payload: a stable subject identifier plus
// group memberships, as returned by the identity provider.
type Claims struct {
	TokenID   string
	Subject   string
	Email     string
	Groups    []string
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer credentials.
type TokenService interface {
	Issue(subject, email string, groups []string) (string, error)
	Verify(token string) (*Claims, error)
}

type Config struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

type jwtService struct {
	secret []byte
	issuer string
	expiry time.Duration
}

func NewJWTService(cfg Config) TokenService {
	expiry := time.Duration(cfg.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &jwtService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		expiry: expiry,
	}
}

type tokenClaims struct {
	Email  string   `json:"email,omitempty"`
	Groups []string `json:"groups,omitempty"`
	jwt.RegisteredClaims
}

func (s *jwtService) Issue(subject, email string, groups []string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email:  email,
		Groups: groups,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Verify(tokenStr string) (*Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return &Claims{
		TokenID:   claims.ID,
		Subject:   claims.Subject,
		Email:     claims.Email,
		Groups:    claims.Groups,
		ExpiresAt: expires,
	}, nil
}
