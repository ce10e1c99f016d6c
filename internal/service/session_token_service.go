package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenService emite y valida tokens que atan un cliente a su sesión.
type SessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type SessionClaims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

const sessionTokenType = "session"

func NewSessionTokenService(secret string, ttl time.Duration) *SessionTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "learning-advisor",
	}
}

// Enabled indica si hay secreto configurado; sin él las rutas de chat son abiertas.
func (s *SessionTokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

func (s *SessionTokenService) Issue(sessionID string, now time.Time) (string, time.Time, error) {
	if !s.Enabled() || strings.TrimSpace(sessionID) == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	expiresAt := now.Add(s.ttl)
	claims := SessionClaims{
		SessionID: sessionID,
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *SessionTokenService) Parse(tokenString string) (SessionClaims, error) {
	if !s.Enabled() || strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenInvalid
	}
	if claims.TokenType != sessionTokenType ||
		strings.TrimSpace(claims.SessionID) == "" ||
		claims.Subject != claims.SessionID ||
		claims.Issuer != s.issuer {
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
