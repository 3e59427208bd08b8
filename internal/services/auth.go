package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authorization context of a request. Handlers build it from
// the bearer token and pass it explicitly into service calls.
type Principal struct {
	UserID    string `json:"user_id"`
	LoginName string `json:"login_name"`
}

// Authenticated reports whether p identifies a logged-in user.
func (p *Principal) Authenticated() bool {
	return p != nil && p.UserID != ""
}

const tokenTTL = 72 * time.Hour

// TokenService signs and verifies HS256 bearer tokens with one secret.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) GenerateJWT(userID, loginName string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"login_name": loginName,
		"exp":        time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// PrincipalFromToken validates tokenString and extracts the principal.
func (s *TokenService) PrincipalFromToken(tokenString string) (*Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	uid, ok := claims["user_id"].(string)
	if !ok || uid == "" {
		return nil, errors.New("invalid token claims")
	}
	login, _ := claims["login_name"].(string)
	return &Principal{UserID: uid, LoginName: login}, nil
}
