package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tally/internal/shared/authorization"
	"tally/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the claim set carried by tally tokens. Subject is the account
// public id. TokenID and OriginID are only present on refresh tokens; they
// correlate a presented refresh token back to its session row.
type Claims struct {
	Permissions authorization.Role `json:"permissions"`
	TokenType   TokenType          `json:"token_type"`
	TokenID     string             `json:"token_id,omitempty"`
	OriginID    string             `json:"origin_id,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer mints and verifies signed tokens. Verification is pure:
// signature, expiry, and token type only. It never consults the session
// store; revocation takes effect through the separate session check on
// refresh, bounded by the access token TTL.
//
// Constructed once at startup and passed by handle; there is no package
// level issuer state.
type TokenIssuer struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewTokenIssuer(secret string, accessExpMinutes, refreshExpDays int) *TokenIssuer {
	return &TokenIssuer{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

// IssueAccessToken mints a short-lived access token for the account.
func (s *TokenIssuer) IssueAccessToken(accountID string, role authorization.Role) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		Permissions: role,
		TokenType:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken mints a long-lived refresh token embedding the session
// correlation ids.
func (s *TokenIssuer) IssueRefreshToken(accountID string, role authorization.Role, tokenID, originID string) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		Permissions: role,
		TokenType:   TokenTypeRefresh,
		TokenID:     tokenID,
		OriginID:    originID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.refreshExpDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// IssuePair mints the access/refresh pair returned on login.
func (s *TokenIssuer) IssuePair(accountID string, role authorization.Role, tokenID, originID string) (*TokenPair, error) {
	access, err := s.IssueAccessToken(accountID, role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(accountID, role, tokenID, originID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

// Verify checks signature and expiry and returns the claims.
func (s *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// VerifyOfType checks signature, expiry, and that the token is of the
// expected type.
func (s *TokenIssuer) VerifyOfType(tokenString string, tokenType TokenType) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token is not a %s token", tokenType)
	}
	return claims, nil
}

// AccessExpMinutes returns the access token TTL in minutes.
func (s *TokenIssuer) AccessExpMinutes() int {
	return s.accessExpMinutes
}
