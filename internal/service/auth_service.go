package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/pkg/config"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
)

// Identity is the authenticated principal extracted from an access token.
// The tokens themselves are minted by the external identity provider; this
// service only validates and reads them.
type Identity struct {
	OwnerID string
	Email   string
	Name    string
}

// AuthService adapts externally issued JWTs into an owner identity.
type AuthService struct {
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService constructs the identity adapter.
func NewAuthService(cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, logger: logger}
}

type identityClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken checks signature, expiry and (when configured) issuer and
// audience, and returns the embedded identity. The subject claim carries the
// opaque owner id.
func (s *AuthService) ValidateToken(raw string) (*Identity, error) {
	claims := &identityClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	for _, aud := range s.cfg.Audience {
		opts = append(opts, jwt.WithAudience(aud))
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid access token")
	}
	if claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token missing subject")
	}
	return &Identity{OwnerID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
