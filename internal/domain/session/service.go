package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

// TokenTTL is the fixed lifetime of an identity token.
const TokenTTL = time.Hour

// Servicer issues and verifies identity tokens. Tokens are self-contained:
// nothing is stored server side and a token cannot be revoked before it expires.
type Servicer interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
}

// Claims carries the account id twice: as the registered subject and as "id",
// the field older clients read.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

type Service struct {
	secret []byte
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret string, log *slog.Logger, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	s := &Service{
		secret: []byte(secret),
		now:    time.Now,
		log:    log.With("component", "session_service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Service) Create(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("create token: empty user id")
	}

	issuedAt := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Validate returns the account id carried by token. Bad signatures, malformed
// tokens and expired tokens all collapse into ErrInvalidToken.
func (s *Service) Validate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.log.Debug("token expired")
		} else {
			s.log.Debug("token rejected", "error", err)
		}
		return "", ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
