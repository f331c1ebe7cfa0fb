package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Hasher is the password hashing the directory relies on.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

type Servicer interface {
	Register(ctx context.Context, email, password string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
}

type Service struct {
	repo      Repository
	hasher    Hasher
	validator Validator
	log       *slog.Logger
	now       func() time.Time

	// compared against when the email is unknown so both failure paths pay for one hash check
	dummyHash string
}

func NewService(repo Repository, hasher Hasher, validator Validator, log *slog.Logger) (*Service, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Service{
		repo:      repo,
		hasher:    hasher,
		validator: validator,
		log:       log.With("component", "user_service"),
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("registration rejected", "error", err)
		return User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, ErrAlreadyExists
		}
		return User{}, fmt.Errorf("register: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email and for a
// wrong password alike. Storage faults are returned as is.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		u = User{}
	case err != nil:
		return User{}, fmt.Errorf("authenticate: %w", err)
	}

	hash := u.PasswordHash
	if u.ID == "" {
		hash = s.dummyHash
	}

	if !s.hasher.Verify(password, hash) || u.ID == "" {
		s.log.Debug("authentication failed")
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
