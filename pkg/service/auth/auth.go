// Package auth is the authentication gateway: it verifies credentials against
// the persistent user store, issues time-bounded JWTs and turns validated
// tokens back into principals for the ledger engine. The ledger itself never
// sees a credential, only the resulting domain.Principal.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

// ErrInvalidCredentials is returned when the identity/password pair does not
// match a stored, active user. Intentionally indistinguishable between
// unknown identity and wrong password.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

// Service implements credential verification and token issuance.
type Service struct {
	uow    repository.UnitOfWork
	jwtCfg config.Jwt
	cost   int
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, jwtCfg config.Jwt, authCfg config.Auth, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		jwtCfg: jwtCfg,
		cost:   authCfg.BcryptCost,
		logger: logger,
	}
}

// Register stores a new API user with a bcrypt-hashed password.
// Fails with domain.ErrAlreadyExists when username or email is taken.
func (s *Service) Register(
	ctx context.Context,
	username, email, password string,
) (u *dto.UserRead, err error) {
	logger := s.logger.With("op", "register", "username", username)
	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := users.Create(ctx, dto.UserCreate{
			ID:       id,
			Username: username,
			Email:    email,
			Password: hash,
		}); err != nil {
			return err
		}
		u, err = users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		u = nil
		logger.Error("register failed", "error", err)
		return
	}
	logger.Info("user registered", "userID", u.ID)
	return
}

// Login verifies the identity (username or email) and password and returns
// the stored user. Inactive users cannot log in.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	logger := s.logger.With("op", "login", "identity", identity)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		found, err := users.GetByIdentity(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if !CheckPasswordHash(password, found.HashedPassword) {
			return ErrInvalidCredentials
		}
		if !found.Active {
			return fmt.Errorf("%w: user is inactive", domain.ErrUnauthorized)
		}
		u = found
		return nil
	})
	if err != nil {
		u = nil
		logger.Warn("login refused", "error", err)
		return
	}
	logger.Info("login successful", "userID", u.ID)
	return
}

// GenerateToken issues an HS256 JWT for u, expiring after the configured
// token lifetime.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = u.ID.String()
	claims["username"] = u.Username
	claims["exp"] = time.Now().Add(s.jwtCfg.Expiry).Unix()
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

// Principal resolves a validated JWT into the caller's principal. The user is
// re-read from the store so that a deactivation takes effect before the token
// expires.
func (s *Service) Principal(ctx context.Context, token *jwt.Token) (p domain.Principal, err error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return p, fmt.Errorf("%w: malformed claims", domain.ErrUnauthorized)
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return p, fmt.Errorf("%w: missing subject claim", domain.ErrUnauthorized)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return p, fmt.Errorf("%w: malformed subject claim", domain.ErrUnauthorized)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: unknown subject", domain.ErrUnauthorized)
			}
			return err
		}
		p = domain.Principal{ID: u.ID, Username: u.Username, Active: u.Active}
		return nil
	})
	if err != nil {
		return domain.Principal{}, err
	}
	return p, nil
}
