// Package services contains server-side business logic. This file implements
// UserService: registration, login, token refresh, and profile operations
// guarded by the self-mutation ownership check.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/server/auth"
	"github.com/learnbudget/server/internal/server/models"
	"github.com/learnbudget/server/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UpdateUserRequest carries optional profile changes; empty fields are left
// untouched. Email is immutable.
type UpdateUserRequest struct {
	FirstName string
	LastName  string
	Password  string
}

// UserService provides authentication and account operations:
//   - Register: create accounts (duplicate emails rejected)
//   - Login: verify credentials and mint a token pair
//   - RefreshToken: mint a new pair from a valid refresh token
//   - profile lookup/update/delete with ownership checks
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.Manager
	hasher      auth.HashProvider
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Manager, hasher auth.HashProvider) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
	}
}

// Register creates a new account. The email is lowercased before the
// existence check and before persistence; a duplicate email fails with
// common.ErrDuplicateEmail before the password is ever hashed.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	email = strings.ToLower(email)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: hash, FirstName: firstName, LastName: lastName}
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a new token pair
// plus the user snapshot. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshToken validates the refresh token's signature, expiry, and kind,
// re-reads the account it references, and issues a brand-new pair. The old
// refresh token is not invalidated; expiry is the only thing that retires it.
//
// A token that fails validation yields common.ErrInvalidCredentials without
// any further claim inspection. A valid token whose account no longer
// exists yields common.ErrUserNotFound.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, *models.User, error) {
	if !s.tokens.IsRefreshTokenValid(refreshToken) {
		return nil, nil, common.ErrInvalidCredentials
	}

	email, err := s.tokens.ExtractEmail(refreshToken)
	if err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrUserNotFound
		}
		return nil, nil, common.ErrorInternal
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// FindByID returns the account with the given identifier.
func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// FindByEmail returns the account with the given (case-insensitive) email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// Update applies profile changes to the account with the given id. The
// existence check runs before the ownership check, so an unknown id is a
// not-found, not a forbidden. Only the owner may mutate the profile.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest, authenticatedEmail string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if err := auth.AuthorizeSelfMutation(user.Email, authenticatedEmail); err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.PasswordHash = hash
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

// Delete removes the account with the given id after the same
// existence-then-ownership sequence as Update.
func (s *UserService) Delete(ctx context.Context, id int64, authenticatedEmail string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error finding user: %w", err)
	}

	if err := auth.AuthorizeSelfMutation(user.Email, authenticatedEmail); err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
