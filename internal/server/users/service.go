// Package users contains the account business logic: signup, login with
// token issuance, and the read operations behind the list/get endpoints.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkovalev/accountd/internal/common"
	"github.com/dkovalev/accountd/internal/server/auth"
	"github.com/dkovalev/accountd/internal/server/config"
	"github.com/dkovalev/accountd/internal/server/models"
	usersrepo "github.com/dkovalev/accountd/internal/server/repositories/users"
)

// DefaultPageSize is used when the caller does not request a page size.
const DefaultPageSize = 20

// Service provides account operations:
//   - SignUp: create a user with a hashed password
//   - Login: verify credentials and mint a bearer token
//   - ListUsers / GetUserByID: read projections of stored records
//
// The service keeps no state between requests; all shared state lives in the
// repository's backing store.
type Service struct {
	repo          usersrepo.Repository
	jwtSecret     []byte
	tokenIssuer   string
	tokenAudience string
	tokenValidity time.Duration
	now           func() time.Time
}

// NewService constructs a Service from the repository and server config.
func NewService(repo usersrepo.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenIssuer:   cfg.TokenIssuer,
		tokenAudience: cfg.TokenAudience,
		tokenValidity: cfg.TokenValidityDuration,
		now:           time.Now,
	}
}

// SignUp stores a new account with a bcrypt hash in place of the plaintext.
// The duplicate-email lookup resolves fully before the branch; an existing
// account yields common.ErrAlreadyExists. The plaintext password is never
// stored or logged.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if _, err := s.repo.Insert(ctx, &models.User{Email: email, PasswordHash: hash}); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// Login verifies the credentials and mints a signed bearer token. Unknown
// emails yield common.ErrNotFound, a password mismatch yields
// common.ErrInvalidCredentials; the two are distinguishable only by those
// sentinels, never by message detail.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.tokenIssuer, s.tokenAudience, s.now(), s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

// ListUsers returns up to pageSize record projections. The returned count is
// the size of the page, matching the original list endpoint, not the corpus
// total.
func (s *Service) ListUsers(ctx context.Context, pageSize int) (int, []models.UserView, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	items, err := s.repo.ListPage(ctx, pageSize)
	if err != nil {
		return 0, nil, fmt.Errorf("error listing users: %w", err)
	}

	views := make([]models.UserView, 0, len(items))
	for i := range items {
		views = append(views, items[i].View())
	}

	return len(views), views, nil
}

// GetUserByID returns the projection of one record, or common.ErrNotFound.
func (s *Service) GetUserByID(ctx context.Context, id string) (models.UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.UserView{}, common.ErrNotFound
		}
		return models.UserView{}, fmt.Errorf("error searching user: %w", err)
	}

	return user.View(), nil
}
