// Package services contains the server-side business logic. This file
// implements UserService: registration, login, profile reads/updates, and
// the club-scoped lookups, composed from the credential store and the token
// service.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/identity/internal/common"
	"github.com/campushub/identity/internal/dbx"
	"github.com/campushub/identity/internal/server/auth"
	"github.com/campushub/identity/internal/server/config"
	"github.com/campushub/identity/internal/server/models"
	"github.com/campushub/identity/internal/server/password"
	"github.com/campushub/identity/internal/server/repositories/repomanager"
)

// searchLimit caps name-search results.
const searchLimit = 10

// RegisterInput carries the validated fields of a signup request. Password is
// cleartext here and nowhere past the Hash call.
type RegisterInput struct {
	Name       string
	Email      string
	StudentID  string
	Password   string
	University string
}

// AuthResult bundles the public account projection with a freshly issued
// access token.
type AuthResult struct {
	User        *models.PublicUser
	AccessToken string
}

// UserService provides the identity operations behind the HTTP handlers.
type UserService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repos:         m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new account and issues its first token. The email
// pre-check runs before the student-id pre-check so an input that collides on
// both reports the email conflict. Pre-checks and insert share a transaction;
// the unique indexes still backstop concurrent duplicates, surfacing as the
// same duplicate sentinels.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		if _, err := repo.GetByEmail(ctx, input.Email); err == nil {
			return common.ErrDuplicateEmail
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		if _, err := repo.GetByStudentID(ctx, input.StudentID); err == nil {
			return common.ErrDuplicateStudentID
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user := &models.User{
			Name:         input.Name,
			Email:        input.Email,
			StudentID:    input.StudentID,
			PasswordHash: hash,
			University:   input.University,
			Role:         common.RoleUser,
		}

		var createErr error
		created, createErr = repo.Create(ctx, user)
		return createErr
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(created, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: signing token: %v", common.ErrorInternal, err)
	}

	return &AuthResult{User: created.Public(), AccessToken: token}, nil
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller; a dummy hash comparison runs
// on the unknown-email path so both failures cost a bcrypt round.
func (s *UserService) Login(ctx context.Context, email, candidate string) (*AuthResult, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			password.VerifyDummy(candidate)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: loading account: %v", common.ErrorInternal, err)
	}

	if !password.Verify(user.PasswordHash, candidate) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: signing token: %v", common.ErrorInternal, err)
	}

	return &AuthResult{User: user.Public(), AccessToken: token}, nil
}

// Profile returns the caller's own public projection.
func (s *UserService) Profile(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UserByEmail resolves a live account by email. Used by the re-resolving
// authorization gate, which trusts the token's signature but not its snapshot.
func (s *UserService) UserByEmail(ctx context.Context, email string) (*models.PublicUser, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UserByStudentID fetches an account by its external student identifier.
func (s *UserService) UserByStudentID(ctx context.Context, studentID string) (*models.PublicUser, error) {
	user, err := s.repos.Users(s.db).GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile applies name/university changes to the caller's account. The
// id always comes from verified claims, never from request input. Empty
// fields leave the stored values untouched.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, university string) (*models.PublicUser, error) {
	user, err := s.repos.Users(s.db).Update(ctx, id, name, university)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// SearchByName returns up to searchLimit accounts whose name contains the
// fragment, case-insensitively. No matches is an empty slice, not an error.
func (s *UserService) SearchByName(ctx context.Context, fragment string) ([]*models.PublicUser, error) {
	found, err := s.repos.Users(s.db).SearchByName(ctx, fragment, searchLimit)
	if err != nil {
		return nil, err
	}
	return project(found), nil
}

// ClubMembers lists ordinary members of a club; administrative accounts are
// excluded.
func (s *UserService) ClubMembers(ctx context.Context, clubID string) ([]*models.PublicUser, error) {
	found, err := s.repos.Users(s.db).ListByClub(ctx, clubID, common.RoleUser)
	if err != nil {
		return nil, err
	}
	return project(found), nil
}

// StudentInClub cross-checks that a student id belongs to the given club.
func (s *UserService) StudentInClub(ctx context.Context, studentID, clubID string) (*models.PublicUser, error) {
	user, err := s.repos.Users(s.db).GetByStudentIDAndClub(ctx, studentID, clubID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// StudentIDAvailable reports whether the student id is still unused.
func (s *UserService) StudentIDAvailable(ctx context.Context, studentID string) (bool, error) {
	_, err := s.repos.Users(s.db).GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func project(users []*models.User) []*models.PublicUser {
	result := make([]*models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result
}
