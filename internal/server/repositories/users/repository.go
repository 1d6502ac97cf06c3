// Package users implements the credential store: persistence of account
// records, uniqueness enforcement, and the lookups the identity operations
// are built on.
package users

import (
	"context"

	"github.com/campushub/identity/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.User, error)

	// Update applies name/university changes. An empty value means
	// "leave the column untouched", never "clear it".
	Update(ctx context.Context, id, name, university string) (*models.User, error)

	SearchByName(ctx context.Context, fragment string, limit int) ([]*models.User, error)
	ListByClub(ctx context.Context, club, role string) ([]*models.User, error)
	GetByStudentIDAndClub(ctx context.Context, studentID, club string) (*models.User, error)
}
