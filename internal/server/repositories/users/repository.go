// Package users contains the credential store adapter: a small repository
// over a collection of user records with pluggable backends.
package users

import (
	"context"

	"github.com/dkovalev/accountd/internal/server/models"
)

// Repository is the credential store adapter. Implementations wrap a single
// backing collection of user records; every call is one request/response
// round trip, no transactions.
type Repository interface {
	// EnsureCollection provisions the backing collection. It is idempotent
	// and is called once at service construction; a failure is fatal for
	// startup.
	EnsureCollection(ctx context.Context) error

	// Insert appends a new record. The store assigns the ID. A duplicate
	// email yields common.ErrAlreadyExists.
	Insert(ctx context.Context, user *models.User) (*models.User, error)

	// FindByEmail returns the record with exactly this email, or
	// common.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the record with this ID, or common.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// ListPage returns up to pageSize records in store-native order.
	ListPage(ctx context.Context, pageSize int) ([]models.User, error)
}
