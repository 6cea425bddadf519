package ports

import (
	"context"

	"github.com/homekeeper/account-service/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
//
// Insert and Update must enforce username/email uniqueness at the storage
// boundary (unique index) and report violations as domain.ErrUsernameTaken
// or domain.ErrEmailTaken; the service-level existence checks are only a
// fast path for user-facing errors.
type UserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Insert persists a new user and returns the stored record with the
	// server-assigned ID.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces the stored record identified by user.ID.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.User, error)
}
