package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"

	"github.com/homekeeper/account-service/internal/core/domain"
	"github.com/homekeeper/account-service/internal/core/ports"
)

// ProfileCache abstracts the read-through profile cache (Redis). Cache
// failures are never fatal; callers degrade to the repository.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, username string) error
}

// UserService implements the account management use cases: registration
// reconciliation, profile mutation, deletion and the read contracts.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleCatalog
	hasher ports.PasswordHasher
	cache  ProfileCache
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

// NewUserService wires the service with its collaborators. cache and audit
// may be nil, in which case the corresponding concern is skipped.
func NewUserService(
	users ports.UserRepository,
	roles ports.RoleCatalog,
	hasher ports.PasswordHasher,
	cache ProfileCache,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

// Register reconciles the requested role names against the catalog, checks
// uniqueness and persists a fully-formed user record in one insert.
//
// The existence checks are a fast path only: the unique indexes on
// username/email are authoritative, and a duplicate-key violation at
// insert time surfaces as the same ErrUsernameTaken/ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Username first; the first failure wins.
	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	inUse, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("register: check email: %w", err)
	}
	if inUse {
		return nil, domain.ErrEmailTaken
	}

	roles, err := s.resolveRoles(ctx, input.RoleNames)
	if err != nil {
		// A catalog miss here means the reference data was never seeded.
		s.logger.Error().Err(err).Strs("requested", input.RoleNames).Msg("role resolution failed")
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AccountEvent{Username: created.Username, Action: domain.ActionRegistered, Timestamp: created.CreatedAt})
	s.logger.Info().
		Str("username", created.Username).
		Strs("roles", created.RoleNames()).
		Msg("user registered")

	return created, nil
}

// resolveRoles maps the requested names to catalog roles. An absent or
// empty request resolves to the default role. "admin" maps to the
// administrative role; every other string falls through to the default
// role. The fall-through is deliberate and load-bearing for existing
// callers, so unknown names are not rejected.
func (s *UserService) resolveRoles(ctx context.Context, requested []string) ([]domain.Role, error) {
	if len(requested) == 0 {
		role, err := s.roles.FindByName(ctx, domain.RoleUser)
		if err != nil {
			return nil, err
		}
		return []domain.Role{*role}, nil
	}

	resolved := make([]domain.Role, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		target := domain.RoleUser
		if name == domain.RoleAdmin {
			target = domain.RoleAdmin
		}
		if _, dup := seen[target]; dup {
			continue
		}
		role, err := s.roles.FindByName(ctx, target)
		if err != nil {
			return nil, err
		}
		seen[target] = struct{}{}
		resolved = append(resolved, *role)
	}
	return resolved, nil
}

// GetProfile returns the caller's own record, looked up by username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("profile cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("profile cache write failed")
		}
	}
	return user, nil
}

// List returns all users, unfiltered.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}

// Update applies the patch onto the stored record. Every field carried by
// the patch replaces the stored value; the identity field is always taken
// from the stored record, regardless of what the patch contains.
//
// Uniqueness is re-validated when the patch changes username or email, with
// the unique indexes as backstop against concurrent updates.
func (s *UserService) Update(ctx context.Context, id string, patch ports.UpdateInput) (*domain.User, error) {
	if patch.Username == "" || patch.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	stored, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != stored.Username {
		taken, err := s.users.ExistsByUsername(ctx, patch.Username)
		if err != nil {
			return nil, fmt.Errorf("update: check username: %w", err)
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
	}
	if patch.Email != stored.Email {
		inUse, err := s.users.ExistsByEmail(ctx, patch.Email)
		if err != nil {
			return nil, fmt.Errorf("update: check email: %w", err)
		}
		if inUse {
			return nil, domain.ErrEmailTaken
		}
	}

	updated := *stored
	if err := copier.Copy(&updated, &patch); err != nil {
		return nil, fmt.Errorf("update: copy patch: %w", err)
	}
	updated.ID = stored.ID
	if len(updated.Roles) == 0 {
		// A patch without roles keeps the assigned set; every persisted
		// user carries at least one role.
		updated.Roles = stored.Roles
	}

	saved, err := s.users.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, stored.Username)
	if saved.Username != stored.Username {
		s.invalidate(ctx, saved.Username)
	}

	s.record(domain.AccountEvent{Username: saved.Username, Action: domain.ActionUpdated, Timestamp: time.Now().UTC()})
	s.logger.Info().Str("id", saved.ID).Str("username", saved.Username).Msg("user updated")

	return saved, nil
}

// Delete removes the user identified by id. No cascading cleanup is
// performed.
func (s *UserService) Delete(ctx context.Context, id string) error {
	stored, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, stored.Username)
	s.record(domain.AccountEvent{Username: stored.Username, Action: domain.ActionDeleted, Timestamp: time.Now().UTC()})
	s.logger.Info().Str("id", id).Str("username", stored.Username).Msg("user deleted")

	return nil
}

func (s *UserService) invalidate(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("profile cache invalidation failed")
	}
}

func (s *UserService) record(event domain.AccountEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
