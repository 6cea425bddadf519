package service

import (
	"context"
	"errors"
	"testing"

	"github.com/homekeeper/account-service/internal/core/domain"
)

type stubRoleRepo struct {
	roles []domain.Role
	err   error
}

func (r *stubRoleRepo) LoadAll(_ context.Context) ([]domain.Role, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.roles, nil
}

func (r *stubRoleRepo) Seed(_ context.Context, _ ...string) error {
	return nil
}

func TestCachedRoleCatalog_FindByName(t *testing.T) {
	repo := &stubRoleRepo{roles: []domain.Role{
		{ID: "1", Name: domain.RoleUser},
		{ID: "2", Name: domain.RoleAdmin},
	}}

	catalog, err := NewCachedRoleCatalog(context.Background(), repo)
	if err != nil {
		t.Fatalf("catalog build failed: %v", err)
	}

	role, err := catalog.FindByName(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if role.ID != "2" || role.Name != domain.RoleAdmin {
		t.Errorf("unexpected role: %+v", role)
	}
}

func TestCachedRoleCatalog_Miss(t *testing.T) {
	catalog := NewStaticRoleCatalog(domain.Role{ID: "1", Name: domain.RoleUser})

	_, err := catalog.FindByName(context.Background(), "auditor")
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestCachedRoleCatalog_LoadError(t *testing.T) {
	repo := &stubRoleRepo{err: errors.New("store down")}

	if _, err := NewCachedRoleCatalog(context.Background(), repo); err == nil {
		t.Fatal("expected error when the role store is unavailable")
	}
}

func TestCachedRoleCatalog_ReturnsCopy(t *testing.T) {
	catalog := NewStaticRoleCatalog(domain.Role{ID: "1", Name: domain.RoleUser})

	first, _ := catalog.FindByName(context.Background(), domain.RoleUser)
	first.Name = "mutated"

	second, err := catalog.FindByName(context.Background(), domain.RoleUser)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if second.Name != domain.RoleUser {
		t.Error("catalog entries must be immutable to callers")
	}
}
