package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/homekeeper/account-service/internal/core/domain"
	"github.com/homekeeper/account-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists account events into
// the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single account event.
func (s *auditService) Process(ctx context.Context, event domain.AccountEvent) error {
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("username", event.Username).
		Str("action", string(event.Action)).
		Msg("account event recorded")

	return nil
}
