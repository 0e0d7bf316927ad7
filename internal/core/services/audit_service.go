package services

import (
	"context"
	"log"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"
)

// ClientMeta carries the caller identity captured for audit entries
type ClientMeta struct {
	IP        string
	UserAgent string
}

// AuditService appends security-relevant actions to the audit log
type AuditService struct {
	auditRepo repositories.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record appends an audit entry. Best-effort: a failed write is logged
// and never fails the request that triggered it.
func (s *AuditService) Record(ctx context.Context, userID *uint, action, description string, meta ClientMeta) {
	entry := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write audit entry [%s]: %v", action, err)
	}
}
