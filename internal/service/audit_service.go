package service

import (
	"context"

	"patient-records/internal/domain/entity"
	"patient-records/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, newValue interface{}) error
}

type auditService struct {
	runID     uuid.UUID
	log       *logrus.Entry
	auditRepo repository.AuditLogRepository
}

func NewAuditService(runID uuid.UUID, log *logrus.Entry, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		runID:     runID,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action inside tx
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, newValue interface{}) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"new_value": newValue,
	}

	auditLog := &entity.AuditLog{
		RunID:    s.runID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
