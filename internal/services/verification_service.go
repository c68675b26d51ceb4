package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "siteproof/internal/errors"
	"siteproof/internal/models"
)

// verificationService handles the QS review workflow.
type verificationService struct {
	db  *gorm.DB
	now clock
}

// NewVerificationService creates a new VerificationServicer.
func NewVerificationService(db *gorm.DB) VerificationServicer {
	return &verificationService{db: db, now: time.Now}
}

// ListPending returns a project's pending evidence, newest capture first,
// capped at 50 rows. Decided evidence never appears here, which is the
// dashboard's feedback that a decision stuck.
func (s *verificationService) ListPending(projectID string) ([]models.Evidence, error) {
	var rows []models.Evidence
	err := s.db.
		Where("project_id = ? AND status = ?", projectID, models.StatusPending).
		Order("taken_at DESC").
		Limit(pendingListLimit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// Decide applies a QS decision to pending evidence. The status update and
// the verification log entry commit in a single transaction: either the
// evidence carries the new status AND exactly one new log entry records it,
// or neither is written. The transition guard refuses decisions on evidence
// that is no longer pending.
func (s *verificationService) Decide(evidenceID string, action models.EvidenceStatus, comment, actedBy string) (*Decision, error) {
	if !action.IsDecision() {
		return nil, apperrors.ErrInvalidDecisionAction
	}
	if actedBy == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var decision *Decision
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var evidence models.Evidence
		if err := tx.Where("id = ?", evidenceID).First(&evidence).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEvidenceNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if !evidence.Status.CanTransitionTo(action) {
			return apperrors.ErrInvalidStatusTransition
		}

		actedAt := s.now()

		// Guarded update: the WHERE clause on status makes a concurrent
		// decision lose cleanly instead of overwriting.
		res := tx.Model(&models.Evidence{}).
			Where("id = ? AND status = ?", evidenceID, models.StatusPending).
			Update("status", action)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInvalidStatusTransition
		}

		entry := models.VerificationLog{
			EvidenceID: evidenceID,
			Action:     action,
			Comment:    comment,
			ActedBy:    actedBy,
			ActedAt:    actedAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		evidence.Status = action
		decision = &Decision{Evidence: evidence, Log: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}
