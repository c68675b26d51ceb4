package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "siteproof/internal/errors"
	"siteproof/internal/logger"
	"siteproof/internal/models"
	"siteproof/internal/storage"
)

// evidenceService handles evidence capture and the audit-pack read side.
type evidenceService struct {
	db      *gorm.DB
	photos  storage.PhotoStore
	signTTL time.Duration
	now     clock
}

// NewEvidenceService creates a new EvidenceServicer. signTTL bounds the
// lifetime of photo read URLs issued by GetDetail.
func NewEvidenceService(db *gorm.DB, photos storage.PhotoStore, signTTL time.Duration) EvidenceServicer {
	return &evidenceService{
		db:      db,
		photos:  photos,
		signTTL: signTTL,
		now:     time.Now,
	}
}

// Capture runs the submission workflow: local validation first (no storage
// or database access on failure), then work-package lookup, photo upload,
// and evidence insert. Upload and insert are a two-phase write: if the
// insert fails, the uploaded blob is deleted so no orphan remains; if that
// compensation also fails, a partial-write error naming the orphaned key is
// returned instead of silently leaving inconsistent state.
func (s *evidenceService) Capture(ctx context.Context, req CaptureRequest) (*models.Evidence, error) {
	// Form-level validation, strictly before any network or database call.
	if req.SubmittedBy == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if req.WorkPackageID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a work package must be selected")
	}
	if req.Photo == nil || req.FileName == "" {
		return nil, apperrors.ErrMissingPhoto
	}
	if (req.GPSLat == nil) != (req.GPSLng == nil) {
		return nil, apperrors.ErrGPSPairIncomplete
	}
	hasGPS := req.GPSLat != nil && req.GPSLng != nil
	if req.GPSRequired && !hasGPS {
		return nil, apperrors.ErrGPSRequired
	}

	// The selected work package must exist within the target project.
	var wp models.WorkPackage
	err := s.db.Where("id = ? AND project_id = ?", req.WorkPackageID, req.ProjectID).First(&wp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkPackageNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()
	key := storage.ObjectKey(req.ProjectID, req.SubmittedBy, req.FileName, now)

	// Phase one: upload the blob. On failure nothing has been written.
	if err := s.photos.Put(ctx, key, req.ContentType, req.Photo); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPhotoUploadFailed, err)
	}

	// Phase two: insert the evidence row referencing the uploaded path.
	evidence := &models.Evidence{
		ProjectID:     req.ProjectID,
		WorkPackageID: req.WorkPackageID,
		SubmittedBy:   req.SubmittedBy,
		Notes:         req.Notes,
		PhotoPath:     key,
		TakenAt:       now,
		GPSLat:        req.GPSLat,
		GPSLng:        req.GPSLng,
		DeviceInfo:    req.DeviceInfo,
		Status:        models.InitialStatus(),
	}

	if insertErr := s.db.Create(evidence).Error; insertErr != nil {
		// Compensate: remove the blob so it does not orphan.
		if delErr := s.photos.Delete(ctx, key); delErr != nil {
			logger.Get().Errorw("evidence partial write: insert failed and blob cleanup failed",
				"object_key", key,
				"insert_error", insertErr.Error(),
				"delete_error", delErr.Error(),
			)
			return nil, apperrors.WithMessage(apperrors.ErrEvidencePartialWrite,
				fmt.Sprintf("evidence record was not written and the uploaded photo %q could not be removed", key))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, insertErr)
	}

	return evidence, nil
}

// GetDetail resolves one evidence row with its work package, the full
// decision history newest-first, and a signed photo URL when a photo exists.
func (s *evidenceService) GetDetail(ctx context.Context, evidenceID string) (*EvidenceDetail, error) {
	var evidence models.Evidence
	if err := s.db.Where("id = ?", evidenceID).First(&evidence).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEvidenceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var project models.Project
	if err := s.db.Where("id = ?", evidence.ProjectID).First(&project).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var wp models.WorkPackage
	if err := s.db.Where("id = ?", evidence.WorkPackageID).First(&wp).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.VerificationLog
	if err := s.db.Where("evidence_id = ?", evidenceID).Order("acted_at DESC").Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	detail := &EvidenceDetail{
		Evidence:    evidence,
		Project:     project,
		WorkPackage: wp,
		Logs:        logs,
	}

	if evidence.PhotoPath != "" {
		url, err := s.photos.SignedURL(ctx, evidence.PhotoPath, s.signTTL)
		if err != nil {
			// A missing blob should not hide the rest of the pack.
			logger.Get().Warnw("failed to sign photo URL",
				"evidence_id", evidenceID,
				"object_key", evidence.PhotoPath,
				"error", err.Error(),
			)
		} else {
			detail.PhotoURL = url
		}
	}

	return detail, nil
}
