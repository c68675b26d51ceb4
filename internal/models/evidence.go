package models

import (
	"time"

	"gorm.io/gorm"
)

// EvidenceStatus is the lifecycle state of a piece of evidence.
type EvidenceStatus string

const (
	StatusPending  EvidenceStatus = "pending"
	StatusVerified EvidenceStatus = "verified"
	StatusQueried  EvidenceStatus = "queried"
	StatusRejected EvidenceStatus = "rejected"
)

// InitialStatus returns the status assigned to newly captured evidence.
func InitialStatus() EvidenceStatus {
	return StatusPending
}

// IsDecision reports whether s is a valid QS decision action.
func (s EvidenceStatus) IsDecision() bool {
	switch s {
	case StatusVerified, StatusQueried, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether evidence in state s may move to next.
// Pending is the only non-terminal state; verified, queried and rejected
// have no further transition path.
func (s EvidenceStatus) CanTransitionTo(next EvidenceStatus) bool {
	return s == StatusPending && next.IsDecision()
}

// ParseDecisionAction converts a raw action string into an EvidenceStatus,
// accepting only the three decision actions.
func ParseDecisionAction(raw string) (EvidenceStatus, bool) {
	s := EvidenceStatus(raw)
	if s.IsDecision() {
		return s, true
	}
	return "", false
}

// Evidence is a single photo-plus-metadata submission tied to one work
// package. Rows are created by capture, transition status through QS
// decisions, and are never deleted.
type Evidence struct {
	Base
	ProjectID     string         `gorm:"type:uuid;not null;index" json:"project_id"`
	WorkPackageID string         `gorm:"type:uuid;not null;index" json:"work_package_id"`
	SubmittedBy   string         `gorm:"type:uuid;not null" json:"submitted_by"`
	Notes         string         `json:"notes,omitempty"`
	PhotoPath     string         `json:"photo_path,omitempty"`
	TakenAt       time.Time      `gorm:"not null;index" json:"taken_at"`
	GPSLat        *float64       `json:"gps_lat,omitempty"`
	GPSLng        *float64       `json:"gps_lng,omitempty"`
	DeviceInfo    string         `json:"device_info,omitempty"`
	Status        EvidenceStatus `gorm:"not null;default:'pending';index" json:"status"`

	WorkPackage *WorkPackage `gorm:"foreignKey:WorkPackageID" json:"work_package,omitempty"`
}

// TableName overrides GORM's pluralization ("evidences").
func (Evidence) TableName() string { return "evidence" }

// HasGPS reports whether a complete coordinate pair is attached.
func (e *Evidence) HasGPS() bool {
	return e.GPSLat != nil && e.GPSLng != nil
}

// BeforeCreate enforces the coordinate-pair invariant: latitude and
// longitude are stored together or not at all.
func (e *Evidence) BeforeCreate(tx *gorm.DB) error {
	if err := e.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if (e.GPSLat == nil) != (e.GPSLng == nil) {
		return gorm.ErrInvalidData
	}
	return nil
}
