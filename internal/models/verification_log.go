package models

import "time"

// VerificationLog is the append-only audit trail of QS decisions against a
// piece of evidence. Rows are written exactly once, in the same transaction
// as the status update they record, and are never updated or deleted.
type VerificationLog struct {
	Base
	EvidenceID string         `gorm:"type:uuid;not null;index" json:"evidence_id"`
	Action     EvidenceStatus `gorm:"not null" json:"action"`
	Comment    string         `json:"comment,omitempty"`
	ActedBy    string         `gorm:"type:uuid;not null" json:"acted_by"`
	ActedAt    time.Time      `gorm:"not null;index" json:"acted_at"`
}
