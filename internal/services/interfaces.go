package services

import (
	"context"
	"io"
	"time"

	"siteproof/internal/models"
	"siteproof/internal/pagination"
)

// UserServicer defines the contract for user and session business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(userID string) error
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	ClearRefreshTokenHash(userID string) error
}

// ProjectServicer defines read access to projects and their work packages.
// Both are managed outside this system and are never mutated here.
type ProjectServicer interface {
	ListProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	GetProjectByID(id string) (*models.Project, error)
	ListWorkPackages(projectID string) ([]models.WorkPackage, error)
}

// CaptureRequest carries a field submission into the evidence service.
// Photo holds the blob; the GPS pair is attached both-or-neither, and
// GPSRequired enforces the submitter's "GPS compulsory" toggle before any
// storage or database call is made.
type CaptureRequest struct {
	ProjectID     string
	WorkPackageID string
	SubmittedBy   string
	Notes         string
	GPSLat        *float64
	GPSLng        *float64
	GPSRequired   bool
	FileName      string
	ContentType   string
	Photo         io.Reader
	DeviceInfo    string
}

// EvidenceDetail is the audit-pack view of one piece of evidence: the row
// itself, its work package, the full decision history newest-first, and a
// time-limited read URL for the photo when one exists.
type EvidenceDetail struct {
	Evidence    models.Evidence          `json:"evidence"`
	Project     models.Project           `json:"project"`
	WorkPackage models.WorkPackage       `json:"work_package"`
	Logs        []models.VerificationLog `json:"logs"`
	PhotoURL    string                   `json:"photo_url,omitempty"`
}

// EvidenceServicer defines the capture and read-side of the evidence workflow.
type EvidenceServicer interface {
	Capture(ctx context.Context, req CaptureRequest) (*models.Evidence, error)
	GetDetail(ctx context.Context, evidenceID string) (*EvidenceDetail, error)
}

// Decision is the committed outcome of one QS decision: the updated
// evidence and the single log entry written with it.
type Decision struct {
	Evidence models.Evidence        `json:"evidence"`
	Log      models.VerificationLog `json:"log"`
}

// VerificationServicer defines the QS review workflow.
type VerificationServicer interface {
	ListPending(projectID string) ([]models.Evidence, error)
	Decide(evidenceID string, action models.EvidenceStatus, comment, actedBy string) (*Decision, error)
}

// AuditServicer defines the contract for operational audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

// pendingListLimit caps the verification dashboard query.
const pendingListLimit = 50

// clock is overridable in tests.
type clock func() time.Time
