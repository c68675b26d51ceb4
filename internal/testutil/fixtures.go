package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"siteproof/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates a project with a unique name.
func CreateTestProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:   fmt.Sprintf("Test Project %d", nextID()),
		Client: "Test Client Ltd",
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestWorkPackage creates a work package under the given project.
func CreateTestWorkPackage(t *testing.T, db *gorm.DB, projectID string) *models.WorkPackage {
	t.Helper()

	n := nextID()
	wp := &models.WorkPackage{
		ProjectID: projectID,
		ItemCode:  fmt.Sprintf("W%03d", n),
		Title:     fmt.Sprintf("Test Work Package %d", n),
	}
	if err := db.Create(wp).Error; err != nil {
		t.Fatalf("failed to create test work package: %v", err)
	}
	return wp
}

// CreateTestEvidence creates pending evidence for the given work package.
func CreateTestEvidence(t *testing.T, db *gorm.DB, projectID, workPackageID, submittedBy string) *models.Evidence {
	t.Helper()
	return CreateTestEvidenceWithStatus(t, db, projectID, workPackageID, submittedBy, models.StatusPending)
}

// CreateTestEvidenceWithStatus creates evidence in the given status.
func CreateTestEvidenceWithStatus(t *testing.T, db *gorm.DB, projectID, workPackageID, submittedBy string, status models.EvidenceStatus) *models.Evidence {
	t.Helper()

	n := nextID()
	evidence := &models.Evidence{
		ProjectID:     projectID,
		WorkPackageID: workPackageID,
		SubmittedBy:   submittedBy,
		Notes:         fmt.Sprintf("test evidence %d", n),
		PhotoPath:     fmt.Sprintf("%s/%s/%d-site%d.jpg", projectID, submittedBy, time.Now().UnixMilli(), n),
		TakenAt:       time.Now().Add(-time.Duration(n) * time.Minute),
		Status:        status,
	}
	if err := db.Create(evidence).Error; err != nil {
		t.Fatalf("failed to create test evidence: %v", err)
	}
	return evidence
}
