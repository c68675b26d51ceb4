package models

// WorkPackage is a billable unit of construction work within a project.
// Read-only from this API's perspective.
type WorkPackage struct {
	Base
	ProjectID string `gorm:"type:uuid;not null;index" json:"project_id"`
	ItemCode  string `gorm:"not null" json:"item_code"`
	Title     string `gorm:"not null" json:"title"`
}
