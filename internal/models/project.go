package models

// Project is a tenant-scoped container for work packages and evidence.
// Projects are managed outside this API and are read-only here.
type Project struct {
	Base
	Name   string `gorm:"not null" json:"name"`
	Client string `json:"client,omitempty"`

	WorkPackages []WorkPackage `gorm:"foreignKey:ProjectID" json:"work_packages,omitempty"`
}
