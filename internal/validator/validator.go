// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("decision_action", validateDecisionAction)
		_ = v.RegisterValidation("evidence_status", validateEvidenceStatus)
	}
}

func validateDecisionAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "verified", "queried", "rejected":
		return true
	}
	return false
}

func validateEvidenceStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "verified", "queried", "rejected":
		return true
	}
	return false
}
