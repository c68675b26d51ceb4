// Package errors provides structured error types for the SiteProof API.
// Service-layer errors should use AppError so handlers produce consistent
// responses and never leak internal details to clients.
package errors

import "net/http"

// AppError is an application error with a stable code, a client-safe
// message, an HTTP status, and an optional wrapped internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its wrapped cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom client-facing message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized        = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials  = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidRefreshToken = &AppError{Code: "INVALID_REFRESH_TOKEN", Message: "Invalid or expired refresh token", StatusCode: http.StatusUnauthorized}
	ErrForbidden           = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Project errors.
var (
	ErrProjectNotFound     = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
	ErrWorkPackageNotFound = &AppError{Code: "WORK_PACKAGE_NOT_FOUND", Message: "Work package not found in this project", StatusCode: http.StatusNotFound}
)

// Evidence capture errors.
var (
	ErrEvidenceNotFound = &AppError{Code: "EVIDENCE_NOT_FOUND", Message: "Evidence not found", StatusCode: http.StatusNotFound}
	ErrMissingPhoto     = &AppError{Code: "MISSING_PHOTO", Message: "A photo file is required", StatusCode: http.StatusBadRequest}
	ErrGPSRequired      = &AppError{Code: "GPS_REQUIRED", Message: "GPS is compulsory for this submission; both latitude and longitude are required", StatusCode: http.StatusBadRequest}
	ErrGPSPairIncomplete = &AppError{Code: "GPS_PAIR_INCOMPLETE", Message: "Latitude and longitude must be provided together", StatusCode: http.StatusBadRequest}
	ErrPhotoUploadFailed = &AppError{Code: "PHOTO_UPLOAD_FAILED", Message: "Photo upload failed; evidence was not recorded", StatusCode: http.StatusBadGateway}

	// ErrEvidencePartialWrite signals that the photo blob was stored but the
	// evidence row could not be written AND compensation (deleting the blob)
	// also failed. The orphaned object key is included in the message so an
	// operator can clean it up.
	ErrEvidencePartialWrite = &AppError{Code: "EVIDENCE_PARTIAL_WRITE", Message: "Evidence submission partially failed", StatusCode: http.StatusInternalServerError}
)

// Verification errors.
var (
	ErrInvalidDecisionAction   = &AppError{Code: "INVALID_DECISION_ACTION", Message: "Decision action must be one of: verified, queried, rejected", StatusCode: http.StatusBadRequest}
	ErrInvalidStatusTransition = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "Evidence is no longer pending and cannot be decided again", StatusCode: http.StatusConflict}
)
