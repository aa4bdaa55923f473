package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user is inactive")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNotDocumentOwner     = errors.New("document belongs to another user")
	ErrDocumentNotProcessed = errors.New("document has not finished processing")
	ErrInvalidDocumentType  = errors.New("invalid document type")
	ErrInvalidVerification  = errors.New("invalid verification status")
	ErrNotificationNotFound = errors.New("notification not found")
)
