package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// DocumentType identifies the kind of KYC document.
type DocumentType string

const (
	DocTypeAadhaar       DocumentType = "aadhaar"
	DocTypePAN           DocumentType = "pan"
	DocTypeSalarySlip    DocumentType = "salary_slip"
	DocTypeForm16        DocumentType = "form16"
	DocTypeBankStatement DocumentType = "bank_statement"
	DocTypeAddressProof  DocumentType = "address_proof"
	DocTypeOther         DocumentType = "other"

	// DocTypeAuto is the upload hint asking the classifier to decide.
	DocTypeAuto DocumentType = "auto"
)

// KnownDocumentTypes lists every persistable document type.
var KnownDocumentTypes = map[DocumentType]bool{
	DocTypeAadhaar:       true,
	DocTypePAN:           true,
	DocTypeSalarySlip:    true,
	DocTypeForm16:        true,
	DocTypeBankStatement: true,
	DocTypeAddressProof:  true,
	DocTypeOther:         true,
}

// DocumentStatus is the processing lifecycle state of a document.
// The string spellings are part of the external contract.
type DocumentStatus string

const (
	DocStatusPending          DocumentStatus = "pending"
	DocStatusProcessing       DocumentStatus = "processing"
	DocStatusCompleted        DocumentStatus = "completed"
	DocStatusFailed           DocumentStatus = "failed"
	DocStatusVerified         DocumentStatus = "verified"
	DocStatusReuploadRequired DocumentStatus = "re-upload_required"
)

// VerificationStatus is the reviewer's decision on a document, independent of
// the processing lifecycle status.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleOfficer   UserRole = "officer"
	RoleAdmin     UserRole = "admin"
)

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// NotificationTypeDocument is the notification type emitted by document
// lifecycle transitions.
const NotificationTypeDocument = "document"
