package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an applicant or back-office user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	FullName     string    `db:"full_name" json:"full_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileSnapshot is the read-only slice of a user profile consumed by the
// fraud evaluator.
type ProfileSnapshot struct {
	FullName string
	Username string
}

// Snapshot returns the immutable profile view used for fraud checks.
func (u *User) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{FullName: u.FullName, Username: u.Username}
}

// FileMeta stores metadata about an uploaded file.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Document represents an uploaded KYC document and its processing state.
type Document struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	UserID            uuid.UUID          `db:"user_id" json:"user_id"`
	FileID            uuid.UUID          `db:"file_id" json:"file_id"`
	DocumentType      DocumentType       `db:"document_type" json:"document_type"`
	ExtractedText     string             `db:"extracted_text" json:"extracted_text"`
	ParsedData        json.RawMessage    `db:"parsed_data" json:"parsed_data"`
	Confidence        int                `db:"confidence" json:"confidence"`
	Status            DocumentStatus     `db:"status" json:"status"`
	VerificationState VerificationStatus `db:"verification_status" json:"verification_status"`
	VerifiedBy        *uuid.UUID         `db:"verified_by" json:"verified_by"`
	VerificationNotes string             `db:"verification_notes" json:"verification_notes"`
	FraudFlag         bool               `db:"fraud_flag" json:"fraud_flag"`
	FraudNotes        string             `db:"fraud_notes" json:"fraud_notes"`
	ProcessingError   string             `db:"processing_error" json:"processing_error"`
	ProcessedAt       *time.Time         `db:"processed_at" json:"processed_at"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// OCRResult is the transient outcome of one processing attempt.
type OCRResult struct {
	Success      bool         `json:"success"`
	RawText      string       `json:"raw_text"`
	Confidence   int          `json:"confidence"`
	ParsedData   *ParsedData  `json:"parsed_data"`
	DetectedType DocumentType `json:"detected_type"`
	Error        string       `json:"error,omitempty"`
}

// FraudAssessment is the derived result of evaluating a document against the
// applicant profile.
type FraudAssessment struct {
	IsFraudulent bool   `json:"is_fraudulent"`
	Notes        string `json:"notes"`
}

// Notification is a user-facing message produced by lifecycle transitions.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
