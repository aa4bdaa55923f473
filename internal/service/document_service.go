package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"loandocs/internal/domain"
	"loandocs/internal/fraud"
	"loandocs/internal/port"
)

// CreateDocumentInput is the DTO for registering an uploaded document and
// triggering processing.
type CreateDocumentInput struct {
	UserID       uuid.UUID
	FileID       uuid.UUID
	DocumentType domain.DocumentType // DocTypeAuto lets the classifier decide
}

// UpdateVerificationInput is the DTO for a reviewer decision.
type UpdateVerificationInput struct {
	DocumentID uuid.UUID
	ReviewerID uuid.UUID
	Status     domain.VerificationStatus
	Notes      string
}

// RequestReuploadInput is the DTO for forcing an applicant to re-submit.
type RequestReuploadInput struct {
	DocumentID uuid.UUID
	ReviewerID uuid.UUID
	Reason     string
}

// DocumentService defines the document lifecycle contract.
type DocumentService interface {
	CreateAndProcess(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, docID, callerID uuid.UUID, role domain.UserRole) (*domain.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Document, int, error)
	UpdateVerification(ctx context.Context, input *UpdateVerificationInput) (*domain.Document, error)
	RequestReupload(ctx context.Context, input *RequestReuploadInput) (*domain.Document, error)
	Reprocess(ctx context.Context, docID, callerID uuid.UUID, role domain.UserRole) (*domain.Document, error)
	Delete(ctx context.Context, docID, callerID uuid.UUID, role domain.UserRole) error
	// ProcessDocument runs the recognition pipeline for a document already in
	// processing status. It is called by both the background goroutine and the
	// recovery worker.
	ProcessDocument(ctx context.Context, doc *domain.Document)
}

type documentService struct {
	docRepo       port.DocumentRepository
	fileRepo      port.FileMetaRepository
	userRepo      port.UserRepository
	processor     port.DocumentProcessor
	storage       port.ObjectStorage
	notifications NotificationService
	timeout       time.Duration
}

// NewDocumentService creates a new DocumentService implementation. timeout
// bounds one full processing attempt including the S3 download.
func NewDocumentService(
	docRepo port.DocumentRepository,
	fileRepo port.FileMetaRepository,
	userRepo port.UserRepository,
	processor port.DocumentProcessor,
	storage port.ObjectStorage,
	notifications NotificationService,
	timeout time.Duration,
) DocumentService {
	return &documentService{
		docRepo:       docRepo,
		fileRepo:      fileRepo,
		userRepo:      userRepo,
		processor:     processor,
		storage:       storage,
		notifications: notifications,
		timeout:       timeout,
	}
}

func (s *documentService) CreateAndProcess(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error) {
	docType := input.DocumentType
	if docType == "" {
		docType = domain.DocTypeAuto
	}
	if docType != domain.DocTypeAuto && !domain.KnownDocumentTypes[docType] {
		return nil, domain.ErrInvalidDocumentType
	}

	// Verify the file exists and belongs to the applicant
	file, err := s.fileRepo.GetByID(ctx, input.FileID)
	if err != nil {
		return nil, fmt.Errorf("looking up file: %w", err)
	}
	if file.UploadedBy != input.UserID {
		return nil, domain.ErrNotDocumentOwner
	}

	doc := &domain.Document{
		ID:                uuid.New(),
		UserID:            input.UserID,
		FileID:            input.FileID,
		DocumentType:      docType,
		ParsedData:        json.RawMessage("{}"),
		Status:            domain.DocStatusPending,
		VerificationState: domain.VerificationPending,
	}

	log.Printf("documentService.CreateAndProcess: creating document %s for file %s (user %s)",
		doc.ID, input.FileID, input.UserID)

	if err := s.docRepo.Create(ctx, doc); err != nil {
		// The uploaded file is now orphaned; remove it so a retry starts clean.
		if delErr := s.storage.Delete(ctx, file.S3Bucket, file.S3Key); delErr != nil {
			log.Printf("documentService.CreateAndProcess: failed to delete orphaned object %s/%s: %v",
				file.S3Bucket, file.S3Key, delErr)
		}
		if delErr := s.fileRepo.Delete(ctx, file.ID); delErr != nil {
			log.Printf("documentService.CreateAndProcess: failed to delete orphaned file record %s: %v",
				file.ID, delErr)
		}
		return nil, fmt.Errorf("creating document: %w", err)
	}

	// Copy before launching goroutine so the caller's value is independent of background work
	result := *doc

	go s.processInBackground(doc.ID)

	return &result, nil
}

func (s *documentService) processInBackground(docID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log.Printf("documentService.processInBackground: starting processing for document %s", docID)

	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		log.Printf("documentService.processInBackground: failed to get document %s: %v", docID, err)
		return
	}
	doc.Status = domain.DocStatusProcessing
	if err := s.docRepo.UpdateProcessingResult(ctx, doc); err != nil {
		log.Printf("documentService.processInBackground: failed to set processing status for %s: %v", docID, err)
		return
	}

	s.ProcessDocument(ctx, doc)
}

// ProcessDocument downloads the file, runs the recognition pipeline, persists
// the result, evaluates fraud heuristics, and notifies the applicant exactly
// once for the completed or failed transition.
func (s *documentService) ProcessDocument(ctx context.Context, doc *domain.Document) {
	file, err := s.fileRepo.GetByID(ctx, doc.FileID)
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("looking up file: %v", err))
		return
	}

	fileBytes, err := s.storage.Download(ctx, file.S3Bucket, file.S3Key)
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("downloading file: %v", err))
		return
	}

	result := s.processor.Process(ctx, port.ProcessInput{
		FileBytes:   fileBytes,
		ContentType: file.ContentType,
		TypeHint:    doc.DocumentType,
	}, func(percent int) {
		log.Printf("documentService.ProcessDocument: document %s recognition %d%%", doc.ID, percent)
	})

	if !result.Success {
		s.failProcessing(ctx, doc, result.Error)
		return
	}

	parsedJSON, err := json.Marshal(result.ParsedData)
	if err != nil {
		s.failProcessing(ctx, doc, fmt.Sprintf("encoding parsed data: %v", err))
		return
	}

	now := time.Now().UTC()
	doc.DocumentType = result.DetectedType
	doc.ExtractedText = result.RawText
	doc.ParsedData = parsedJSON
	doc.Confidence = result.Confidence
	doc.Status = domain.DocStatusCompleted
	doc.ProcessingError = ""
	doc.ProcessedAt = &now

	if err := s.docRepo.UpdateProcessingResult(ctx, doc); err != nil {
		log.Printf("documentService.ProcessDocument: failed to save results for %s: %v", doc.ID, err)
		return
	}

	log.Printf("documentService.ProcessDocument: document %s processed as %s (confidence %d)",
		doc.ID, doc.DocumentType, doc.Confidence)

	// Fraud evaluation runs strictly after the completed result is persisted
	// so the stored status never regresses on evaluator failure.
	s.evaluateFraud(ctx, doc, result.ParsedData)

	s.notifications.Notify(ctx, doc.UserID, "Document processed",
		fmt.Sprintf("Your %s document has been processed and is awaiting verification.", doc.DocumentType))
}

func (s *documentService) evaluateFraud(ctx context.Context, doc *domain.Document, parsed *domain.ParsedData) {
	user, err := s.userRepo.GetByID(ctx, doc.UserID)
	if err != nil {
		log.Printf("documentService.evaluateFraud: failed to load profile for %s: %v", doc.UserID, err)
		return
	}

	assessment := fraud.Evaluate(parsed, user.Snapshot())
	doc.FraudFlag = assessment.IsFraudulent
	doc.FraudNotes = assessment.Notes

	if err := s.docRepo.UpdateFraudAssessment(ctx, doc); err != nil {
		log.Printf("documentService.evaluateFraud: failed to save assessment for %s: %v", doc.ID, err)
	}
}

func (s *documentService) failProcessing(ctx context.Context, doc *domain.Document, errMsg string) {
	log.Printf("documentService.failProcessing: document %s failed: %s", doc.ID, errMsg)
	doc.Status = domain.DocStatusFailed
	doc.ProcessingError = errMsg
	if err := s.docRepo.UpdateProcessingResult(ctx, doc); err != nil {
		log.Printf("documentService.failProcessing: failed to update status for %s: %v", doc.ID, err)
		return
	}
	s.notifications.Notify(ctx, doc.UserID, "Document processing failed",
		"We could not process your document. Please try uploading a clearer copy.")
}

func (s *documentService) GetByID(ctx context.Context, docID, callerID uuid.UUID, role domain.UserRole) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleApplicant && doc.UserID != callerID {
		return nil, domain.ErrNotDocumentOwner
	}
	return doc, nil
}

func (s *documentService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *documentService) ListAll(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListAll(ctx, offset, limit)
}

// UpdateVerification records a reviewer decision. Only verification fields
// change; the processing lifecycle status is left untouched.
func (s *documentService) UpdateVerification(ctx context.Context, input *UpdateVerificationInput) (*domain.Document, error) {
	if input.Status != domain.VerificationVerified && input.Status != domain.VerificationRejected {
		return nil, domain.ErrInvalidVerification
	}

	doc, err := s.docRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.DocStatusCompleted {
		return nil, domain.ErrDocumentNotProcessed
	}

	doc.VerificationState = input.Status
	doc.VerifiedBy = &input.ReviewerID
	doc.VerificationNotes = input.Notes

	if err := s.docRepo.UpdateVerification(ctx, doc); err != nil {
		return nil, fmt.Errorf("updating verification: %w", err)
	}

	if input.Status == domain.VerificationVerified {
		s.notifications.Notify(ctx, doc.UserID, "Document verified",
			fmt.Sprintf("Your %s document has been verified.", doc.DocumentType))
	} else {
		s.notifications.Notify(ctx, doc.UserID, "Document rejected",
			fmt.Sprintf("Your %s document was rejected. %s", doc.DocumentType, input.Notes))
	}

	return doc, nil
}

// RequestReupload forces both the lifecycle status and the verification status:
// the document is no longer usable regardless of its previous state.
func (s *documentService) RequestReupload(ctx context.Context, input *RequestReuploadInput) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	doc.Status = domain.DocStatusReuploadRequired
	doc.VerificationState = domain.VerificationRejected
	doc.VerifiedBy = &input.ReviewerID
	doc.VerificationNotes = input.Reason

	if err := s.docRepo.UpdateVerification(ctx, doc); err != nil {
		return nil, fmt.Errorf("requesting re-upload: %w", err)
	}

	s.notifications.Notify(ctx, doc.UserID, "Re-upload required",
		fmt.Sprintf("Please upload your %s document again. %s", doc.DocumentType, input.Reason))

	return doc, nil
}

// Reprocess resets a failed document to pending and runs the pipeline again.
func (s *documentService) Reprocess(ctx context.Context, docID, callerID uuid.UUID, role domain.UserRole) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleApplicant && doc.UserID != callerID {
		return nil, domain.ErrNotDocumentOwner
	}

	if _, err := s.fileRepo.GetByID(ctx, doc.FileID); err != nil {
		return nil, fmt.Errorf("looking up file for reprocess: %w", err)
	}

	doc.Status = domain.DocStatusPending
	doc.ProcessingError = ""
	doc.ExtractedText = ""
	doc.ParsedData = json.RawMessage("{}")
	doc.Confidence = 0
	doc.ProcessedAt = nil
	if err := s.docRepo.UpdateProcessingResult(ctx, doc); err != nil {
		return nil, fmt.Errorf("resetting document for reprocess: %w", err)
	}

	log.Printf("documentService.Reprocess: reprocessing document %s", docID)

	result := *doc

	go s.processInBackground(doc.ID)

	return &result, nil
}

func (s *documentService) Delete(ctx context.Context, docID, callerID uuid.UUID, role domain.UserRole) error {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if role == domain.RoleApplicant && doc.UserID != callerID {
		return domain.ErrNotDocumentOwner
	}

	if err := s.docRepo.Delete(ctx, docID); err != nil {
		return err
	}

	// Best-effort cleanup of the backing file and S3 object.
	file, err := s.fileRepo.GetByID(ctx, doc.FileID)
	if err != nil {
		log.Printf("documentService.Delete: failed to look up file %s for cleanup: %v", doc.FileID, err)
		return nil
	}
	if err := s.storage.Delete(ctx, file.S3Bucket, file.S3Key); err != nil {
		log.Printf("documentService.Delete: failed to delete S3 object %s/%s: %v", file.S3Bucket, file.S3Key, err)
	}
	if err := s.fileRepo.Delete(ctx, doc.FileID); err != nil {
		log.Printf("documentService.Delete: failed to delete file record %s: %v", doc.FileID, err)
	}
	return nil
}
