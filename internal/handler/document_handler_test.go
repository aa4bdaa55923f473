package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loandocs/internal/domain"
	"loandocs/internal/handler"
	"loandocs/internal/middleware"
	"loandocs/internal/service"
	"loandocs/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// injectAuth seeds the context keys normally set by the auth middleware.
func injectAuth(userID uuid.UUID, role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyRole, string(role))
		c.Next()
	}
}

func setupDocumentRouter(userID uuid.UUID, role domain.UserRole) (*gin.Engine, *mocks.MockDocumentService) {
	docService := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docService)

	r := gin.New()
	docs := r.Group("/api/v1/documents", injectAuth(userID, role))
	{
		docs.POST("", h.Create)
		docs.GET("", h.List)
		docs.GET("/:id", h.GetByID)
		docs.PUT("/:id/verify", h.Verify)
		docs.POST("/:id/reupload", h.RequestReupload)
		docs.POST("/:id/reprocess", h.Reprocess)
		docs.DELETE("/:id", h.Delete)
	}
	return r, docService
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDocumentCreate(t *testing.T) {
	userID := uuid.New()
	r, docService := setupDocumentRouter(userID, domain.RoleApplicant)

	fileID := uuid.New()
	created := &domain.Document{
		ID:     uuid.New(),
		UserID: userID,
		FileID: fileID,
		Status: domain.DocStatusPending,
	}
	docService.On("CreateAndProcess", mock.Anything, mock.MatchedBy(func(in *service.CreateDocumentInput) bool {
		return in.UserID == userID && in.FileID == fileID && in.DocumentType == domain.DocTypeAadhaar
	})).Return(created, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents", gin.H{
		"file_id":       fileID,
		"document_type": "aadhaar",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	docService.AssertExpectations(t)
}

func TestDocumentCreate_MissingFileID(t *testing.T) {
	r, docService := setupDocumentRouter(uuid.New(), domain.RoleApplicant)

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents", gin.H{"document_type": "pan"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	docService.AssertNotCalled(t, "CreateAndProcess", mock.Anything, mock.Anything)
}

func TestDocumentCreate_InvalidType(t *testing.T) {
	userID := uuid.New()
	r, docService := setupDocumentRouter(userID, domain.RoleApplicant)

	docService.On("CreateAndProcess", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidDocumentType)

	w := doJSON(t, r, http.MethodPost, "/api/v1/documents", gin.H{
		"file_id":       uuid.New(),
		"document_type": "passport",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_DOCUMENT_TYPE", resp.Error.Code)
}

func TestDocumentList_ApplicantScopedToOwn(t *testing.T) {
	userID := uuid.New()
	r, docService := setupDocumentRouter(userID, domain.RoleApplicant)

	docService.On("ListByUser", mock.Anything, userID, 0, 20).
		Return([]domain.Document{{ID: uuid.New(), UserID: userID}}, 1, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/documents", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	docService.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentList_OfficerSeesAll(t *testing.T) {
	r, docService := setupDocumentRouter(uuid.New(), domain.RoleOfficer)

	docService.On("ListAll", mock.Anything, 40, 10).Return([]domain.Document{}, 120, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/documents?offset=40&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 120, resp.Meta.Total)
	assert.Equal(t, 40, resp.Meta.Offset)
	assert.Equal(t, 10, resp.Meta.Limit)
}

func TestDocumentList_PaginationCaps(t *testing.T) {
	r, docService := setupDocumentRouter(uuid.New(), domain.RoleOfficer)

	// Out-of-range limit falls back to the default.
	docService.On("ListAll", mock.Anything, 0, 20).Return([]domain.Document{}, 0, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/documents?limit=500&offset=-3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	docService.AssertExpectations(t)
}

func TestDocumentGetByID_NotOwner(t *testing.T) {
	r, docService := setupDocumentRouter(uuid.New(), domain.RoleApplicant)
	docID := uuid.New()

	docService.On("GetByID", mock.Anything, docID, mock.Anything, domain.RoleApplicant).
		Return(nil, domain.ErrNotDocumentOwner)

	w := doJSON(t, r, http.MethodGet, "/api/v1/documents/"+docID.String(), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NOT_DOCUMENT_OWNER", resp.Error.Code)
}

func TestDocumentGetByID_BadUUID(t *testing.T) {
	r, _ := setupDocumentRouter(uuid.New(), domain.RoleApplicant)

	w := doJSON(t, r, http.MethodGet, "/api/v1/documents/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
}

func TestDocumentVerify(t *testing.T) {
	reviewerID := uuid.New()
	r, docService := setupDocumentRouter(reviewerID, domain.RoleOfficer)
	docID := uuid.New()

	verified := &domain.Document{
		ID:                docID,
		Status:            domain.DocStatusCompleted,
		VerificationState: domain.VerificationVerified,
	}
	docService.On("UpdateVerification", mock.Anything, mock.MatchedBy(func(in *service.UpdateVerificationInput) bool {
		return in.DocumentID == docID && in.ReviewerID == reviewerID &&
			in.Status == domain.VerificationVerified && in.Notes == "checked against register"
	})).Return(verified, nil)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/documents/%s/verify", docID), gin.H{
		"status": "verified",
		"notes":  "checked against register",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	docService.AssertExpectations(t)
}

func TestDocumentVerify_NotProcessed(t *testing.T) {
	r, docService := setupDocumentRouter(uuid.New(), domain.RoleOfficer)
	docID := uuid.New()

	docService.On("UpdateVerification", mock.Anything, mock.Anything).
		Return(nil, domain.ErrDocumentNotProcessed)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/documents/%s/verify", docID), gin.H{
		"status": "verified",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "DOCUMENT_NOT_PROCESSED", resp.Error.Code)
}

func TestDocumentRequestReupload(t *testing.T) {
	reviewerID := uuid.New()
	r, docService := setupDocumentRouter(reviewerID, domain.RoleOfficer)
	docID := uuid.New()

	updated := &domain.Document{
		ID:                docID,
		Status:            domain.DocStatusReuploadRequired,
		VerificationState: domain.VerificationRejected,
	}
	docService.On("RequestReupload", mock.Anything, mock.MatchedBy(func(in *service.RequestReuploadInput) bool {
		return in.DocumentID == docID && in.ReviewerID == reviewerID && in.Reason == "Image is blurred"
	})).Return(updated, nil)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/reupload", docID), gin.H{
		"reason": "Image is blurred",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestDocumentDelete(t *testing.T) {
	userID := uuid.New()
	r, docService := setupDocumentRouter(userID, domain.RoleApplicant)
	docID := uuid.New()

	docService.On("Delete", mock.Anything, docID, userID, domain.RoleApplicant).Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/documents/"+docID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	docService.AssertExpectations(t)
}
