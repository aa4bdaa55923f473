package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loandocs/internal/export"
	"loandocs/internal/service"
)

// registerPageSize caps how many documents one register export pulls per page.
const registerPageSize = 500

// ReportHandler handles back-office export endpoints.
type ReportHandler struct {
	documentService service.DocumentService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(documentService service.DocumentService) *ReportHandler {
	return &ReportHandler{documentService: documentService}
}

// VerificationRegister handles GET /api/v1/reports/verification-register and
// streams the full document set as an XLSX workbook.
func (h *ReportHandler) VerificationRegister(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	docs, total, err := h.documentService.ListAll(c.Request.Context(), 0, registerPageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	for len(docs) < total {
		page, _, err := h.documentService.ListAll(c.Request.Context(), len(docs), registerPageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		if len(page) == 0 {
			break
		}
		docs = append(docs, page...)
	}

	buf, err := export.VerificationRegister(docs)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("verification-register-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf)
}
