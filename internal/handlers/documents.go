// documents.go handles the PDF library HTTP endpoints.
//
// GET  /api/v1/documents — list PDFs in the library
// POST /api/v1/documents/upload — upload a PDF and extract its text
// POST /api/v1/documents/select — choose the working set for multi-doc features
// GET  /api/v1/documents/selected — current working set
// GET  /api/v1/documents/:name/summary — one-line summary of a document
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/models"
	pdfservice "github.com/ltnqls11/pdf-study-api/internal/services/pdf"
	"github.com/ltnqls11/pdf-study-api/internal/store"
)

// maxPDFSize is the max upload size for PDF files (50MB).
const maxPDFSize = 50 << 20 // 50MB

// ListDocuments returns the PDF filenames available in the library.
// GET /api/v1/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	names, err := pdfservice.ListPDFs(h.PDFDir)
	if err != nil {
		log.Printf("❌ Failed to list PDFs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list PDF documents",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": names,
		"count":     len(names),
	})
}

// UploadPDF stores an uploaded PDF in the library and extracts its text.
// POST /api/v1/documents/upload
//
// Accepts multipart file upload with field name "file".
// Only .pdf files are accepted. Processing is synchronous.
func (h *Handler) UploadPDF(c *gin.Context) {
	user := middleware.GetUser(c)

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeaturePDFUpload)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	// Limit request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "No PDF file provided. Upload a file with the field name 'file'. Max size: 50MB.",
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	// Validate file extension
	filename := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext),
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Go Pattern: io.ReadAll reads the entire reader into a byte slice.
	// For PDFs up to 50MB this is fine — the pdf library needs random access.
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Validate PDF magic bytes
	if !pdfservice.ValidatePDF(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_pdf",
			Message: "The uploaded file does not appear to be a valid PDF",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Extract text before persisting so broken PDFs never enter the library
	result, err := pdfservice.Extract(data)
	if err != nil {
		log.Printf("❌ PDF extraction failed for %s: %v", filename, err)
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "extraction_failed",
			Message: err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
		return
	}

	if err := os.MkdirAll(h.PDFDir, 0o755); err != nil {
		log.Printf("❌ Failed to create PDF directory: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to store PDF",
			Code:    http.StatusInternalServerError,
		})
		return
	}
	if err := os.WriteFile(filepath.Join(h.PDFDir, filename), data, 0o644); err != nil {
		log.Printf("❌ Failed to save PDF %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to store PDF",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if err := h.Store.RecordUsage(user.Username, store.FeaturePDFUpload); err != nil {
		log.Printf("⚠️ Failed to record usage for %s: %v", user.Username, err)
	}
	err = h.Store.RecordActivity(user.Username, store.ActivityPDFProcessed, map[string]any{
		"document":   filename,
		"page_count": result.PageCount,
		"word_count": result.WordCount,
	})
	if err != nil {
		log.Printf("⚠️ Failed to record activity for %s: %v", user.Username, err)
	}

	log.Printf("📄 Uploaded %s: %d pages, %d words", filename, result.PageCount, result.WordCount)
	c.JSON(http.StatusCreated, gin.H{
		"document":   filename,
		"page_count": result.PageCount,
		"word_count": result.WordCount,
	})
}

// SelectDocuments sets the user's working set for multi-document features.
// POST /api/v1/documents/select
func (h *Handler) SelectDocuments(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.SelectDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Provide 1-10 document names",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Reject names not present in the library
	available, err := pdfservice.ListPDFs(h.PDFDir)
	if err != nil {
		log.Printf("❌ Failed to list PDFs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list PDF documents",
			Code:    http.StatusInternalServerError,
		})
		return
	}
	known := make(map[string]bool, len(available))
	for _, name := range available {
		known[name] = true
	}
	for _, name := range req.Documents {
		if !known[filepath.Base(name)] {
			documentNotFound(c, name, os.ErrNotExist)
			return
		}
	}

	if err := h.Store.SaveSelectedDocuments(user.Username, req.Documents); err != nil {
		log.Printf("❌ Failed to save document selection for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to save document selection",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected_documents": req.Documents,
		"count":              len(req.Documents),
	})
}

// GetSelectedDocuments returns the user's current working set.
// GET /api/v1/documents/selected
func (h *Handler) GetSelectedDocuments(c *gin.Context) {
	user := middleware.GetUser(c)

	selected, err := h.Store.LoadSelectedDocuments(user.Username)
	if err != nil {
		log.Printf("❌ Failed to load document selection for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to load document selection",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected_documents": selected,
		"count":              len(selected),
	})
}

// DocumentSummary generates a short description of one document.
// GET /api/v1/documents/:name/summary
func (h *Handler) DocumentSummary(c *gin.Context) {
	user := middleware.GetUser(c)
	name := c.Param("name")

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureAPICall)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	result, err := h.loadDocumentText(name)
	if err != nil {
		documentNotFound(c, name, err)
		return
	}

	summary, err := h.Generator.DocumentSummary(c.Request.Context(), name, result.Text)
	if err != nil {
		generationFailed(c, "문서 요약", err)
		return
	}

	if err := h.Store.RecordUsage(user.Username, store.FeatureAPICall); err != nil {
		log.Printf("⚠️ Failed to record usage for %s: %v", user.Username, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"document": name,
		"summary":  summary,
	})
}
