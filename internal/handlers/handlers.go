// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, String, Status)
// - Middleware data (c.Get/c.Set)
//
// Handlers are plain functions grouped into a struct (Handler) that holds
// shared dependencies.
package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/index"
	"github.com/ltnqls11/pdf-study-api/internal/models"
	"github.com/ltnqls11/pdf-study-api/internal/services/generator"
	pdfservice "github.com/ltnqls11/pdf-study-api/internal/services/pdf"
	"github.com/ltnqls11/pdf-study-api/internal/store"
	"github.com/ltnqls11/pdf-study-api/internal/study"
)

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Instead of global
// variables or service locators, we pass dependencies explicitly.
// This makes testing easy — just create a Handler with mock dependencies.
type Handler struct {
	Store     *store.Store
	Generator *generator.Service
	Index     *index.Manager
	Sessions  *study.Sessions
	JWTSecret string
	PDFDir    string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(st *store.Store, gen *generator.Service, idx *index.Manager, sessions *study.Sessions, jwtSecret, pdfDir string) *Handler {
	return &Handler{
		Store:     st,
		Generator: gen,
		Index:     idx,
		Sessions:  sessions,
		JWTSecret: jwtSecret,
		PDFDir:    pdfDir,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	// Check flat-file store writability
	storeStatus := "healthy"
	if err := h.Store.HealthCheck(); err != nil {
		storeStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Version:   "1.0.0",
		Store:     storeStatus,
		Documents: h.Index.Stats().DocumentCount,
	})
}

// loadDocumentText resolves a PDF by name under the configured PDF
// directory and extracts its text. The name is flattened to its base so a
// crafted path cannot escape the directory.
func (h *Handler) loadDocumentText(name string) (*pdfservice.ExtractionResult, error) {
	name = filepath.Base(name)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return pdfservice.ExtractFile(filepath.Join(h.PDFDir, name))
}

// generationFailed writes the standard error for a generator failure.
// The message is the user-facing Korean label for the content kind,
// e.g. "퀴즈 생성 실패".
func generationFailed(c *gin.Context, kind string, err error) {
	c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "generation_failed",
		Message: fmt.Sprintf("%s 생성 실패: %v", kind, err),
		Code:    http.StatusBadGateway,
	})
}

// documentNotFound writes the standard error for a missing or unreadable
// source document.
func documentNotFound(c *gin.Context, name string, err error) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "document_not_found",
		Message: fmt.Sprintf("문서를 읽을 수 없습니다 (%s): %v", name, err),
		Code:    http.StatusNotFound,
	})
}

// planLimitExceeded writes the standard error for a plan quota rejection.
// The reason comes from the store and is already user-facing.
func planLimitExceeded(c *gin.Context, reason string) {
	c.JSON(http.StatusForbidden, models.ErrorResponse{
		Error:   "plan_limit_exceeded",
		Message: reason,
		Code:    http.StatusForbidden,
	})
}
