// search.go handles the multi-document semantic search endpoints.
// Multi-document features are premium-gated.
//
// POST /api/v1/search/index — index the user's selected documents
// POST /api/v1/search — search across indexed documents
// GET  /api/v1/search/stats — index statistics
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/models"
	"github.com/ltnqls11/pdf-study-api/internal/store"
)

// IndexDocuments adds the user's selected documents to the vector index.
// Documents already indexed are re-indexed. A document whose text cannot be
// extracted is reported as skipped rather than failing the whole request.
// POST /api/v1/search/index
func (h *Handler) IndexDocuments(c *gin.Context) {
	user := middleware.GetUser(c)

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureMultiDocument)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

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
	if len(selected) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no_documents_selected",
			Message: "Select documents before indexing them",
			Code:    http.StatusBadRequest,
		})
		return
	}

	indexed := []string{}
	skipped := []string{}
	for _, name := range selected {
		result, err := h.loadDocumentText(name)
		if err != nil {
			log.Printf("⚠️ Skipping %s: %v", name, err)
			skipped = append(skipped, name)
			continue
		}
		ok, err := h.Index.AddDocument(c.Request.Context(), name, result.Text)
		if err != nil {
			log.Printf("⚠️ Failed to index %s: %v", name, err)
			skipped = append(skipped, name)
			continue
		}
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		indexed = append(indexed, name)
	}

	c.JSON(http.StatusOK, gin.H{
		"indexed": indexed,
		"skipped": skipped,
	})
}

// Search queries the vector index across all indexed documents.
// POST /api/v1/search
func (h *Handler) Search(c *gin.Context) {
	user := middleware.GetUser(c)

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureMultiDocument)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Query is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	results, err := h.Index.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		log.Printf("❌ Search failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "search_failed",
			Message: "검색 실패: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"results": results,
		"count":   len(results),
	})
}

// IndexStats returns the state of the vector index. The index is shared
// process-wide, so the same premium gate as the other search endpoints
// applies.
// GET /api/v1/search/stats
func (h *Handler) IndexStats(c *gin.Context) {
	user := middleware.GetUser(c)

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureMultiDocument)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	c.JSON(http.StatusOK, h.Index.Stats())
}
