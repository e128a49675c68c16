// study.go handles study content generation HTTP endpoints.
//
// POST /api/v1/study/ask — answer a question about a document
// POST /api/v1/study/summarize — summarize a document
// POST /api/v1/study/quiz — generate a quiz
// POST /api/v1/study/notes — generate study notes
// POST /api/v1/study/cornell — generate Cornell-style notes
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/models"
	"github.com/ltnqls11/pdf-study-api/internal/store"
	"github.com/ltnqls11/pdf-study-api/internal/study"
)

// Ask answers a free-form question about one document.
// POST /api/v1/study/ask
func (h *Handler) Ask(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Document and question are required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureAPICall)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	result, err := h.loadDocumentText(req.Document)
	if err != nil {
		documentNotFound(c, req.Document, err)
		return
	}

	answer, err := h.Generator.Answer(c.Request.Context(), result.Text, req.Question)
	if err != nil {
		generationFailed(c, "답변", err)
		return
	}

	h.recordCall(user.Username, store.FeatureQuestionAsked)
	if err := h.Store.AppendStudyHistory(user.Username, req.Question, answer, req.Document); err != nil {
		log.Printf("⚠️ Failed to append study history for %s: %v", user.Username, err)
	}
	if err := h.Store.AppendChatMessage(user.Username, req.Question, answer, "qa"); err != nil {
		log.Printf("⚠️ Failed to append chat message for %s: %v", user.Username, err)
	}
	err = h.Store.RecordActivity(user.Username, store.ActivityQuestionAsked, map[string]any{
		"document": req.Document,
	})
	if err != nil {
		log.Printf("⚠️ Failed to record activity for %s: %v", user.Username, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"document": req.Document,
		"question": req.Question,
		"answer":   answer,
	})
}

// Summarize produces a summary of one document.
// POST /api/v1/study/summarize
func (h *Handler) Summarize(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Document is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureAPICall)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	result, err := h.loadDocumentText(req.Document)
	if err != nil {
		documentNotFound(c, req.Document, err)
		return
	}

	summary, err := h.Generator.Summarize(c.Request.Context(), result.Text, req.MaxLength)
	if err != nil {
		generationFailed(c, "요약", err)
		return
	}

	h.recordCall(user.Username, "")
	if err := h.Store.AppendChatMessage(user.Username, "요약 요청: "+req.Document, summary, "summary"); err != nil {
		log.Printf("⚠️ Failed to append chat message for %s: %v", user.Username, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"document": req.Document,
		"summary":  summary,
	})
}

// GenerateQuiz produces quiz questions from one document.
// POST /api/v1/study/quiz
func (h *Handler) GenerateQuiz(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Document is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureQuizGeneration)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	result, err := h.loadDocumentText(req.Document)
	if err != nil {
		documentNotFound(c, req.Document, err)
		return
	}

	quiz, err := h.Generator.GenerateQuiz(c.Request.Context(), result.Text, req.Kind, req.NumQuestions)
	if err != nil {
		generationFailed(c, "퀴즈", err)
		return
	}

	h.recordCall(user.Username, store.FeatureQuizGeneration)
	err = h.Store.RecordActivity(user.Username, store.ActivityQuizCompleted, map[string]any{
		"document": req.Document,
		"kind":     req.Kind,
	})
	if err != nil {
		log.Printf("⚠️ Failed to record activity for %s: %v", user.Username, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"document": req.Document,
		"kind":     req.Kind,
		"quiz":     quiz,
	})
}

// GenerateNotes produces study notes from one document.
// POST /api/v1/study/notes
func (h *Handler) GenerateNotes(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Document is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureAPICall)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	result, err := h.loadDocumentText(req.Document)
	if err != nil {
		documentNotFound(c, req.Document, err)
		return
	}

	notes, err := h.Generator.GenerateStudyNotes(c.Request.Context(), result.Text, req.Style)
	if err != nil {
		generationFailed(c, "학습 노트", err)
		return
	}

	h.recordCall(user.Username, "")
	if err := h.Store.AppendChatMessage(user.Username, "노트 요청: "+req.Document, notes, "notes"); err != nil {
		log.Printf("⚠️ Failed to append chat message for %s: %v", user.Username, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"document": req.Document,
		"style":    req.Style,
		"notes":    notes,
	})
}

// GenerateCornell produces Cornell-style notes from one document, parsed
// into cue, note and summary sections.
// POST /api/v1/study/cornell
func (h *Handler) GenerateCornell(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.CornellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Document is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	allowed, reason := h.Store.CheckPlanLimit(user.Username, store.FeatureAPICall)
	if !allowed {
		planLimitExceeded(c, reason)
		return
	}

	result, err := h.loadDocumentText(req.Document)
	if err != nil {
		documentNotFound(c, req.Document, err)
		return
	}

	raw, err := h.Generator.GenerateCornellNotes(c.Request.Context(), result.Text, req.Style)
	if err != nil {
		generationFailed(c, "코넬 노트", err)
		return
	}

	sections := study.ParseCornellNotes(raw)

	h.recordCall(user.Username, "")

	c.JSON(http.StatusOK, gin.H{
		"document": req.Document,
		"style":    req.Style,
		"cornell":  sections,
	})
}

// recordCall books one API call against the user's daily quota, plus the
// feature-specific counter when feature is non-empty. Store failures are
// logged, not surfaced; usage tracking must never break a served response.
func (h *Handler) recordCall(username, feature string) {
	if err := h.Store.RecordUsage(username, store.FeatureAPICall); err != nil {
		log.Printf("⚠️ Failed to record usage for %s: %v", username, err)
	}
	if feature != "" && feature != store.FeatureAPICall {
		if err := h.Store.RecordUsage(username, feature); err != nil {
			log.Printf("⚠️ Failed to record usage for %s: %v", username, err)
		}
	}
}
