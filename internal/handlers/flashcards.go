// flashcards.go handles flashcard generation and the review session.
//
// POST /api/v1/study/flashcards — generate cards and start a session
// GET  /api/v1/study/flashcards/session — current card view
// POST /api/v1/study/flashcards/session/reveal — flip the current card
// POST /api/v1/study/flashcards/session/assess — self-assess and advance
// POST /api/v1/study/flashcards/session/next — skip forward
// POST /api/v1/study/flashcards/session/previous — go back
// POST /api/v1/study/flashcards/session/reset — hide the answer again
// POST /api/v1/study/flashcards/session/restart — rerun a finished session
// DELETE /api/v1/study/flashcards/session — abandon the session
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/models"
	"github.com/ltnqls11/pdf-study-api/internal/services/generator"
	"github.com/ltnqls11/pdf-study-api/internal/store"
	"github.com/ltnqls11/pdf-study-api/internal/study"
)

// GenerateFlashcards creates a card deck from a document and starts a
// review session for the user, replacing any session in progress.
// POST /api/v1/study/flashcards
func (h *Handler) GenerateFlashcards(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.FlashcardsRequest
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

	raw, err := h.Generator.GenerateFlashcards(c.Request.Context(), result.Text, req.NumCards)
	if err != nil {
		if errors.Is(err, generator.ErrTextTooShort) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "text_too_short",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
		generationFailed(c, "플래시카드", err)
		return
	}

	cards := study.ParseFlashcards(raw)
	if len(cards) == 0 {
		generationFailed(c, "플래시카드", fmt.Errorf("응답에서 카드를 찾을 수 없습니다"))
		return
	}

	username, document := user.Username, req.Document
	cardType := req.CardType
	if cardType == "" {
		cardType = "정의형"
	}
	session, err := study.NewReviewSession(cards, func(correct, incorrect, total int) {
		h.recordSessionComplete(username, document, cardType, correct, incorrect, total)
	})
	if err != nil {
		generationFailed(c, "플래시카드", err)
		return
	}
	h.Sessions.Put(username, session)

	h.recordCall(username, "")

	log.Printf("🎴 Started flashcard session for %s: %d cards from %s", username, len(cards), document)
	c.JSON(http.StatusCreated, gin.H{
		"document": document,
		"count":    len(cards),
		"card":     session.View(),
	})
}

// recordSessionComplete books a finished review run into study history and
// activity.
func (h *Handler) recordSessionComplete(username, document, cardType string, correct, incorrect, total int) {
	acc := 0.0
	if correct+incorrect > 0 {
		acc = float64(correct) / float64(correct+incorrect) * 100
	}
	summary := fmt.Sprintf("플래시카드 학습 완료: %d장, 정답률 %.1f%%", total, acc)

	if err := h.Store.AppendStudyHistory(username, fmt.Sprintf("플래시카드 학습 완료 (%s): %s", cardType, document), summary, document); err != nil {
		log.Printf("⚠️ Failed to append study history for %s: %v", username, err)
	}
	err := h.Store.RecordActivity(username, store.ActivityFlashcardCompleted, map[string]any{
		"document":  document,
		"card_type": cardType,
		"cards":     total,
		"correct":   correct,
		"incorrect": incorrect,
		"accuracy":  acc,
	})
	if err != nil {
		log.Printf("⚠️ Failed to record activity for %s: %v", username, err)
	}
	log.Printf("🎉 %s finished flashcards for %s: %d/%d correct (%.1f%%)", username, document, correct, correct+incorrect, acc)
}

// session fetches the user's active session or writes a 404.
func (h *Handler) session(c *gin.Context) (*study.ReviewSession, bool) {
	user := middleware.GetUser(c)
	session, ok := h.Sessions.Get(user.Username)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no_session",
			Message: "No active flashcard session. Generate flashcards first.",
			Code:    http.StatusNotFound,
		})
		return nil, false
	}
	return session, true
}

// GetSession returns the current card view.
// GET /api/v1/study/flashcards/session
func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// RevealCard flips the current card to its back.
// POST /api/v1/study/flashcards/session/reveal
func (h *Handler) RevealCard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.RevealAnswer(); err != nil {
		sessionFinished(c)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// AssessCard records a self-assessment and advances the session.
// POST /api/v1/study/flashcards/session/assess
func (h *Handler) AssessCard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req models.AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Provide {\"correct\": true|false}",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := session.SelfAssess(req.Correct); err != nil {
		sessionFinished(c)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// NextCard moves to the next card without assessing.
// POST /api/v1/study/flashcards/session/next
func (h *Handler) NextCard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Next(); err != nil {
		sessionFinished(c)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// PreviousCard moves back one card.
// POST /api/v1/study/flashcards/session/previous
func (h *Handler) PreviousCard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Previous(); err != nil {
		sessionFinished(c)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// ResetCard hides the answer of the current card without moving or
// touching the tallies.
// POST /api/v1/study/flashcards/session/reset
func (h *Handler) ResetCard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Reset()
	c.JSON(http.StatusOK, session.View())
}

// RestartSession starts a fresh run over the same deck after finishing.
// POST /api/v1/study/flashcards/session/restart
func (h *Handler) RestartSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Restart(); err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "not_finished",
			Message: "Session is still in progress. Finish it or delete it first.",
			Code:    http.StatusConflict,
		})
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// DeleteSession abandons the user's session.
// DELETE /api/v1/study/flashcards/session
func (h *Handler) DeleteSession(c *gin.Context) {
	user := middleware.GetUser(c)
	h.Sessions.Delete(user.Username)
	c.Status(http.StatusNoContent)
}

// sessionFinished writes the standard error for operations on a finished
// session.
func sessionFinished(c *gin.Context) {
	c.JSON(http.StatusConflict, models.ErrorResponse{
		Error:   "session_finished",
		Message: "Session is finished. Restart it or generate new flashcards.",
		Code:    http.StatusConflict,
	})
}
