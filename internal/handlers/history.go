// history.go handles read endpoints over the per-user records.
//
// GET /api/v1/history — study history (last 100 Q&A entries)
// GET /api/v1/activity — activity totals and recent activity records
// GET /api/v1/chat — chat log (last 100 messages)
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/models"
)

// GetHistory returns the user's study history, most recent last.
// GET /api/v1/history
func (h *Handler) GetHistory(c *gin.Context) {
	user := middleware.GetUser(c)

	records, err := h.Store.ListStudyHistory(user.Username)
	if err != nil {
		log.Printf("❌ Failed to load history for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to load study history",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": records,
		"count":   len(records),
	})
}

// GetActivity returns the user's activity document.
// GET /api/v1/activity
func (h *Handler) GetActivity(c *gin.Context) {
	user := middleware.GetUser(c)

	activity, err := h.Store.GetActivity(user.Username)
	if err != nil {
		log.Printf("❌ Failed to load activity for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to load activity",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, activity)
}

// GetChat returns the user's chat log, most recent last.
// GET /api/v1/chat
func (h *Handler) GetChat(c *gin.Context) {
	user := middleware.GetUser(c)

	messages, err := h.Store.ListChatMessages(user.Username)
	if err != nil {
		log.Printf("❌ Failed to load chat for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "store_error",
			Message: "Failed to load chat messages",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}
