// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/config"
	"github.com/ltnqls11/pdf-study-api/internal/handlers"
	"github.com/ltnqls11/pdf-study-api/internal/index"
	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/services/generator"
	"github.com/ltnqls11/pdf-study-api/internal/store"
	"github.com/ltnqls11/pdf-study-api/internal/study"
)

// Setup creates and configures the Gin router with all routes.
func Setup(cfg *config.Config, st *store.Store, gen *generator.Service, idx *index.Manager) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	sessions := study.NewSessions()
	h := handlers.NewHandler(st, gen, idx, sessions, cfg.JWTSecret, cfg.PDFDir)
	rateLimiter := middleware.NewRateLimiter(cfg.DefaultRateLimit)

	// --- Public Routes (no auth required) ---
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)

	// --- JWT-protected routes ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(st, cfg.JWTSecret))
	protected.Use(rateLimiter.RateLimit())
	{
		protected.GET("/auth/me", h.GetMe)
		protected.POST("/auth/refresh", h.RefreshToken)

		// Document library
		protected.GET("/documents", h.ListDocuments)
		protected.POST("/documents/upload", h.UploadPDF)
		protected.POST("/documents/select", h.SelectDocuments)
		protected.GET("/documents/selected", h.GetSelectedDocuments)
		protected.GET("/documents/:name/summary", h.DocumentSummary)

		// Study content generation
		protected.POST("/study/ask", h.Ask)
		protected.POST("/study/summarize", h.Summarize)
		protected.POST("/study/quiz", h.GenerateQuiz)
		protected.POST("/study/notes", h.GenerateNotes)
		protected.POST("/study/cornell", h.GenerateCornell)

		// Flashcards and review session
		protected.POST("/study/flashcards", h.GenerateFlashcards)
		protected.GET("/study/flashcards/session", h.GetSession)
		protected.POST("/study/flashcards/session/reveal", h.RevealCard)
		protected.POST("/study/flashcards/session/assess", h.AssessCard)
		protected.POST("/study/flashcards/session/next", h.NextCard)
		protected.POST("/study/flashcards/session/previous", h.PreviousCard)
		protected.POST("/study/flashcards/session/reset", h.ResetCard)
		protected.POST("/study/flashcards/session/restart", h.RestartSession)
		protected.DELETE("/study/flashcards/session", h.DeleteSession)

		// Multi-document search (premium)
		protected.POST("/search/index", h.IndexDocuments)
		protected.POST("/search", h.Search)
		protected.GET("/search/stats", h.IndexStats)

		// Per-user records
		protected.GET("/history", h.GetHistory)
		protected.GET("/activity", h.GetActivity)
		protected.GET("/chat", h.GetChat)
	}

	return r
}
