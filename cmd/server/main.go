// Package main is the entry point for the PDF Study API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/philippgille/chromem-go"

	"github.com/ltnqls11/pdf-study-api/internal/config"
	"github.com/ltnqls11/pdf-study-api/internal/index"
	"github.com/ltnqls11/pdf-study-api/internal/router"
	"github.com/ltnqls11/pdf-study-api/internal/services/generator"
	"github.com/ltnqls11/pdf-study-api/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 PDF Study API %s starting...", Version)

	// .env is optional; real deployments set environment variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("📋 Loaded .env file")
	}

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, gin_mode=%s, data_dir=%s, pdf_dir=%s",
		cfg.Port, cfg.GinMode, cfg.DataDir, cfg.PDFDir)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Open the flat-file store
	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	log.Println("✅ Flat-file store ready")

	// Step 3: Create Services
	gen := generator.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	if gen.IsConfigured() {
		log.Printf("✅ Content generation enabled (%s via OpenRouter)", cfg.OpenRouterModel)
	} else {
		log.Println("⚠️  Content generation disabled (set OPENROUTER_API_KEY to enable)")
	}

	// Embedding backend: Gemini when a key is set, otherwise OpenAI-compatible
	var embed chromem.EmbeddingFunc
	if cfg.GeminiAPIKey != "" {
		embed, err = index.NewGeminiEmbedder(context.Background(), cfg.GeminiAPIKey, cfg.GeminiEmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to create Gemini embedder: %v", err)
		}
		log.Printf("✅ Vector index using Gemini embeddings (%s)", cfg.GeminiEmbedModel)
	} else {
		embed = index.NewOpenAICompatEmbedder(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
		log.Printf("✅ Vector index using OpenAI-compatible embeddings (%s)", cfg.EmbeddingModel)
	}
	idx := index.NewManager(embed)

	// Step 4: Setup HTTP Router
	r := router.Setup(cfg, st, gen, idx)

	// Step 5: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // content generation can take minutes
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/api/v1/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
