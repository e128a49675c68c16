// Package generator issues study-content prompts to a remote LLM via OpenRouter.
//
// OpenRouter provides a unified API for multiple LLM providers (OpenAI,
// Anthropic, Google, etc.) using a single API key. The request format
// follows the OpenAI chat completions standard.
//
// Every method returns the model's raw text. The caller must treat that text
// as untrusted and unstructured; it goes through the study parser before
// anything renders it.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrTextTooShort rejects source text with too little material to work with.
var ErrTextTooShort = errors.New("텍스트가 너무 짧아 학습 자료를 생성할 수 없습니다")

// Service handles AI content generation.
type Service struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// New creates a new generator service.
func New(apiKey, model string) *Service {
	return &Service{
		apiKey: apiKey,
		model:  model,
		// Go Pattern: Always configure timeouts on HTTP clients.
		// The default http.Client has NO timeout — requests can hang forever!
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // LLMs can be slow
		},
	}
}

// IsConfigured reports whether an API key is set.
func (s *Service) IsConfigured() bool {
	return s.apiKey != ""
}

// --- OpenRouter API types ---
// These match the OpenAI chat completions format used by OpenRouter.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// complete sends one chat-completion request and returns the model's text.
func (s *Service) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OpenRouter API key not configured; set OPENROUTER_API_KEY")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://openrouter.ai/api/v1/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "PDF Study API")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenRouter request failed: %w", err)
	}
	defer resp.Body.Close() // Go Pattern: ALWAYS close response bodies!

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenRouter returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("OpenRouter error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Summarize produces a study-oriented summary of at most maxLength characters.
func (s *Service) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = 500
	}
	log.Printf("🤖 Generating summary (max %d chars) using %s", maxLength, s.model)
	return s.complete(ctx, buildSummaryPrompt(text, maxLength), 800, 0.3)
}

// GenerateQuiz produces a quiz of the given kind and question count.
// Kind is "multiple_choice" or "short_answer"; anything else falls back to
// multiple choice.
func (s *Service) GenerateQuiz(ctx context.Context, text, kind string, numQuestions int) (string, error) {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	log.Printf("🤖 Generating %s quiz (%d questions) using %s", kind, numQuestions, s.model)
	if kind == "short_answer" {
		return s.complete(ctx, buildShortAnswerQuizPrompt(text, numQuestions), 1200, 0.5)
	}
	return s.complete(ctx, buildMultipleChoiceQuizPrompt(text, numQuestions), 1500, 0.5)
}

// GenerateFlashcards produces flashcard text in the 카드/앞면/뒷면 format
// the study parser understands. Text shorter than 100 characters is rejected
// up front — too little material for meaningful cards.
func (s *Service) GenerateFlashcards(ctx context.Context, text string, numCards int) (string, error) {
	if len(text) < 100 {
		return "", fmt.Errorf("%w (%d chars)", ErrTextTooShort, len(text))
	}
	if numCards <= 0 {
		numCards = 10
	}
	log.Printf("🤖 Generating %d flashcards using %s", numCards, s.model)
	return s.complete(ctx, buildFlashcardPrompt(text, numCards), 2000, 0.4)
}

// GenerateCornellNotes produces Cornell-format notes with the three literal
// section markers the study parser splits on. Style is "standard",
// "detailed", or "exam_focused".
func (s *Service) GenerateCornellNotes(ctx context.Context, text, style string) (string, error) {
	log.Printf("🤖 Generating Cornell notes (%s style) using %s", style, s.model)
	return s.complete(ctx, buildCornellPrompt(text, style), 2000, 0.3)
}

// GenerateStudyNotes produces review notes in the requested layout style:
// "bullet", "outline", or "mindmap".
func (s *Service) GenerateStudyNotes(ctx context.Context, text, style string) (string, error) {
	log.Printf("🤖 Generating study notes (%s style) using %s", style, s.model)
	return s.complete(ctx, buildStudyNotesPrompt(text, style), 1500, 0.3)
}

// Answer responds to a question grounded in the document text.
func (s *Service) Answer(ctx context.Context, text, question string) (string, error) {
	log.Printf("🤖 Answering question using %s", s.model)
	return s.complete(ctx, buildAnswerPrompt(text, question), 1000, 0.3)
}

// DocumentSummary produces a 2-3 line preview summary for a document listing.
func (s *Service) DocumentSummary(ctx context.Context, name, text string) (string, error) {
	return s.complete(ctx, buildDocumentSummaryPrompt(name, text), 200, 0.3)
}
