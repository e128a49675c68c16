// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// There is no ORM here — the store package handles persistence, and the
// JSON tags double as the on-disk format for the flat-file documents.
package models

import "time"

// Plan represents a user's service tier.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPremium    Plan = "premium"
	PlanInstructor Plan = "instructor"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPremium || p == PlanInstructor
}

// UsageStats tracks per-user feature consumption for plan limits.
// api_calls_today resets when last_api_call rolls over to a new day.
type UsageStats struct {
	TotalQuestions int    `json:"total_questions"`
	TotalPDFs      int    `json:"total_pdfs"`
	TotalQuizzes   int    `json:"total_quizzes"`
	APICallsToday  int    `json:"api_calls_today"`
	LastAPICall    string `json:"last_api_call,omitempty"` // RFC 3339 timestamp
}

// User is one entry in users.json, keyed by username.
type User struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"password_hash"`
	Plan         Plan       `json:"plan"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"` // Pointer = never logged in yet
	UsageStats   UsageStats `json:"usage_stats"`
}

// PublicUser is the API-visible view of a user — no password hash.
type PublicUser struct {
	Username   string     `json:"username"`
	Plan       Plan       `json:"plan"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	UsageStats UsageStats `json:"usage_stats"`
}

// Public strips credentials from a User for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username:   u.Username,
		Plan:       u.Plan,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
		UsageStats: u.UsageStats,
	}
}

// StudyHistoryRecord is one entry in <username>_history.json.
// Answers are truncated at write time; the list keeps the last 100 entries.
type StudyHistoryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Topic     string    `json:"topic"`
}

// ActivityRecord is one entry in the activities list of <username>_activity.json.
type ActivityRecord struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// UserActivity is the whole <username>_activity.json document.
type UserActivity struct {
	Username       string           `json:"username"`
	TotalQuestions int              `json:"total_questions"`
	TotalPDFs      int              `json:"total_pdfs"`
	TotalQuizzes   int              `json:"total_quizzes"`
	LastActivity   *time.Time       `json:"last_activity,omitempty"`
	Activities     []ActivityRecord `json:"activities"`
}

// ChatMessage is one entry in <username>_chat.json.
type ChatMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Type      string    `json:"type"` // "qa", "summary", "quiz", ...
}

// UserDocuments is the whole <username>_documents.json document.
type UserDocuments struct {
	Username          string    `json:"username"`
	SelectedDocuments []string  `json:"selected_documents"`
	LastUpdated       time.Time `json:"last_updated"`
	DocumentCount     int       `json:"document_count"`
}

// --- Request/Response DTOs ---
// Go Pattern: Separate structs for API input/output vs stored documents.
// This keeps the API contract independent of the on-disk format.

// RegisterRequest is the JSON body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Password string `json:"password" binding:"required,min=8"`
	Plan     Plan   `json:"plan,omitempty"` // defaults to free
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a fresh JWT plus the user it belongs to.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// AskRequest is the JSON body for POST /api/v1/study/ask.
type AskRequest struct {
	Document string `json:"document" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// SummarizeRequest is the JSON body for POST /api/v1/study/summarize.
type SummarizeRequest struct {
	Document  string `json:"document" binding:"required"`
	MaxLength int    `json:"max_length,omitempty"` // 0 = default (500 chars)
}

// QuizRequest is the JSON body for POST /api/v1/study/quiz.
type QuizRequest struct {
	Document     string `json:"document" binding:"required"`
	Kind         string `json:"kind,omitempty"` // "multiple_choice" or "short_answer"
	NumQuestions int    `json:"num_questions,omitempty"`
}

// NotesRequest is the JSON body for POST /api/v1/study/notes.
type NotesRequest struct {
	Document string `json:"document" binding:"required"`
	Style    string `json:"style,omitempty"` // "bullet", "outline", "mindmap"
}

// CornellRequest is the JSON body for POST /api/v1/study/cornell.
type CornellRequest struct {
	Document string `json:"document" binding:"required"`
	Style    string `json:"style,omitempty"` // "standard", "detailed", "exam_focused"
}

// FlashcardsRequest is the JSON body for POST /api/v1/study/flashcards.
type FlashcardsRequest struct {
	Document string `json:"document" binding:"required"`
	NumCards int    `json:"num_cards,omitempty"`
	CardType string `json:"card_type,omitempty"` // free-form label shown in history
}

// AssessRequest is the JSON body for POST /api/v1/study/flashcards/session/assess.
type AssessRequest struct {
	Correct bool `json:"correct"`
}

// SelectDocumentsRequest is the JSON body for POST /api/v1/documents/select.
type SelectDocumentsRequest struct {
	Documents []string `json:"documents" binding:"required,min=1,max=10"`
}

// SearchRequest is the JSON body for POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k,omitempty"` // 0 = default (5)
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Store     string `json:"store"`
	Documents int    `json:"documents"` // documents in the vector index
}
