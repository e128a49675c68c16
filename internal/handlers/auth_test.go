// auth_test.go — HTTP-level tests for registration, login and token use.
// These run against a real flat-file store in a temp directory; no network.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ltnqls11/pdf-study-api/internal/index"
	"github.com/ltnqls11/pdf-study-api/internal/middleware"
	"github.com/ltnqls11/pdf-study-api/internal/models"
	"github.com/ltnqls11/pdf-study-api/internal/services/generator"
	"github.com/ltnqls11/pdf-study-api/internal/store"
	"github.com/ltnqls11/pdf-study-api/internal/study"
)

const testSecret = "test-jwt-secret"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	embed := func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0, 0, 0}, nil
	}
	h := NewHandler(st, generator.New("", "test-model"), index.NewManager(embed), study.NewSessions(), testSecret, t.TempDir())

	r := gin.New()
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(st, testSecret))
	{
		protected.GET("/auth/me", h.GetMe)
		protected.GET("/history", h.GetHistory)
		protected.GET("/search/stats", h.IndexStats)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginFlow(t *testing.T) {
	r := testRouter(t)

	// Register
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var auth models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &auth); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("no token in register response")
	}
	if auth.User.Username != "alice" || auth.User.Plan != models.PlanFree {
		t.Errorf("user = %+v", auth.User)
	}

	// Duplicate register
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	// Login with the right password
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &auth); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Login with the wrong password
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}

	// Use the token
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", auth.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", w.Code, w.Body.String())
	}
	var me models.PublicUser
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if me.Username != "alice" {
		t.Errorf("me = %+v", me)
	}

	// Responses never leak the password hash
	if bytes.Contains(w.Body.Bytes(), []byte("password_hash")) {
		t.Error("response contains password_hash")
	}
}

func TestRegisterValidation(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name string
		req  models.RegisterRequest
		want int
	}{
		{"short password", models.RegisterRequest{Username: "bob", Password: "short"}, http.StatusBadRequest},
		{"short username", models.RegisterRequest{Username: "b", Password: "password123"}, http.StatusBadRequest},
		{"bad username characters", models.RegisterRequest{Username: "bad name", Password: "password123"}, http.StatusBadRequest},
		{"unknown plan", models.RegisterRequest{Username: "bob", Password: "password123", Plan: "gold"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", tt.req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/v1/history", tt.token, nil)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var health models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if health.Status != "ok" || health.Store != "healthy" {
		t.Errorf("health = %+v", health)
	}
}
