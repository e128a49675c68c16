// users.go handles user account operations against users.json.
package store

import (
	"fmt"
	"time"

	"github.com/ltnqls11/pdf-study-api/internal/models"
)

const usersFile = "users.json"

// Feature types used by plan limits and usage tracking.
const (
	FeaturePDFUpload      = "pdf_upload"
	FeatureQuizGeneration = "quiz_generation"
	FeatureQuestionAsked  = "question_asked"
	FeatureMultiDocument  = "multi_document"
	FeatureAPICall        = "api_calls"
)

// Free-plan daily limits. Premium and instructor plans are unlimited.
const (
	freePDFLimit     = 10
	freeQuizLimit    = 5
	freeAPICallLimit = 50
)

// ErrUserExists is returned by CreateUser when the username is taken.
var ErrUserExists = fmt.Errorf("user already exists")

// ErrUserNotFound is returned when a username has no account.
var ErrUserNotFound = fmt.Errorf("user not found")

// loadUsers reads the full account map. Missing file = no users yet.
func (s *Store) loadUsers() (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	if err := s.readJSON(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser adds a new account to users.json.
// The password must already be hashed by the caller — the store never sees
// raw credentials.
func (s *Store) CreateUser(u *models.User) error {
	if !ValidUsername(u.Username) {
		return fmt.Errorf("invalid username %q", u.Username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	if _, taken := users[u.Username]; taken {
		return ErrUserExists
	}

	if u.Plan == "" {
		u.Plan = models.PlanFree
	}
	u.CreatedAt = time.Now()
	users[u.Username] = u

	return s.writeJSON(usersFile, users)
}

// GetUser retrieves an account by username.
func (s *Store) GetUser(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	u, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateLastLogin stamps the account's last_login with the current time.
func (s *Store) UpdateLastLogin(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	u, ok := users[username]
	if !ok {
		return ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return s.writeJSON(usersFile, users)
}

// CheckPlanLimit reports whether the user may use a feature right now.
// The second return value is a user-facing reason when denied.
// A user that cannot be loaded is allowed through — limit checks degrade
// open so a broken users.json never locks everyone out.
func (s *Store) CheckPlanLimit(username, feature string) (bool, string) {
	u, err := s.GetUser(username)
	if err != nil {
		return true, ""
	}
	if u.Plan != models.PlanFree {
		return true, ""
	}

	usage := u.UsageStats
	switch feature {
	case FeaturePDFUpload:
		if usage.TotalPDFs >= freePDFLimit {
			return false, "무료 플랜은 일일 10개 PDF 제한입니다."
		}
	case FeatureQuizGeneration:
		if usage.TotalQuizzes >= freeQuizLimit {
			return false, "무료 플랜은 일일 5개 퀴즈 제한입니다."
		}
	case FeatureMultiDocument:
		return false, "다중 문서 기능은 프리미엄 플랜이 필요합니다."
	case FeatureAPICall:
		today := time.Now().Format("2006-01-02")
		if len(usage.LastAPICall) >= len(today) && usage.LastAPICall[:len(today)] == today {
			if usage.APICallsToday >= freeAPICallLimit {
				return false, "무료 플랜은 일일 50회 API 호출 제한입니다."
			}
		}
	}
	return true, ""
}

// RecordUsage bumps the usage counters for one feature use. The per-day API
// call counter resets when the last recorded call was on an earlier day.
func (s *Store) RecordUsage(username, feature string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	u, ok := users[username]
	if !ok {
		return ErrUserNotFound
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	usage := &u.UsageStats

	if len(usage.LastAPICall) >= len(today) && usage.LastAPICall[:len(today)] == today {
		usage.APICallsToday++
	} else {
		usage.APICallsToday = 1
	}
	usage.LastAPICall = now.Format(time.RFC3339)

	switch feature {
	case FeaturePDFUpload:
		usage.TotalPDFs++
	case FeatureQuizGeneration:
		usage.TotalQuizzes++
	case FeatureQuestionAsked:
		usage.TotalQuestions++
	}

	return s.writeJSON(usersFile, users)
}
