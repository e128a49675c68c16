// activity.go handles the per-user activity document.
package store

import (
	"time"

	"github.com/ltnqls11/pdf-study-api/internal/models"
)

// activityCap bounds the activities list in <username>_activity.json.
const activityCap = 50

// Activity types recorded by the handlers.
const (
	ActivityQuestionAsked      = "question_asked"
	ActivityPDFProcessed       = "pdf_processed"
	ActivityQuizCompleted      = "quiz_completed"
	ActivityFlashcardCompleted = "flashcard_completed"
)

// RecordActivity updates the activity totals and appends one activity record,
// trimming the list to the most recent 50 entries.
func (s *Store) RecordActivity(username, activityType string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := username + "_activity.json"
	activity := models.UserActivity{Username: username}
	if err := s.readJSON(file, &activity); err != nil {
		return err
	}

	switch activityType {
	case ActivityQuestionAsked:
		activity.TotalQuestions++
	case ActivityPDFProcessed:
		activity.TotalPDFs++
	case ActivityQuizCompleted:
		activity.TotalQuizzes++
	}

	now := time.Now()
	activity.LastActivity = &now
	activity.Activities = append(activity.Activities, models.ActivityRecord{
		Type:      activityType,
		Timestamp: now,
		Data:      data,
	})
	if len(activity.Activities) > activityCap {
		activity.Activities = activity.Activities[len(activity.Activities)-activityCap:]
	}

	return s.writeJSON(file, activity)
}

// GetActivity returns the user's activity document. A user with no recorded
// activity gets a zero-valued document with their username filled in.
func (s *Store) GetActivity(username string) (*models.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity := models.UserActivity{Username: username}
	if err := s.readJSON(username+"_activity.json", &activity); err != nil {
		return nil, err
	}
	if activity.Activities == nil {
		activity.Activities = []models.ActivityRecord{}
	}
	return &activity, nil
}
