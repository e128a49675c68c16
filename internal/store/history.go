// history.go handles per-user study history and chat logs.
package store

import (
	"time"

	"github.com/ltnqls11/pdf-study-api/internal/models"
)

// Retention windows: lists are trimmed to the most recent N entries on every
// append, keeping the on-disk documents bounded.
const (
	historyCap = 100
	chatCap    = 100
)

// Truncation lengths for stored response text.
const (
	historyAnswerMax = 300
	chatResponseMax  = 500
)

// AppendStudyHistory records one study interaction in <username>_history.json.
// The answer is truncated for storage; the list keeps the last 100 records.
func (s *Store) AppendStudyHistory(username, question, answer, topic string) error {
	if topic == "" {
		topic = "일반"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := username + "_history.json"
	var history []models.StudyHistoryRecord
	if err := s.readJSON(file, &history); err != nil {
		return err
	}

	history = append(history, models.StudyHistoryRecord{
		Timestamp: time.Now(),
		Question:  question,
		Answer:    truncate(answer, historyAnswerMax),
		Topic:     topic,
	})
	if len(history) > historyCap {
		history = history[len(history)-historyCap:]
	}

	return s.writeJSON(file, history)
}

// ListStudyHistory returns the user's study history, oldest first.
// A user with no history gets an empty slice, not an error.
func (s *Store) ListStudyHistory(username string) ([]models.StudyHistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []models.StudyHistoryRecord
	if err := s.readJSON(username+"_history.json", &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.StudyHistoryRecord{}
	}
	return history, nil
}

// AppendChatMessage records one message/response pair in <username>_chat.json.
func (s *Store) AppendChatMessage(username, message, response, messageType string) error {
	if messageType == "" {
		messageType = "qa"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := username + "_chat.json"
	var chat []models.ChatMessage
	if err := s.readJSON(file, &chat); err != nil {
		return err
	}

	chat = append(chat, models.ChatMessage{
		Timestamp: time.Now(),
		Message:   message,
		Response:  truncate(response, chatResponseMax),
		Type:      messageType,
	})
	if len(chat) > chatCap {
		chat = chat[len(chat)-chatCap:]
	}

	return s.writeJSON(file, chat)
}

// ListChatMessages returns the user's chat log, oldest first.
func (s *Store) ListChatMessages(username string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var chat []models.ChatMessage
	if err := s.readJSON(username+"_chat.json", &chat); err != nil {
		return nil, err
	}
	if chat == nil {
		chat = []models.ChatMessage{}
	}
	return chat, nil
}

// truncate shortens text to max runes-worth of bytes with an ellipsis marker.
// Truncation is byte-based to match the stored format; the boundary is backed
// off so a multi-byte character is never split.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && (text[cut]&0xC0) == 0x80 {
		cut--
	}
	return text[:cut] + "..."
}
