// history_test.go — Unit tests for study history, chat log, activity and
// document selection storage.
package store

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStudyHistory(t *testing.T) {
	s := newTestStore(t)

	t.Run("empty history is an empty slice", func(t *testing.T) {
		history, err := s.ListStudyHistory("alice")
		if err != nil {
			t.Fatalf("ListStudyHistory: %v", err)
		}
		if history == nil || len(history) != 0 {
			t.Errorf("history = %v, want empty slice", history)
		}
	})

	t.Run("append and read back", func(t *testing.T) {
		if err := s.AppendStudyHistory("alice", "질문", "답변", "lecture.pdf"); err != nil {
			t.Fatalf("AppendStudyHistory: %v", err)
		}
		history, _ := s.ListStudyHistory("alice")
		if len(history) != 1 {
			t.Fatalf("got %d records, want 1", len(history))
		}
		r := history[0]
		if r.Question != "질문" || r.Answer != "답변" || r.Topic != "lecture.pdf" {
			t.Errorf("record = %+v", r)
		}
		if r.Timestamp.IsZero() {
			t.Error("timestamp not set")
		}
	})

	t.Run("empty topic defaults", func(t *testing.T) {
		s.AppendStudyHistory("bob", "q", "a", "")
		history, _ := s.ListStudyHistory("bob")
		if history[0].Topic != "일반" {
			t.Errorf("topic = %q, want 일반", history[0].Topic)
		}
	})

	t.Run("long answers are truncated", func(t *testing.T) {
		long := strings.Repeat("x", 400)
		s.AppendStudyHistory("carol", "q", long, "t")
		history, _ := s.ListStudyHistory("carol")
		got := history[0].Answer
		if got != strings.Repeat("x", 300)+"..." {
			t.Errorf("answer length = %d, want 300 + ellipsis", len(got))
		}
	})

	t.Run("list is capped at 100", func(t *testing.T) {
		for i := 0; i < 110; i++ {
			s.AppendStudyHistory("dave", fmt.Sprintf("q%d", i), "a", "t")
		}
		history, _ := s.ListStudyHistory("dave")
		if len(history) != 100 {
			t.Fatalf("got %d records, want 100", len(history))
		}
		// Oldest entries dropped, newest kept
		if history[0].Question != "q10" || history[99].Question != "q109" {
			t.Errorf("window = %s..%s, want q10..q109", history[0].Question, history[99].Question)
		}
	})
}

func TestChatMessages(t *testing.T) {
	s := newTestStore(t)

	if err := s.AppendChatMessage("alice", "안녕", "반가워요", ""); err != nil {
		t.Fatalf("AppendChatMessage: %v", err)
	}
	chat, err := s.ListChatMessages("alice")
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if len(chat) != 1 {
		t.Fatalf("got %d messages, want 1", len(chat))
	}
	if chat[0].Type != "qa" {
		t.Errorf("type = %q, want default qa", chat[0].Type)
	}

	t.Run("responses truncated at 500", func(t *testing.T) {
		s.AppendChatMessage("bob", "m", strings.Repeat("y", 600), "summary")
		chat, _ := s.ListChatMessages("bob")
		if chat[0].Response != strings.Repeat("y", 500)+"..." {
			t.Errorf("response length = %d", len(chat[0].Response))
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"under limit untouched", "short", 10, "short"},
		{"exactly at limit", "12345", 5, "12345"},
		{"ascii cut", "123456", 5, "12345..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.text, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		text := strings.Repeat("한", 200) // 3 bytes each
		got := truncate(text, 300)
		trimmed := strings.TrimSuffix(got, "...")
		if !utf8.ValidString(trimmed) {
			t.Error("truncation split a rune")
		}
		if len(trimmed) > 300 {
			t.Errorf("kept %d bytes, want <= 300", len(trimmed))
		}
	})
}

func TestActivity(t *testing.T) {
	s := newTestStore(t)

	t.Run("zero value for new user", func(t *testing.T) {
		activity, err := s.GetActivity("alice")
		if err != nil {
			t.Fatalf("GetActivity: %v", err)
		}
		if activity.Username != "alice" || activity.TotalQuestions != 0 {
			t.Errorf("activity = %+v", activity)
		}
	})

	t.Run("totals accumulate by type", func(t *testing.T) {
		s.RecordActivity("alice", ActivityQuestionAsked, nil)
		s.RecordActivity("alice", ActivityQuestionAsked, nil)
		s.RecordActivity("alice", ActivityPDFProcessed, map[string]any{"document": "a.pdf"})
		s.RecordActivity("alice", ActivityQuizCompleted, nil)

		activity, _ := s.GetActivity("alice")
		if activity.TotalQuestions != 2 || activity.TotalPDFs != 1 || activity.TotalQuizzes != 1 {
			t.Errorf("totals = %d/%d/%d", activity.TotalQuestions, activity.TotalPDFs, activity.TotalQuizzes)
		}
		if activity.LastActivity == nil {
			t.Error("LastActivity not set")
		}
		if len(activity.Activities) != 4 {
			t.Errorf("got %d activity records, want 4", len(activity.Activities))
		}
	})

	t.Run("records capped at 50", func(t *testing.T) {
		for i := 0; i < 60; i++ {
			s.RecordActivity("bob", ActivityQuestionAsked, nil)
		}
		activity, _ := s.GetActivity("bob")
		if len(activity.Activities) != 50 {
			t.Errorf("got %d records, want 50", len(activity.Activities))
		}
		if activity.TotalQuestions != 60 {
			t.Errorf("TotalQuestions = %d, want 60 (totals survive trimming)", activity.TotalQuestions)
		}
	})
}

func TestSelectedDocuments(t *testing.T) {
	s := newTestStore(t)

	t.Run("empty selection for new user", func(t *testing.T) {
		selected, err := s.LoadSelectedDocuments("alice")
		if err != nil {
			t.Fatalf("LoadSelectedDocuments: %v", err)
		}
		if selected == nil || len(selected) != 0 {
			t.Errorf("selected = %v, want empty slice", selected)
		}
	})

	t.Run("save round trip", func(t *testing.T) {
		docs := []string{"a.pdf", "b.pdf"}
		if err := s.SaveSelectedDocuments("alice", docs); err != nil {
			t.Fatalf("SaveSelectedDocuments: %v", err)
		}
		selected, _ := s.LoadSelectedDocuments("alice")
		if len(selected) != 2 || selected[0] != "a.pdf" || selected[1] != "b.pdf" {
			t.Errorf("selected = %v", selected)
		}
	})

	t.Run("saving replaces previous selection", func(t *testing.T) {
		s.SaveSelectedDocuments("alice", []string{"c.pdf"})
		selected, _ := s.LoadSelectedDocuments("alice")
		if len(selected) != 1 || selected[0] != "c.pdf" {
			t.Errorf("selected = %v", selected)
		}
	})
}
