// prompts_test.go — Unit tests for prompt construction and excerpt caps.
package generator

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"under cap untouched", "hello", 10, "hello"},
		{"exactly at cap", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(tt.text, tt.max); got != tt.want {
				t.Errorf("excerpt(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		text := strings.Repeat("한", 100) // 3 bytes each
		got := excerpt(text, 100)        // 100 is not a multiple of 3
		if !utf8.ValidString(got) {
			t.Error("excerpt split a rune")
		}
		if len(got) > 100 {
			t.Errorf("kept %d bytes, want <= 100", len(got))
		}
	})
}

func TestPromptsEmbedParameters(t *testing.T) {
	t.Run("flashcard prompt carries count and markers", func(t *testing.T) {
		p := buildFlashcardPrompt("소재 텍스트", 7)
		for _, want := range []string{"7개", "카드 1:", "앞면:", "뒷면:", "소재 텍스트"} {
			if !strings.Contains(p, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("cornell prompt carries section markers", func(t *testing.T) {
		p := buildCornellPrompt("소재", "detailed")
		for _, want := range []string{"=== CUE COLUMN ===", "=== NOTE TAKING AREA ===", "=== SUMMARY ===", cornellStyles["detailed"]} {
			if !strings.Contains(p, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("unknown cornell style falls back to standard", func(t *testing.T) {
		p := buildCornellPrompt("소재", "nonsense")
		if !strings.Contains(p, cornellStyles["standard"]) {
			t.Error("unknown style did not fall back to standard")
		}
	})

	t.Run("quiz prompt formats", func(t *testing.T) {
		mc := buildMultipleChoiceQuizPrompt("소재", 5)
		if !strings.Contains(mc, "Q1:") || !strings.Contains(mc, "정답:") || !strings.Contains(mc, "5개") {
			t.Errorf("multiple choice prompt malformed")
		}
		sa := buildShortAnswerQuizPrompt("소재", 3)
		if !strings.Contains(sa, "단답형") || !strings.Contains(sa, "3개") {
			t.Errorf("short answer prompt malformed")
		}
	})

	t.Run("summary prompt carries length", func(t *testing.T) {
		p := buildSummaryPrompt("소재", 500)
		if !strings.Contains(p, "500자") {
			t.Error("summary prompt missing length constraint")
		}
	})

	t.Run("answer prompt carries question", func(t *testing.T) {
		p := buildAnswerPrompt("소재", "이것은 무엇인가?")
		if !strings.Contains(p, "이것은 무엇인가?") {
			t.Error("answer prompt missing question")
		}
	})

	t.Run("long source text is capped", func(t *testing.T) {
		long := strings.Repeat("z", quizCap+5000)
		p := buildMultipleChoiceQuizPrompt(long, 5)
		if strings.Contains(p, long) {
			t.Error("prompt embedded uncapped text")
		}
		if !strings.Contains(p, strings.Repeat("z", quizCap)) {
			t.Error("prompt missing capped excerpt")
		}
	})
}
