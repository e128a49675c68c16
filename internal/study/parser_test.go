// parser_test.go — Unit tests for flashcard and Cornell note parsing.
//
// The generator output these parsers consume is model text, so the tests
// cover well-formed output, drifted output, and output with no structure
// at all.
package study

import (
	"strings"
	"testing"
)

func TestParseFlashcards(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Flashcard
	}{
		{
			name: "well-formed korean markers",
			content: "카드 1:\n앞면: 광합성이란 무엇인가?\n뒷면: 빛 에너지를 화학 에너지로 바꾸는 과정\n\n" +
				"카드 2:\n앞면: 엽록체의 역할은?\n뒷면: 광합성이 일어나는 세포 소기관",
			want: []Flashcard{
				{Front: "광합성이란 무엇인가?", Back: "빛 에너지를 화학 에너지로 바꾸는 과정"},
				{Front: "엽록체의 역할은?", Back: "광합성이 일어나는 세포 소기관"},
			},
		},
		{
			name:    "english marker drift",
			content: "Card 1:\nFront: What is X?\nBack: X is a thing.\nCard 2:\nQuestion: What is Y?\nAnswer: Y is another thing.",
			want: []Flashcard{
				{Front: "What is X?", Back: "X is a thing."},
				{Front: "What is Y?", Back: "Y is another thing."},
			},
		},
		{
			name:    "question answer variant markers",
			content: "카드1:\n질문: 세포란?\n답변: 생물의 기본 단위",
			want: []Flashcard{
				{Front: "세포란?", Back: "생물의 기본 단위"},
			},
		},
		{
			name:    "compact numbered markers with mixed content",
			content: "카드1:\n앞면: What is X?\n뒷면: X is Y.\n카드2:\n앞면: What is Z?\n뒷면: Z is W.",
			want: []Flashcard{
				{Front: "What is X?", Back: "X is Y."},
				{Front: "What is Z?", Back: "Z is W."},
			},
		},
		{
			name:    "marker line without colon is ignored",
			content: "카드 하나\n앞면: A\n뒷면: B",
			want: []Flashcard{
				{Front: "A", Back: "B"},
			},
		},
		{
			name:    "value keeps colons after the first",
			content: "카드 1:\n앞면: 비율 2:1의 의미는?\n뒷면: 두 배",
			want: []Flashcard{
				{Front: "비율 2:1의 의미는?", Back: "두 배"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlashcards(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFlashcards returned %d cards, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("card %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseFlashcardsFallback(t *testing.T) {
	t.Run("sentences become explain cards", func(t *testing.T) {
		content := "광합성은 식물이 빛 에너지를 이용해 포도당을 만드는 과정이다. " +
			"엽록체는 광합성이 일어나는 세포 소기관으로 엽록소를 포함한다. 짧음."
		cards := ParseFlashcards(content)

		if len(cards) != 2 {
			t.Fatalf("got %d cards, want 2 (short sentence must be dropped)", len(cards))
		}
		for _, card := range cards {
			if !strings.HasPrefix(card.Front, "다음 내용에 대해 설명하세요: ") {
				t.Errorf("fallback front missing prefix: %q", card.Front)
			}
			if !strings.HasSuffix(card.Front, "...") {
				t.Errorf("fallback front missing trailing ellipsis: %q", card.Front)
			}
			if card.Back == "" {
				t.Error("fallback card has empty back")
			}
		}
	})

	t.Run("fronts are truncated at 50 runes", func(t *testing.T) {
		long := strings.Repeat("가", 80)
		cards := ParseFlashcards(long + ".")
		if len(cards) != 1 {
			t.Fatalf("got %d cards, want 1", len(cards))
		}
		want := "다음 내용에 대해 설명하세요: " + strings.Repeat("가", 50) + "..."
		if cards[0].Front != want {
			t.Errorf("front = %q, want %q", cards[0].Front, want)
		}
		if cards[0].Back != long {
			t.Errorf("back should be the full sentence")
		}
	})

	t.Run("at most ten cards", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 20; i++ {
			sb.WriteString(strings.Repeat("나", 30))
			sb.WriteString(". ")
		}
		cards := ParseFlashcards(sb.String())
		if len(cards) != 10 {
			t.Errorf("got %d cards, want 10", len(cards))
		}
	})

	t.Run("empty input yields no cards", func(t *testing.T) {
		if cards := ParseFlashcards(""); len(cards) != 0 {
			t.Errorf("got %d cards, want 0", len(cards))
		}
	})
}

func TestParseCornellNotes(t *testing.T) {
	t.Run("all three sections", func(t *testing.T) {
		content := "=== CUE COLUMN ===\n- 광합성\n- 엽록체\n" +
			"=== NOTE TAKING AREA ===\n- 빛 에너지를 화학 에너지로 전환\n추가 설명 문단\n" +
			"=== SUMMARY ===\n광합성은 식물의 에너지 생산 과정이다.\n두 번째 줄."

		got := ParseCornellNotes(content)

		if got.Cues != "• 광합성<br>• 엽록체" {
			t.Errorf("cues = %q", got.Cues)
		}
		if got.Notes != "• 빛 에너지를 화학 에너지로 전환<br><br>추가 설명 문단" {
			t.Errorf("notes = %q", got.Notes)
		}
		if got.Summary != "광합성은 식물의 에너지 생산 과정이다. 두 번째 줄." {
			t.Errorf("summary = %q", got.Summary)
		}
	})

	t.Run("missing summary marker keeps notes", func(t *testing.T) {
		content := "=== CUE COLUMN ===\n- 키워드\n=== NOTE TAKING AREA ===\n내용 문단"
		got := ParseCornellNotes(content)

		if got.Cues != "• 키워드" {
			t.Errorf("cues = %q", got.Cues)
		}
		if got.Notes != "내용 문단" {
			t.Errorf("notes = %q", got.Notes)
		}
		if got.Summary != summaryEmpty {
			t.Errorf("summary = %q, want placeholder", got.Summary)
		}
	})

	t.Run("no markers degrades whole content to notes", func(t *testing.T) {
		got := ParseCornellNotes("줄 하나\n줄 둘")

		if got.Cues != cuesFallback {
			t.Errorf("cues = %q, want %q", got.Cues, cuesFallback)
		}
		if got.Notes != "줄 하나<br>줄 둘" {
			t.Errorf("notes = %q", got.Notes)
		}
		if got.Summary != summaryFallback {
			t.Errorf("summary = %q, want %q", got.Summary, summaryFallback)
		}
	})

	t.Run("empty cue section gets placeholder", func(t *testing.T) {
		content := "=== CUE COLUMN ===\n\n=== NOTE TAKING AREA ===\n내용\n=== SUMMARY ===\n요약"
		got := ParseCornellNotes(content)

		if got.Cues != cuesEmpty {
			t.Errorf("cues = %q, want %q", got.Cues, cuesEmpty)
		}
		if got.Notes != "내용" {
			t.Errorf("notes = %q", got.Notes)
		}
		if got.Summary != "요약" {
			t.Errorf("summary = %q", got.Summary)
		}
	})

	t.Run("bullet glyphs are normalized", func(t *testing.T) {
		content := "=== CUE COLUMN ===\n• 이미 글머리\n맨글\n=== NOTE TAKING AREA ===\n- 항목\n=== SUMMARY ===\nS"
		got := ParseCornellNotes(content)

		if got.Cues != "• 이미 글머리<br>• 맨글" {
			t.Errorf("cues = %q", got.Cues)
		}
		if got.Notes != "• 항목" {
			t.Errorf("notes = %q", got.Notes)
		}
	})
}
