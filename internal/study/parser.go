// Package study holds the study-content parser and the flashcard review
// session. This is the one genuinely stateful corner of the application:
// everything else is extract → prompt → call → persist.
package study

import (
	"strings"
)

// Flashcard is a front/back question-answer pair. Immutable once parsed.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// CornellSections is the three-region Cornell note layout. Each field is
// line-break formatted display text; a section that could not be parsed
// carries a placeholder string instead.
type CornellSections struct {
	Cues    string `json:"cues"`
	Notes   string `json:"notes"`
	Summary string `json:"summary"`
}

// Section markers the Cornell prompt instructs the model to emit.
const (
	cueMarker     = "=== CUE COLUMN ==="
	noteMarker    = "=== NOTE TAKING AREA ==="
	summaryMarker = "=== SUMMARY ==="
)

// Placeholder strings for degraded sections.
const (
	cuesFallback    = "키워드 추출 필요"
	summaryFallback = "요약 작성 필요"
	cuesEmpty       = "키워드를 추출하지 못했습니다."
	notesEmpty      = "상세 내용을 생성하지 못했습니다."
	summaryEmpty    = "요약을 생성하지 못했습니다."
)

// explainPrefix fronts the synthesized fallback cards.
const explainPrefix = "다음 내용에 대해 설명하세요: "

// Fallback synthesis bounds.
const (
	fallbackMinSentence = 20 // runes; shorter sentences are noise
	fallbackFrontLen    = 50 // runes kept on the card front
	fallbackMaxCards    = 10
)

// ParseFlashcards converts generator output into an ordered card sequence.
//
// The model is asked for 카드 N: / 앞면: / 뒷면: blocks, but its output drifts,
// so the scan is permissive: a line starting with a card marker flushes the
// in-progress card, and front/back marker lines (Korean or English) set the
// corresponding field. If the marker scan finds nothing, cards are
// synthesized from sentences instead. Never returns an error — degenerate
// input yields an empty slice.
func ParseFlashcards(content string) []Flashcard {
	var cards []Flashcard
	var current Flashcard

	flush := func() {
		if current.Front != "" || current.Back != "" {
			cards = append(cards, current)
		}
		current = Flashcard{}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case isCardMarker(line):
			flush()
		case hasMarker(line, "앞면:", "질문:", "front:", "question:"):
			current.Front = markerValue(line)
		case hasMarker(line, "뒷면:", "답변:", "back:", "answer:"):
			current.Back = markerValue(line)
		}
	}
	flush()

	if len(cards) == 0 {
		cards = synthesizeCards(content)
	}
	return cards
}

// isCardMarker reports whether the line starts a new card block,
// e.g. "카드 1:" or "Card 2:".
func isCardMarker(line string) bool {
	if !strings.Contains(line, ":") {
		return false
	}
	return strings.HasPrefix(line, "카드") || strings.HasPrefix(strings.ToLower(line), "card")
}

func hasMarker(line string, markers ...string) bool {
	lower := strings.ToLower(line)
	for _, m := range markers {
		if strings.HasPrefix(lower, m) {
			return true
		}
	}
	return false
}

// markerValue returns the text after the first colon, trimmed.
func markerValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

// synthesizeCards builds explain-this cards from sentences when the marker
// scan found nothing. Only sentences longer than 20 characters qualify, and
// at most 10 cards are produced.
func synthesizeCards(content string) []Flashcard {
	var cards []Flashcard
	for _, sentence := range strings.Split(content, ".") {
		sentence = strings.TrimSpace(sentence)
		runes := []rune(sentence)
		if len(runes) <= fallbackMinSentence {
			continue
		}

		front := sentence
		if len(runes) > fallbackFrontLen {
			front = string(runes[:fallbackFrontLen])
		}
		cards = append(cards, Flashcard{
			Front: explainPrefix + front + "...",
			Back:  sentence,
		})
		if len(cards) >= fallbackMaxCards {
			break
		}
	}
	return cards
}

// ParseCornellNotes splits generator output at the three literal section
// markers, in order. Absent markers degrade: the whole content lands in the
// notes area and the other sections get fixed placeholders. A present but
// empty section gets its own placeholder without touching its siblings.
// Never returns an error — the UI always has something renderable.
func ParseCornellNotes(content string) CornellSections {
	var cues, notes, summary string

	if _, afterCue, ok := strings.Cut(content, cueMarker); ok {
		if cuePart, remaining, ok := strings.Cut(afterCue, noteMarker); ok {
			cues = formatCueSection(strings.TrimSpace(cuePart))
			if notesPart, summaryPart, ok := strings.Cut(remaining, summaryMarker); ok {
				notes = formatNotesSection(strings.TrimSpace(notesPart))
				summary = formatSummarySection(strings.TrimSpace(summaryPart))
			} else {
				notes = formatNotesSection(strings.TrimSpace(remaining))
			}
		}
	}

	if cues == "" && notes == "" && summary == "" {
		return CornellSections{
			Cues:    cuesFallback,
			Notes:   strings.ReplaceAll(content, "\n", "<br>"),
			Summary: summaryFallback,
		}
	}

	if cues == "" {
		cues = cuesEmpty
	}
	if notes == "" {
		notes = notesEmpty
	}
	if summary == "" {
		summary = summaryEmpty
	}
	return CornellSections{Cues: cues, Notes: notes, Summary: summary}
}

// formatCueSection renders the cue column: every non-empty line becomes a
// bullet, with existing -/• markers normalized to a single glyph.
func formatCueSection(text string) string {
	var formatted []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "===") {
			continue
		}
		formatted = append(formatted, "• "+stripBullet(line))
	}
	if len(formatted) == 0 {
		return cuesEmpty
	}
	return strings.Join(formatted, "<br>")
}

// formatNotesSection renders the note-taking area: bullet lines are
// normalized, prose lines kept as-is, paragraphs separated by double breaks.
func formatNotesSection(text string) string {
	var formatted []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "===") {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
			formatted = append(formatted, "• "+stripBullet(line))
		} else {
			formatted = append(formatted, line)
		}
	}
	if len(formatted) == 0 {
		return notesEmpty
	}
	return strings.Join(formatted, "<br><br>")
}

// formatSummarySection collapses the summary to a single line of prose.
func formatSummarySection(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return summaryEmpty
	}
	return strings.ReplaceAll(text, "\n", " ")
}

// stripBullet removes a leading -/• marker so it can be re-added uniformly.
func stripBullet(line string) string {
	line = strings.TrimPrefix(line, "-")
	line = strings.TrimPrefix(line, "•")
	return strings.TrimSpace(line)
}
