// prompts.go builds the per-content-kind prompt strings.
//
// Each builder embeds a document excerpt truncated to a kind-specific
// character cap to stay inside the model's context window. The templates fix
// the output format with literal markers so the study parser can split the
// response deterministically-ish (the model still drifts, which is why the
// parser carries fallbacks).
package generator

import "fmt"

// Per-kind excerpt caps, in bytes of UTF-8 text.
const (
	summaryCap     = 3000
	quizCap        = 2000
	flashcardCap   = 3000
	cornellCap     = 4000
	notesCap       = 3000
	answerCap      = 4000
	docPreviewCap  = 1000
)

// excerpt truncates text to max bytes without splitting a multi-byte rune.
func excerpt(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && (text[cut]&0xC0) == 0x80 {
		cut--
	}
	return text[:cut]
}

func buildSummaryPrompt(text string, maxLength int) string {
	return fmt.Sprintf(`다음 텍스트를 %d자 이내로 요약해주세요.
주요 개념과 핵심 내용을 포함하여 학습에 도움이 되도록 요약해주세요.

텍스트:
%s`, maxLength, excerpt(text, summaryCap))
}

func buildMultipleChoiceQuizPrompt(text string, numQuestions int) string {
	return fmt.Sprintf(`다음 텍스트를 바탕으로 %d개의 객관식 퀴즈를 생성해주세요.
각 문제는 4개의 선택지를 가지고, 정답은 1개입니다.

형식:
Q1: [질문]
1) [선택지1]
2) [선택지2]
3) [선택지3]
4) [선택지4]
정답: [번호]
해설: [간단한 설명]

텍스트:
%s`, numQuestions, excerpt(text, quizCap))
}

func buildShortAnswerQuizPrompt(text string, numQuestions int) string {
	return fmt.Sprintf(`다음 텍스트를 바탕으로 %d개의 단답형 퀴즈를 생성해주세요.
각 문제는 간단한 단어나 구문으로 답할 수 있어야 합니다.

형식:
Q1: [질문]
정답: [단답]
해설: [간단한 설명]

텍스트:
%s`, numQuestions, excerpt(text, quizCap))
}

func buildFlashcardPrompt(text string, numCards int) string {
	return fmt.Sprintf(`다음 텍스트를 바탕으로 %d개의 학습 플래시카드를 생성해주세요.
각 카드는 앞면(질문/개념)과 뒷면(답변/설명)으로 구성됩니다.

형식:
카드 1:
앞면: [핵심 개념이나 질문]
뒷면: [상세한 설명이나 답변]

카드 2:
앞면: [핵심 개념이나 질문]
뒷면: [상세한 설명이나 답변]

플래시카드는 다음과 같은 유형으로 만들어주세요:
- 정의 암기 (개념 → 정의)
- 공식 암기 (공식명 → 공식)
- 예시 문제 (문제 → 해답)
- 핵심 키워드 (키워드 → 설명)

텍스트:
%s`, numCards, excerpt(text, flashcardCap))
}

// cornellStyles maps style names to prompt instructions.
var cornellStyles = map[string]string{
	"standard":     "균형잡힌 구성으로 핵심 내용과 세부사항을 적절히 포함",
	"detailed":     "상세한 설명과 예시를 중심으로 깊이 있는 내용 구성",
	"exam_focused": "시험에 나올 만한 핵심 개념과 중요 포인트 중심으로 구성",
}

func buildCornellPrompt(text, style string) string {
	instruction, ok := cornellStyles[style]
	if !ok {
		instruction = cornellStyles["standard"]
	}

	return fmt.Sprintf(`다음 내용을 코넬 노트 필기법에 따라 정리해주세요. 반드시 아래 형식을 정확히 따라주세요:

작성 스타일: %s

내용: %s

다음 형식으로 정리해주세요:

=== CUE COLUMN ===
(핵심 키워드와 질문들을 한 줄씩 작성)
- 키워드1
- 키워드2
- 질문: 핵심 질문?

=== NOTE TAKING AREA ===
(상세한 내용을 체계적으로 작성)
• 주요 개념 설명
• 구체적인 내용과 예시
• 중요한 포인트들

=== SUMMARY ===
(전체 내용을 2-3문장으로 요약)
핵심 내용을 간단명료하게 요약한 문장들...`, instruction, excerpt(text, cornellCap))
}

// noteStyles maps study-note styles to layout instructions.
var noteStyles = map[string]string{
	"bullet":  "불릿 포인트 형식으로 정리",
	"outline": "아웃라인 형식으로 정리",
	"mindmap": "마인드맵 형식으로 정리",
}

func buildStudyNotesPrompt(text, style string) string {
	instruction, ok := noteStyles[style]
	if !ok {
		instruction = noteStyles["bullet"]
	}

	return fmt.Sprintf(`다음 텍스트를 학습 노트로 %s해주세요.
학생이 복습하기 쉽도록 핵심 개념, 정의, 예시를 포함해주세요.

텍스트:
%s`, instruction, excerpt(text, notesCap))
}

func buildAnswerPrompt(text, question string) string {
	return fmt.Sprintf(`다음 텍스트를 바탕으로 질문에 답변해주세요.

텍스트:
%s

질문: %s

답변:`, excerpt(text, answerCap), question)
}

func buildDocumentSummaryPrompt(name, text string) string {
	return fmt.Sprintf(`다음 문서의 핵심 내용을 2-3줄로 요약해주세요:

문서명: %s
내용: %s`, name, excerpt(text, docPreviewCap))
}
