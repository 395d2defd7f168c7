// Package prompts builds the instruction text sent to the generation relay.
// Every function is pure: the same inputs always produce the same prompt.
package prompts

import (
	"fmt"
	"strings"
)

// Context caps, counted in runes
const (
	MaxDocumentContext   = 1_000_000
	MaxExtractionContext = 700_000
	MaxWebContext        = 200_000
)

var typeRules = map[string]string{
	"MCQ":     "- Standard 4-option multiple choice.",
	"Passage": "- Use 'passage_text' for a 300-word context. Link multiple questions to this same 'passage_text'.",
	"Figure Logic": `- MANDATORY: Use 'matrix' field (flat list of 9 symbols).
      - Symbols ONLY: ↑, ↓, ←, →, ↗, ↘, ↙, ↖, ⚪, ⚫, ⬔, ⬓, ⬒, ⬑, ⬏, 🧩, ⬖, ⬗, ➕, ➖, ✖, ➗, ❓.
      - NO text descriptions of shapes allowed in the matrix.`,
	"Short Answer": "- Provide a 'question' and a 'model_answer'. Set 'options' and 'answer' to null.",
}

const questionSchema = `{
        "type": "Passage | Figure Logic | MCQ | Short Answer",
        "question": "Clear and concise question text",
        "options": ["A", "B", "C", "D"] or null,
        "answer": "Exact string matching one option" or null,
        "explanation": "Step-by-step logic",
        "passage_text": "Required for Passage type",
        "matrix": ["symbol1", ..., "symbol9"] for Figure Logic,
        "model_answer": "Required for Short Answer type"
    }`

// ExamPrompt asks for total questions on topic. Each requested type with a
// known rule block contributes that block; unknown types are listed but add
// no rules.
func ExamPrompt(topic, difficulty string, total int, types []string) string {
	rules := make([]string, 0, len(types))
	for _, t := range types {
		if rule, ok := typeRules[t]; ok {
			rules = append(rules, rule)
		}
	}
	typeList := formatTypes(types)

	return fmt.Sprintf(`
    ROLE: Lead Examiner for UPSC/SSC (Group A Standards).
    TASK: Generate %d questions for Topic: %s.
    DIFFICULTY: %s.
    TYPES TO INCLUDE: %s.

    STRICT RULES:
    1. DISTRIBUTION: Ensure a balanced mix of %s. Interleave types; do not put all of one type together.
    2. CONTENT RULES:
    %s
    3. VALIDATION: Every question must have a 'type' and 'explanation'.
    4. FORMAT: Return ONLY a valid JSON array. Do not include markdown preamble.

    JSON SCHEMA:
    %s
    `, total, topic, difficulty, typeList, typeList, strings.Join(rules, "\n"), questionSchema)
}

// DocumentPrompt asks for questions drawn only from an uploaded document
func DocumentPrompt(contextText, difficulty string, total int, types []string) string {
	return fmt.Sprintf(`
    [SYSTEM INSTRUCTION]: You are a JSON-only generator. No preamble. No conversational text.

    [CONTEXT]:
    %s

    [TASK]:
    Generate exactly %d questions based ONLY on the context above.
    Difficulty: %s
    Allowed Types: %s

    [OUTPUT RULES]:
    1. Start your response immediately with '[' and end with ']'.
    2. Do NOT use markdown code blocks (No `+"```json"+`).
    3. Ensure every object has: "type", "question", "options", "answer", "explanation".
    4. For Figure Logic, use the "matrix" field with Unicode symbols ONLY.
    `, Truncate(contextText, MaxDocumentContext), total, difficulty, formatTypes(types))
}

// AnchoredExtractionPrompt asks for limit questions copied out of marked
// document text, starting at the question whose sequence marker is start.
// The limit is an instruction only; nothing here can cut the stream short.
func AnchoredExtractionPrompt(markedText string, start, limit int) string {
	return fmt.Sprintf(`
[SYSTEM]: You are a high-precision JSON API. No preamble. No conversational text.
[TASK]: Convert the provided exam PDF text into a JSON array of exactly %[2]d questions.

[ANCHOR RULE]:
- Every question in the context is preceded by [[Q_BOUNDARY]] and a sequence marker [[SEQ:n]].
- Printed question numbers may repeat across sections; use ONLY the [[SEQ:n]] markers to navigate.
- Begin with the question marked [[SEQ:%[1]d]] and continue in marker order.

[STRICT QUANTITY RULE]:
- You MUST generate exactly %[2]d question objects.
- DO NOT generate more than %[2]d questions, even if the context contains hundreds.
- If you reach %[2]d questions, close the JSON array with ']' and STOP immediately.

[CRITICAL RULE FOR VISUAL LOGIC]:
Convert all non-textual elements (figures, patterns, dice, matrices) into TEXT or ASCII art.
- Dice: Describe positions, e.g., "Dice Pos 1: Top(6), Front(2), Right(3)".
- Figure Series: Use ASCII or specific descriptions, e.g., "Step 1: Arrow pointing UP inside a circle -> Step 2: Arrow pointing RIGHT inside a square".
- Matrices/Grids: Draw using pipes and dashes, e.g., "| 5 | 8 | ? |".
- Visual Options: If options are figures, describe the differences, e.g., "Option 1: Triangle rotated 90 deg clockwise".

[OUTPUT SCHEMA]:
[
  {
    "question": "Question text + ASCII diagram if applicable",
    "options": ["Option 1 content", "Option 2 content", "Option 3 content", "Option 4 content"],
    "answer": "Option X",
    "explanation": "Brief logical derivation"
  }
]

[CONTEXT]:
%[3]s
`, start, limit, Truncate(markedText, MaxExtractionContext))
}

// WebPrompt asks for questions drawn only from a fetched web page
func WebPrompt(pageText, difficulty string, total int, types []string) string {
	return fmt.Sprintf(`
    [CONTEXT FROM WEBSITE]:
    %s

    [TASK]:
    Generate %d questions based ONLY on the website content.
    Difficulty: %s
    Types: %s

    [STRICT RULE]: Output ONLY a raw JSON array. Start with '['.
    `, Truncate(pageText, MaxWebContext), total, difficulty, formatTypes(types))
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// formatTypes renders types as a quoted list: ['MCQ', 'Passage']
func formatTypes(types []string) string {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
