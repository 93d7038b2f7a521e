package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model output rarely arrives as clean JSON. ParseResponse is a small
// chain-of-responsibility parser: strict structured parse, then a narrowly
// scoped single-field extraction, then raw-text wrapping. Every strategy
// is total; the chain always yields a payload and never fails.

var (
	codeFencePattern = regexp.MustCompile(`(?im)^\s*` + "```" + `(?:json)?|\s*` + "```" + `$`)
	answerPattern    = regexp.MustCompile(`"answer"\s*:\s*"([^"]*)"`)
)

// StripCodeFences removes leading/trailing Markdown code-fence markers.
func StripCodeFences(text string) string {
	return codeFencePattern.ReplaceAllString(strings.TrimSpace(text), "")
}

// ParseResponse interprets raw model text as a JSON object payload.
// Strategies, in order:
//  1. strict JSON parse of the fence-stripped text;
//  2. regex extraction of a quoted "answer" value, unescaping \n;
//  3. the cleaned text itself as the literal answer.
func ParseResponse(raw string) map[string]any {
	cleaned := strings.TrimSpace(StripCodeFences(raw))

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil && payload != nil {
		return payload
	}

	if match := answerPattern.FindStringSubmatch(cleaned); match != nil {
		return map[string]any{"answer": strings.ReplaceAll(match[1], `\n`, "\n")}
	}

	return map[string]any{"answer": cleaned}
}

// EnsureMessageAlias copies answer into message when message is absent.
// The UI reads message; the schema requires answer.
func EnsureMessageAlias(payload map[string]any) map[string]any {
	if _, ok := payload["message"]; !ok {
		if answer, ok := payload["answer"]; ok {
			payload["message"] = answer
		}
	}
	return payload
}

// CoalesceBlankAnswer guarantees a non-blank answer. A blank answer is
// replaced by a bullet list built from the first five recommendation
// actions, or by a fixed apology when no actions exist.
func CoalesceBlankAnswer(payload map[string]any) map[string]any {
	answer, _ := payload["answer"].(string)
	if strings.TrimSpace(answer) != "" {
		return payload
	}

	if actions := recommendationActions(payload); len(actions) > 0 {
		if len(actions) > 5 {
			actions = actions[:5]
		}
		var b strings.Builder
		b.WriteString("Here are the most relevant next steps based on your data:\n")
		for _, action := range actions {
			b.WriteString("\n- ")
			b.WriteString(action)
		}
		payload["answer"] = b.String()
		payload["message"] = payload["answer"]
		return payload
	}

	payload["answer"] = "I couldn't generate a complete response. Please try again."
	payload["message"] = payload["answer"]
	return payload
}

func recommendationActions(payload map[string]any) []string {
	recommendations, ok := payload["recommendations"].([]any)
	if !ok {
		return nil
	}
	var actions []string
	for _, rec := range recommendations {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		if action, ok := obj["action"].(string); ok && strings.TrimSpace(action) != "" {
			actions = append(actions, strings.TrimSpace(action))
		}
	}
	return actions
}

// FallbackResponse is the static, schema-valid payload returned when every
// recovery attempt has failed. Built from a JSON literal so the payload
// consists of plain decoded-JSON types.
func FallbackResponse() map[string]any {
	const fallback = `{
		"answer": "I couldn't generate a response right now. Please try again in a moment.",
		"message": "I couldn't generate a response right now. Please try again in a moment.",
		"reasoning_trace": [],
		"data_references": [],
		"recommendations": [],
		"follow_ups": [],
		"safety": {"disclaimer": "", "red_flags": []}
	}`
	var payload map[string]any
	if err := json.Unmarshal([]byte(fallback), &payload); err != nil {
		panic(err)
	}
	return payload
}
