package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/evida/coach-api/internal/llm"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

func TestResponseSchemaAcceptsValidPayload(t *testing.T) {
	payload := decode(t, `{
		"answer": "Sleep first.",
		"reasoning_trace": ["average sleep below baseline"],
		"data_references": [{"metric_path": "aggregates.average_sleep_hours", "value": 6.4, "window_days": 14, "comparison": "vs baseline"}],
		"recommendations": [],
		"follow_ups": [],
		"safety": {"disclaimer": "Not medical advice.", "red_flags": []}
	}`)

	if err := Validate(payload, Response()); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
}

func TestResponseSchemaRejectsMissingAnswer(t *testing.T) {
	payload := decode(t, `{
		"reasoning_trace": [],
		"data_references": [],
		"recommendations": [],
		"follow_ups": [],
		"safety": {"disclaimer": "", "red_flags": []}
	}`)

	if err := Validate(payload, Response()); err == nil {
		t.Error("payload without answer accepted")
	}
}

func TestResponseSchemaRejectsEmptyAnswer(t *testing.T) {
	payload := decode(t, `{
		"answer": "",
		"reasoning_trace": [],
		"data_references": [],
		"recommendations": [],
		"follow_ups": [],
		"safety": {"disclaimer": "", "red_flags": []}
	}`)

	if err := Validate(payload, Response()); err == nil {
		t.Error("payload with empty answer accepted (minLength 1)")
	}
}

func TestResponseSchemaRejectsBadRecommendation(t *testing.T) {
	payload := decode(t, `{
		"answer": "x",
		"reasoning_trace": [],
		"data_references": [],
		"recommendations": [{"category": "jogging", "action": "run", "why": "w", "priority": "high", "timeframe": "now", "success_metric": "m"}],
		"follow_ups": [],
		"safety": {"disclaimer": "", "red_flags": []}
	}`)

	if err := Validate(payload, Response()); err == nil {
		t.Error("recommendation with out-of-enum category accepted")
	}
}

func TestAnalysisSchemaDoesNotRequireAnswer(t *testing.T) {
	payload := decode(t, `{
		"reasoning_trace": [],
		"data_references": [],
		"recommendations": [],
		"follow_ups": [],
		"safety": {"disclaimer": "", "red_flags": []}
	}`)

	if err := Validate(payload, Analysis()); err != nil {
		t.Errorf("analysis payload rejected: %v", err)
	}
}

func TestFallbackResponseValidates(t *testing.T) {
	if err := Validate(llm.FallbackResponse(), Response()); err != nil {
		t.Errorf("static fallback fails response schema: %v", err)
	}
}

func TestSchemaJSONRoundTrips(t *testing.T) {
	for name, raw := range map[string]json.RawMessage{
		"analysis": AnalysisJSON(),
		"response": ResponseJSON(),
	} {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Errorf("%s schema document is not valid JSON: %v", name, err)
		}
	}

	if !strings.Contains(string(ResponseJSON()), `"required": ["answer"`) {
		t.Error("response schema does not list answer first in required")
	}
}
