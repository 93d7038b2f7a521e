package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/llm"
	"github.com/evida/coach-api/internal/prompt"
)

// mockChatClient returns scripted responses in call order.
type mockChatClient struct {
	responses []string
	errs      []error
	calls     int
	// temperatures observed per call, in order
	temperatures []float64
}

func (m *mockChatClient) Complete(ctx context.Context, messages []llm.Message, temperature float64) (string, error) {
	i := m.calls
	m.calls++
	m.temperatures = append(m.temperatures, temperature)

	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", errors.New("unexpected call")
}

const validAnalysis = `{
	"reasoning_trace": ["sleep average is below baseline"],
	"data_references": [{"metric_path": "aggregates.average_sleep_hours", "value": 6.2, "window_days": 14, "comparison": "vs baseline"}],
	"recommendations": [{"category": "sleep", "action": "Set a fixed bedtime", "why": "Low sleep average", "priority": "high", "timeframe": "next 7 days", "success_metric": "average_sleep_hours +30min"}],
	"follow_ups": [],
	"safety": {"disclaimer": "Not medical advice.", "red_flags": []}
}`

const coachVoiceAnswer = `{"answer": "Your sleep has dipped lately; a fixed bedtime should help."}`

func testWearables() *domain.WearablesSummary {
	return &domain.WearablesSummary{WindowDays: 14}
}

func newTestCoachService(chat llm.ChatClient) CoachService {
	return NewCoachService(chat, prompt.NewStaticProvider(""))
}

func TestGenerateHappyPath(t *testing.T) {
	mock := &mockChatClient{responses: []string{validAnalysis, coachVoiceAnswer}}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if mock.calls != 2 {
		t.Errorf("model calls = %d, want 2 (analysis + coach voice)", mock.calls)
	}
	answer, _ := payload["answer"].(string)
	if !strings.Contains(answer, "fixed bedtime") {
		t.Errorf("answer = %q, want coach-voice text", answer)
	}
	if payload["message"] != payload["answer"] {
		t.Errorf("message = %v, want alias of answer", payload["message"])
	}
	if _, ok := payload["safety"].(map[string]any); !ok {
		t.Error("safety block missing from merged payload")
	}
	if len(mock.temperatures) == 2 && (mock.temperatures[0] != analysisTemperature || mock.temperatures[1] != coachVoiceTemperature) {
		t.Errorf("temperatures = %v", mock.temperatures)
	}
}

func TestGenerateFencedAnalysisAccepted(t *testing.T) {
	fenced := "```json\n" + validAnalysis + "\n```"
	mock := &mockChatClient{responses: []string{fenced, coachVoiceAnswer}}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if mock.calls != 2 {
		t.Errorf("model calls = %d, want 2 (no repair for fenced output)", mock.calls)
	}
	if _, ok := payload["reasoning_trace"]; !ok {
		t.Error("reasoning_trace missing")
	}
}

func TestGenerateAnalysisRepairedOnce(t *testing.T) {
	mock := &mockChatClient{responses: []string{
		`{"nonsense": true}`, // invalid analysis
		validAnalysis,        // repair succeeds
		coachVoiceAnswer,
	}}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if mock.calls != 3 {
		t.Errorf("model calls = %d, want 3 (analysis + repair + coach voice)", mock.calls)
	}
	if len(mock.temperatures) == 3 && mock.temperatures[1] != repairTemperature {
		t.Errorf("repair temperature = %v, want %v", mock.temperatures[1], repairTemperature)
	}
	answer, _ := payload["answer"].(string)
	if answer == "" {
		t.Error("answer is empty after repair")
	}
}

func TestGenerateAnalysisRepairFailsFallsBack(t *testing.T) {
	mock := &mockChatClient{responses: []string{
		`{"nonsense": true}`,       // invalid analysis
		`{"still": "not valid"}`,   // repair also invalid
	}}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// Exactly one repair attempt, then the static fallback; no second repair.
	if mock.calls != 2 {
		t.Errorf("model calls = %d, want 2", mock.calls)
	}
	answer, _ := payload["answer"].(string)
	if !strings.Contains(answer, "try again") {
		t.Errorf("answer = %q, want fallback text", answer)
	}
}

func TestGenerateTransportErrorSkipsRepair(t *testing.T) {
	mock := &mockChatClient{errs: []error{llm.ErrRequest}}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// A transport failure goes straight to fallback with no repair call.
	if mock.calls != 1 {
		t.Errorf("model calls = %d, want 1", mock.calls)
	}
	answer, _ := payload["answer"].(string)
	if !strings.Contains(answer, "couldn't generate a response") {
		t.Errorf("answer = %q, want fallback text", answer)
	}
}

func TestGenerateNotConfiguredSurfaces(t *testing.T) {
	svc := newTestCoachService((*llm.OpenAIClient)(nil))

	_, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestGenerateBlankCoachVoiceCoalesced(t *testing.T) {
	mock := &mockChatClient{
		responses: []string{validAnalysis, `{"answer": ""}`},
	}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	answer, _ := payload["answer"].(string)
	if !strings.Contains(answer, "Set a fixed bedtime") {
		t.Errorf("answer = %q, want recommendation bullets", answer)
	}
}

func TestGenerateCoachVoiceTransportErrorStillAnswers(t *testing.T) {
	mock := &mockChatClient{
		responses: []string{validAnalysis, ""},
		errs:      []error{nil, llm.ErrRequest},
	}
	svc := newTestCoachService(mock)

	payload, err := svc.Generate(context.Background(), testWearables(), domain.CoachingContext{}, "How is my sleep?")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// The rewrite is advisory; its failure degrades to coalesced bullets.
	answer, _ := payload["answer"].(string)
	if strings.TrimSpace(answer) == "" {
		t.Error("answer is blank after coach-voice failure")
	}
}
