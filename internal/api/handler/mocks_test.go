package handler

import (
	"context"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/langfuse"
	"github.com/evida/coach-api/internal/llm"
	"github.com/evida/coach-api/internal/meeting"
)

// mockCoachService records its inputs and returns a canned payload.
type mockCoachService struct {
	generateFunc  func(ctx context.Context, wearables *domain.WearablesSummary, coaching domain.CoachingContext, query string) (map[string]any, error)
	lastWearables *domain.WearablesSummary
	lastCoaching  domain.CoachingContext
	lastQuery     string
	calls         int
}

func (m *mockCoachService) Generate(ctx context.Context, wearables *domain.WearablesSummary, coaching domain.CoachingContext, query string) (map[string]any, error) {
	m.calls++
	m.lastWearables = wearables
	m.lastCoaching = coaching
	m.lastQuery = query
	if m.generateFunc != nil {
		return m.generateFunc(ctx, wearables, coaching, query)
	}
	return map[string]any{
		"answer":          "Keep your bedtime steady.",
		"message":         "Keep your bedtime steady.",
		"reasoning_trace": []any{},
		"data_references": []any{},
		"recommendations": []any{},
		"follow_ups":      []any{},
		"safety":          map[string]any{"disclaimer": "Not medical advice.", "red_flags": []any{}},
	}, nil
}

// mockMeetingClient serves meeting records from a map.
type mockMeetingClient struct {
	records map[string]*domain.Meeting
	calls   int
}

func (m *mockMeetingClient) GetMeeting(ctx context.Context, id string) (*domain.Meeting, error) {
	m.calls++
	if record, ok := m.records[id]; ok {
		return record, nil
	}
	return nil, meeting.ErrUnavailable
}

// mockLangfuseClient counts trace and score creations.
type mockLangfuseClient struct {
	enabled     bool
	traceCalls  int
	scoreCalls  int
	lastScore   langfuse.ScoreInput
	lastTraceID string
}

func (m *mockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traceCalls++
	m.lastTraceID = in.ID
	return in.ID, nil
}

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scoreCalls++
	m.lastScore = in
	return nil
}

// notConfiguredCoachService mimics a deployment with no model credential.
type notConfiguredCoachService struct{}

func (notConfiguredCoachService) Generate(ctx context.Context, wearables *domain.WearablesSummary, coaching domain.CoachingContext, query string) (map[string]any, error) {
	return nil, llm.ErrNotConfigured
}
