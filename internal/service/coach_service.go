package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/llm"
	"github.com/evida/coach-api/internal/prompt"
	"github.com/evida/coach-api/internal/schema"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	analysisTemperature   = 0.6
	coachVoiceTemperature = 0.5
	repairTemperature     = 0.2
)

// CoachService runs the two-stage generation pipeline: a structured
// analysis pass validated against the analysis schema, then a coach-voice
// rewrite of the answer, with the merged payload validated against the
// response schema. Each validation stage gets at most one repair attempt
// before the static fallback wins.
type CoachService interface {
	Generate(ctx context.Context, wearables *domain.WearablesSummary, coaching domain.CoachingContext, query string) (map[string]any, error)
}

type coachService struct {
	chat    llm.ChatClient
	prompts prompt.Provider
}

// NewCoachService creates a CoachService backed by the given chat client
// and prompt provider.
func NewCoachService(chat llm.ChatClient, prompts prompt.Provider) CoachService {
	return &coachService{chat: chat, prompts: prompts}
}

func (s *coachService) Generate(ctx context.Context, wearables *domain.WearablesSummary, coaching domain.CoachingContext, query string) (map[string]any, error) {
	tracer := otel.Tracer("coach-api/coach")
	ctx, span := tracer.Start(ctx, "CoachService.Generate",
		trace.WithAttributes(
			attribute.String("langfuse.observation.input", query),
		),
	)
	defer span.End()

	var summary domain.WearablesSummary
	if wearables != nil {
		summary = *wearables
	}
	bundle, err := s.prompts.Render(prompt.Input{
		WearablesSummary: summary,
		CoachingContext:  coaching,
		UserQuery:        query,
		ResponseSchema:   schema.AnalysisJSON(),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return llm.FallbackResponse(), nil
	}

	raw, err := s.chat.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: bundle.System},
		{Role: llm.RoleDeveloper, Content: bundle.Developer},
		{Role: llm.RoleUser, Content: bundle.User},
	}, analysisTemperature)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		// Transport failures skip repair and go straight to the fallback.
		span.SetStatus(codes.Error, err.Error())
		return llm.FallbackResponse(), nil
	}

	analysis := llm.ParseResponse(raw)
	if err := schema.Validate(analysis, schema.Analysis()); err != nil {
		span.AddEvent("analysis repair")
		repaired, ok := s.repair(ctx, analysis, schema.AnalysisJSON(), schema.Analysis(), nil)
		if !ok {
			return llm.FallbackResponse(), nil
		}
		analysis = repaired
	}

	answer := s.coachVoice(ctx, query, analysis)

	merged := make(map[string]any, len(analysis)+2)
	for k, v := range analysis {
		merged[k] = v
	}
	merged["answer"] = answer
	merged = llm.CoalesceBlankAnswer(llm.EnsureMessageAlias(merged))

	if err := schema.Validate(merged, schema.Response()); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", answerOf(merged)))
		return merged, nil
	}

	span.AddEvent("response repair")
	post := func(payload map[string]any) map[string]any {
		return llm.CoalesceBlankAnswer(llm.EnsureMessageAlias(payload))
	}
	repaired, ok := s.repair(ctx, merged, schema.ResponseJSON(), schema.Response(), post)
	if !ok {
		return llm.FallbackResponse(), nil
	}
	span.SetAttributes(attribute.String("langfuse.observation.output", answerOf(repaired)))
	return repaired, nil
}

// repair asks the model to rewrite an invalid payload so it conforms to
// the given schema. A repair that fails to validate (or to arrive at all)
// reports !ok; the caller decides what wins instead.
func (s *coachService) repair(ctx context.Context, bad map[string]any, schemaJSON json.RawMessage, sch *jsonschema.Schema, post func(map[string]any) map[string]any) (map[string]any, bool) {
	if bad == nil {
		bad = map[string]any{}
	}
	badJSON, err := json.MarshalIndent(bad, "", "  ")
	if err != nil {
		return nil, false
	}

	user := strings.Join([]string{
		"SCHEMA:",
		string(schemaJSON),
		"INVALID_PAYLOAD:",
		string(badJSON),
	}, "\n\n")

	raw, err := s.chat.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.RepairSystem},
		{Role: llm.RoleUser, Content: user},
	}, repairTemperature)
	if err != nil {
		return nil, false
	}

	payload := llm.ParseResponse(raw)
	if post != nil {
		payload = post(payload)
	}
	if err := schema.Validate(payload, sch); err != nil {
		return nil, false
	}
	return payload, true
}

// coachVoice rewrites the structured analysis as a warm, plain-language
// answer. The rewrite is advisory text only, so its output is never
// schema-validated; any failure simply yields an empty answer for the
// blank-answer coalescing to fill.
func (s *coachService) coachVoice(ctx context.Context, query string, analysis map[string]any) string {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return ""
	}

	user := strings.Join([]string{
		"USER_QUERY:",
		strings.TrimSpace(query),
		"ANALYSIS_JSON:",
		string(analysisJSON),
	}, "\n\n")

	raw, err := s.chat.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.CoachVoiceSystem},
		{Role: llm.RoleUser, Content: user},
	}, coachVoiceTemperature)
	if err != nil {
		return ""
	}

	payload := llm.ParseResponse(raw)
	answer, _ := payload["answer"].(string)
	return strings.TrimSpace(answer)
}

func answerOf(payload map[string]any) string {
	answer, _ := payload["answer"].(string)
	return answer
}
