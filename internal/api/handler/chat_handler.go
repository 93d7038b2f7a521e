package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/evida/coach-api/internal/api/validation"
	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/langfuse"
	"github.com/evida/coach-api/internal/llm"
	"github.com/evida/coach-api/internal/meeting"
	"github.com/evida/coach-api/internal/service"
	"github.com/evida/coach-api/pkg/problem"
	"go.opentelemetry.io/otel/trace"
)

// ChatHandler handles the coaching chat endpoint.
type ChatHandler struct {
	summaryService service.SummaryService
	coachService   service.CoachService
	meetingClient  meeting.Client
	langfuseClient langfuse.Client
}

// NewChatHandler creates a new ChatHandler. meetingClient may be nil when
// no meeting-context service is configured.
func NewChatHandler(
	summaryService service.SummaryService,
	coachService service.CoachService,
	meetingClient meeting.Client,
	langfuseClient langfuse.Client,
) *ChatHandler {
	return &ChatHandler{
		summaryService: summaryService,
		coachService:   coachService,
		meetingClient:  meetingClient,
		langfuseClient: langfuseClient,
	}
}

// Chat handles POST /chat
// @Summary Ask the health coach
// @Description Generate a schema-validated coaching answer from wearable metrics, optional raw series and optional coaching context.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body domain.ChatRequest true "Chat request"
// @Success 200 {object} map[string]interface{} "Structured coaching response"
// @Failure 400 {object} problem.Problem "Malformed payload"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 502 {object} problem.Problem "Meeting context service unavailable"
// @Failure 503 {object} problem.Problem "Chat assistant not configured"
// @Router /chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	// metrics and query are the contract minimum; reject before any work
	if req.Metrics == nil {
		problem.BadRequest("metrics object is required").Write(w)
		return
	}
	if req.Query == "" {
		problem.BadRequest("query is required").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request validation failed", fieldErrors).Write(w)
		return
	}

	ctx := r.Context()

	wearables := h.buildWearables(ctx, &req)

	coaching, ok := h.buildCoachingContext(ctx, &req, w)
	if !ok {
		return
	}

	payload, err := h.coachService.Generate(ctx, wearables, coaching, req.Query)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			problem.ServiceUnavailable("Chat assistant is not configured").Write(w)
			return
		}
		problem.InternalError("Failed to generate response").Write(w)
		return
	}

	// Attach the OTel trace id so clients can score the exchange later.
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		payload["trace_id"] = span.SpanContext().TraceID().String()
	}

	if h.langfuseClient != nil && h.langfuseClient.IsEnabled() {
		traceID, _ := payload["trace_id"].(string)
		h.langfuseClient.CreateTrace(ctx, langfuse.TraceInput{
			ID:     traceID,
			Name:   "coach-chat",
			Input:  req.Query,
			Output: payload["answer"],
			Tags:   []string{"chat"},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// buildWearables computes the summary either from a raw series or from the
// client-supplied flat averages.
func (h *ChatHandler) buildWearables(ctx context.Context, req *domain.ChatRequest) *domain.WearablesSummary {
	if len(req.Series) > 0 {
		return h.summaryService.BuildWearablesSummary(ctx, req.Series, req.WindowDays)
	}

	summary := service.SummaryFromMetrics(req.Metrics)
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = service.DefaultWindowDays
	}
	return &domain.WearablesSummary{
		WindowDays:  windowDays,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Window:      summary,
		Baseline: domain.BaselineSummary{
			BaselineWindowDays: windowDays,
			SeriesSummary:      summary,
		},
		DerivedScores: service.ComputeScores(summary),
	}
}

// buildCoachingContext resolves coaching context in priority order: inline
// meeting record, meeting id via the meeting service, then user_context
// goals. The bool result is false when a problem response was already
// written.
func (h *ChatHandler) buildCoachingContext(ctx context.Context, req *domain.ChatRequest, w http.ResponseWriter) (domain.CoachingContext, bool) {
	if req.MeetingContext != nil {
		return meeting.CoachingContext(req.MeetingContext), true
	}

	if req.MeetingID != "" && h.meetingClient != nil {
		record, err := h.meetingClient.GetMeeting(ctx, req.MeetingID)
		if err != nil {
			problem.BadGateway("Meeting context service unavailable").Write(w)
			return domain.CoachingContext{}, false
		}
		return meeting.CoachingContext(record), true
	}

	return contextFromUserProfile(req.UserContext), true
}

// contextFromUserProfile derives a minimal coaching context from the
// free-form user profile when no meeting record is available.
func contextFromUserProfile(userContext map[string]any) domain.CoachingContext {
	coaching := domain.CoachingContext{
		Source:        "user_context",
		CoachBrief:    []string{},
		Goals:         []domain.Goal{},
		Constraints:   []string{},
		Plan:          domain.ActionPlan{WeeklyActions: []domain.WeeklyAction{}},
		OpenQuestions: []string{},
	}

	if goal, ok := userContext["fitness_goal"].(string); ok && goal != "" {
		coaching.Goals = append(coaching.Goals, domain.Goal{
			ID: "g1", Domain: "fitness", Target: goal, Priority: "medium",
		})
	}
	if goal, ok := userContext["sleep_goal"].(string); ok && goal != "" {
		coaching.Goals = append(coaching.Goals, domain.Goal{
			ID: "g2", Domain: "sleep", Target: goal, Priority: "medium",
		})
	}

	return coaching
}
