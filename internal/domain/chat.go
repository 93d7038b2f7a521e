package domain

// ChatRequest is the inbound payload for POST /chat. Metrics and query are
// required; series, user context and meeting context are optional extras
// that sharpen the prompt.
// @Description Coaching chat request.
type ChatRequest struct {
	// Flat metric averages (average_steps, average_sleep_hours, ...)
	Metrics map[string]any `json:"metrics"`
	// Optional free-form user profile (age, gender, fitness_goal, sleep_goal)
	UserContext map[string]any `json:"user_context,omitempty"`
	// The user's free-text question
	Query string `json:"query" validate:"required"`
	// Optional raw day series; when present, summary statistics are
	// computed server-side instead of trusting client averages
	Series []MetricRecord `json:"series,omitempty"`
	// Optional inline meeting record (already fetched by the client)
	MeetingContext *Meeting `json:"meeting_context,omitempty"`
	// Optional meeting id to resolve via the meeting-context service
	MeetingID string `json:"meeting_id,omitempty"`
	// Optional window size for the wearables summary (default 14)
	WindowDays int `json:"window_days,omitempty" validate:"omitempty,min=1,max=365"`
}
