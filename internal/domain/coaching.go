package domain

// Goal is one structured coaching goal imported from a meeting.
type Goal struct {
	ID       string `json:"id"`
	Domain   string `json:"domain"`
	Target   string `json:"target"`
	Priority string `json:"priority"`
}

// WeeklyAction is one agreed checklist item from the coaching plan.
type WeeklyAction struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Frequency string `json:"frequency"`
	Notes     string `json:"notes,omitempty"`
}

// ActionPlan is the weekly plan agreed in the coaching call.
type ActionPlan struct {
	WeeklyActions []WeeklyAction `json:"weekly_actions"`
}

// CoachingContext is the structured coaching record derived from an
// external meeting. It is constructed once per request and treated as
// read-only afterwards.
// @Description Goals, constraints and plan extracted from a coaching call.
type CoachingContext struct {
	MeetingID     string     `json:"meeting_id"`
	MeetingDate   string     `json:"meeting_date"`
	Source        string     `json:"source"`
	CoachBrief    []string   `json:"coach_brief"`
	Goals         []Goal     `json:"goals"`
	Constraints   []string   `json:"constraints"`
	Plan          ActionPlan `json:"plan"`
	OpenQuestions []string   `json:"open_questions"`
}

// MeetingPlanDomain is one domain entry of a meeting's plan mapping.
type MeetingPlanDomain struct {
	Baseline   string   `json:"baseline"`
	SmartGoals []string `json:"smartGoals"`
}

// Meeting is the raw record returned by the meeting-context service.
// @Description External coaching-call record.
type Meeting struct {
	ID                 string                       `json:"id"`
	CreatedAt          string                       `json:"createdAt"`
	PatientDisplayName string                       `json:"patientDisplayName"`
	Plan               map[string]MeetingPlanDomain `json:"plan"`
	Transcript         string                       `json:"transcript,omitempty"`
}

// PromptBundle is the system/developer/user message triple consumed by
// exactly one model call. Immutable once built.
type PromptBundle struct {
	System    string
	Developer string
	User      string
}
