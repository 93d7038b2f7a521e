// Package prompt renders the bounded, schema-constrained message bundles
// sent to the model. Prompt construction is statically linked: a single
// Provider implementation is chosen at startup and injected, never loaded
// from a filesystem path at runtime.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/evida/coach-api/internal/domain"
)

// Input is everything a Provider needs to render one prompt bundle.
type Input struct {
	WearablesSummary domain.WearablesSummary
	CoachingContext  domain.CoachingContext
	UserQuery        string
	// ResponseSchema is reproduced verbatim in the developer message so
	// the model has an explicit output contract.
	ResponseSchema json.RawMessage
}

// Provider renders a prompt bundle from summarized context. Implementations
// must be deterministic for a given input.
type Provider interface {
	Render(in Input) (domain.PromptBundle, error)
}

// StaticProvider is the built-in Provider. Its system policy defaults to
// DefaultSystemPolicy and may be overridden once at construction.
type StaticProvider struct {
	systemPolicy string
}

// NewStaticProvider creates a StaticProvider. An empty policy selects the
// shipped default.
func NewStaticProvider(systemPolicy string) *StaticProvider {
	if strings.TrimSpace(systemPolicy) == "" {
		systemPolicy = DefaultSystemPolicy
	}
	return &StaticProvider{systemPolicy: systemPolicy}
}

// contextPacket is the opaque JSON block embedded in the developer message.
// Field order is fixed by the struct so the model sees a stable layout;
// the rendering code never summarizes this JSON further.
type contextPacket struct {
	WearablesSummary domain.WearablesSummary        `json:"wearables_summary"`
	CoachingContext  domain.CoachingContext         `json:"coaching_context"`
	Focus            map[string]map[string]*float64 `json:"focus,omitempty"`
	ResponseSchema   json.RawMessage                `json:"response_schema"`
}

// Render builds the system/developer/user triple for one model call.
func (p *StaticProvider) Render(in Input) (domain.PromptBundle, error) {
	packet := contextPacket{
		WearablesSummary: in.WearablesSummary,
		CoachingContext:  in.CoachingContext,
		Focus:            focusSummaries(in.WearablesSummary.Window, MatchTopics(in.UserQuery, in.CoachingContext.Goals)),
		ResponseSchema:   in.ResponseSchema,
	}

	packetJSON, err := json.MarshalIndent(packet, "", "  ")
	if err != nil {
		return domain.PromptBundle{}, fmt.Errorf("marshal context packet: %w", err)
	}

	developer := strings.Join([]string{
		developerInstructions,
		"CONTEXT_PACKET_JSON:\n" + string(packetJSON),
	}, "\n\n")

	return domain.PromptBundle{
		System:    p.systemPolicy,
		Developer: developer,
		User:      strings.TrimSpace(in.UserQuery),
	}, nil
}

// focusSummaries extracts the topic-relevant metric sub-summaries for the
// matched topics only.
func focusSummaries(s domain.SeriesSummary, topics []Topic) map[string]map[string]*float64 {
	if len(topics) == 0 {
		return nil
	}
	focus := make(map[string]map[string]*float64, len(topics))
	for _, topic := range topics {
		switch topic {
		case TopicSleep:
			focus["sleep"] = map[string]*float64{
				"sleep_hours_mean":      s.AverageSleepHours,
				"sleep_hours_variance":  s.Variance.AverageSleepHours,
				"sleep_efficiency_mean": s.SleepEfficiency,
			}
		case TopicFitness:
			focus["fitness"] = map[string]*float64{
				"steps_mean":           s.AverageSteps,
				"active_minutes_mean":  s.ActiveMinutes,
				"calories_burned_mean": s.CaloriesBurned,
				"resting_hr_mean":      s.AverageRestingHR,
				"resting_hr_variance":  s.Variance.AverageRestingHR,
				"hrv_rmssd_mean":       s.HRVRMSSD,
				"hrv_rmssd_variance":   s.Variance.HRVRMSSD,
			}
		}
	}
	return focus
}
