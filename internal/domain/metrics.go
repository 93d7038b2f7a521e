package domain

// MetricFields is the canonical set of per-day wearable fields the
// summarizer understands. Anything else on a record is carried through
// untouched but never aggregated.
var MetricFields = []string{
	"steps",
	"sleep_hours",
	"resting_hr",
	"hrv_rmssd",
	"stress_index",
	"calories_burned",
	"sleep_efficiency",
	"active_minutes",
}

// MetricRecord is one day of wearable data. Values arrive as decoded JSON,
// so a field may be absent or non-numeric; both count as missing, never as
// zero, for statistics purposes.
type MetricRecord map[string]any

// Numeric returns the value of a field if it is present and numeric.
func (r MetricRecord) Numeric(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Date returns the record's date string, empty if absent.
func (r MetricRecord) Date() string {
	if s, ok := r["date"].(string); ok {
		return s
	}
	return ""
}

// FieldStats holds descriptive statistics for a single metric field.
// All three are nil together (no valid values) or defined together.
// @Description Mean, population variance and standard deviation for one field.
type FieldStats struct {
	Mean     *float64 `json:"mean"`
	Variance *float64 `json:"variance"`
	Std      *float64 `json:"std"`
}

// SeriesSummary is the flat aggregate shape the prompt pipeline consumes:
// the mean of each canonical field plus a variance sub-map for the four
// headline metrics. Nil means the field had no valid data.
// @Description Aggregated wearable metrics over a day series.
type SeriesSummary struct {
	AverageSteps      *float64        `json:"average_steps"`
	AverageSleepHours *float64        `json:"average_sleep_hours"`
	AverageRestingHR  *float64        `json:"average_resting_hr"`
	HRVRMSSD          *float64        `json:"hrv_rmssd"`
	StressIndex       *float64        `json:"stress_index"`
	CaloriesBurned    *float64        `json:"calories_burned"`
	SleepEfficiency   *float64        `json:"sleep_efficiency"`
	ActiveMinutes     *float64        `json:"active_minutes"`
	Variance          SummaryVariance `json:"variance"`
}

// SummaryVariance carries the variance of the four headline metrics.
type SummaryVariance struct {
	AverageSteps      *float64 `json:"average_steps"`
	AverageSleepHours *float64 `json:"average_sleep_hours"`
	AverageRestingHR  *float64 `json:"average_resting_hr"`
	HRVRMSSD          *float64 `json:"hrv_rmssd"`
}

// ScoreBands are the fixed severity bands that accompany every score set.
type ScoreBands struct {
	Green  [2]int `json:"green"`
	Yellow [2]int `json:"yellow"`
	Red    [2]int `json:"red"`
}

// DefaultScoreBands returns the fixed green/yellow/red banding.
func DefaultScoreBands() ScoreBands {
	return ScoreBands{Green: [2]int{80, 100}, Yellow: [2]int{60, 79}, Red: [2]int{0, 59}}
}

// DerivedScores are deterministic 0-100 summary scores computed from a
// SeriesSummary, never by the model. A score is nil whenever a required
// input is missing or zero.
// @Description Deterministic 0-100 health scores with severity bands.
type DerivedScores struct {
	ReadinessScore    *float64   `json:"readiness_score_0_100"`
	RecoveryScore     *float64   `json:"recovery_score_0_100"`
	SleepScore        *float64   `json:"sleep_score_0_100"`
	ActivityScore     *float64   `json:"activity_score_0_100"`
	StressBurdenScore *float64   `json:"stress_burden_score_0_100"`
	ScoreBands        ScoreBands `json:"score_bands"`
}

// BaselineSummary is the full-series aggregate used as the comparison
// baseline for the most recent window.
type BaselineSummary struct {
	BaselineWindowDays int `json:"baseline_window_days"`
	SeriesSummary
}

// WearablesSummary fuses the windowed aggregates, the longer baseline and
// the derived scores into the context packet shape sent to the model.
// @Description Windowed wearable aggregates with baseline and derived scores.
type WearablesSummary struct {
	WindowDays    int             `json:"window_days"`
	GeneratedAt   string          `json:"generated_at"`
	Window        SeriesSummary   `json:"aggregates"`
	Baseline      BaselineSummary `json:"baselines"`
	DerivedScores DerivedScores   `json:"derived_scores"`
	NotableTrends []string        `json:"notable_trends"`
}
