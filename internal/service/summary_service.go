package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/stats"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultWindowDays is the default statistics window for the
	// wearables summary.
	DefaultWindowDays = 14
)

// Trend thresholds: a window-vs-baseline delta below the threshold is
// noise and produces no trend line.
const (
	sleepTrendThreshold  = 0.3 // hours
	stepsTrendThreshold  = 500
	hrvTrendThreshold    = 3 // ms
	stressTrendThreshold = 5 // points
)

// SummaryService turns raw day series into the aggregate shapes consumed
// by the prompt pipeline.
type SummaryService interface {
	// Summarize computes the flat aggregate summary over a full series.
	Summarize(series []domain.MetricRecord) domain.SeriesSummary
	// BuildWearablesSummary computes a windowed summary, a full-series
	// baseline, derived scores and notable trends.
	BuildWearablesSummary(ctx context.Context, series []domain.MetricRecord, windowDays int) *domain.WearablesSummary
}

type summaryService struct{}

// NewSummaryService creates a SummaryService.
func NewSummaryService() SummaryService {
	return &summaryService{}
}

func (s *summaryService) Summarize(series []domain.MetricRecord) domain.SeriesSummary {
	fieldStats := stats.ComputeStats(series, domain.MetricFields)

	return domain.SeriesSummary{
		AverageSteps:      fieldStats["steps"].Mean,
		AverageSleepHours: fieldStats["sleep_hours"].Mean,
		AverageRestingHR:  fieldStats["resting_hr"].Mean,
		HRVRMSSD:          fieldStats["hrv_rmssd"].Mean,
		StressIndex:       fieldStats["stress_index"].Mean,
		CaloriesBurned:    fieldStats["calories_burned"].Mean,
		SleepEfficiency:   fieldStats["sleep_efficiency"].Mean,
		ActiveMinutes:     fieldStats["active_minutes"].Mean,
		Variance: domain.SummaryVariance{
			AverageSteps:      fieldStats["steps"].Variance,
			AverageSleepHours: fieldStats["sleep_hours"].Variance,
			AverageRestingHR:  fieldStats["resting_hr"].Variance,
			HRVRMSSD:          fieldStats["hrv_rmssd"].Variance,
		},
	}
}

func (s *summaryService) BuildWearablesSummary(ctx context.Context, series []domain.MetricRecord, windowDays int) *domain.WearablesSummary {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	tracer := otel.Tracer("coach-api/summary")
	_, span := tracer.Start(ctx, "SummaryService.BuildWearablesSummary",
		trace.WithAttributes(
			attribute.Int("series.records", len(series)),
			attribute.Int("window.days", windowDays),
		),
	)
	defer span.End()

	window := series
	if len(series) > windowDays {
		window = series[len(series)-windowDays:]
	}

	baseline := s.Summarize(series)
	windowed := s.Summarize(window)

	result := &domain.WearablesSummary{
		WindowDays:  windowDays,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Window:      windowed,
		Baseline: domain.BaselineSummary{
			BaselineWindowDays: len(series),
			SeriesSummary:      baseline,
		},
		DerivedScores: ComputeScores(windowed),
		NotableTrends: NotableTrends(windowed, baseline),
	}

	// Attach output payload for Langfuse
	if outJSON, err := json.Marshal(result); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outJSON)))
	}

	return result
}

// ComputeScores applies the fixed, deterministic 0-100 scoring formulas to
// a summary. Scores are never model-generated. A score stays nil whenever
// a required input is missing or zero.
func ComputeScores(s domain.SeriesSummary) domain.DerivedScores {
	scores := domain.DerivedScores{ScoreBands: domain.DefaultScoreBands()}

	if truthy(s.AverageSleepHours) {
		sleep := 0.6 * math.Min(*s.AverageSleepHours/8*100, 100)
		if s.SleepEfficiency != nil {
			sleep += 0.4 * math.Min(*s.SleepEfficiency*100, 100)
		}
		scores.SleepScore = round1(sleep)
	}

	if truthy(s.StressIndex) {
		scores.StressBurdenScore = round1(math.Max(0, 100-*s.StressIndex))
	}

	if truthy(s.HRVRMSSD) && truthy(s.AverageRestingHR) {
		recovery := 0.6*(*s.HRVRMSSD/70*100) +
			0.4*math.Max(0, 100-(*s.AverageRestingHR-50)*1.2)
		scores.RecoveryScore = round1(recovery)
	}

	if truthy(s.AverageSteps) {
		scores.ActivityScore = round1(math.Min(*s.AverageSteps/100, 100))
	}

	if scores.SleepScore != nil && truthy(s.StressIndex) && truthy(s.AverageRestingHR) {
		readiness := 0.4**scores.SleepScore +
			0.35*(100-*s.StressIndex) +
			0.25*math.Max(0, 100-(*s.AverageRestingHR-50)*1.5)
		scores.ReadinessScore = round1(readiness)
	}

	return scores
}

// NotableTrends emits one human-readable line per metric whose
// window-vs-baseline delta crosses the fixed threshold. Direction is by
// sign of the delta, magnitude shown as absolute value.
func NotableTrends(window, baseline domain.SeriesSummary) []string {
	var trends []string

	if line := trendLine("Sleep duration", window.AverageSleepHours, baseline.AverageSleepHours, sleepTrendThreshold, "%.1f h"); line != "" {
		trends = append(trends, line)
	}
	if line := trendLine("Daily steps", window.AverageSteps, baseline.AverageSteps, stepsTrendThreshold, "%.0f"); line != "" {
		trends = append(trends, line)
	}
	if line := trendLine("HRV", window.HRVRMSSD, baseline.HRVRMSSD, hrvTrendThreshold, "%.1f ms"); line != "" {
		trends = append(trends, line)
	}
	if line := trendLine("Stress index", window.StressIndex, baseline.StressIndex, stressTrendThreshold, "%.1f points"); line != "" {
		trends = append(trends, line)
	}

	return trends
}

func trendLine(label string, window, baseline *float64, threshold float64, magnitudeFormat string) string {
	if window == nil || baseline == nil {
		return ""
	}
	delta := *window - *baseline
	// Summaries are pre-rounded; the epsilon keeps a delta landing exactly
	// on the threshold from being lost to float noise.
	if math.Abs(delta) < threshold-1e-9 {
		return ""
	}
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	return fmt.Sprintf("%s %s %s vs baseline.", label, direction, fmt.Sprintf(magnitudeFormat, math.Abs(delta)))
}

// SummaryFromMetrics maps a client-supplied flat metrics object onto the
// summary shape, used when no raw series accompanies a chat request.
// Non-numeric values are ignored.
func SummaryFromMetrics(metrics map[string]any) domain.SeriesSummary {
	get := func(key string) *float64 {
		if v, ok := domain.MetricRecord(metrics).Numeric(key); ok {
			return &v
		}
		return nil
	}
	return domain.SeriesSummary{
		AverageSteps:      get("average_steps"),
		AverageSleepHours: get("average_sleep_hours"),
		AverageRestingHR:  get("average_resting_hr"),
		HRVRMSSD:          get("hrv_rmssd"),
		StressIndex:       get("stress_index"),
		CaloriesBurned:    get("calories_burned"),
		SleepEfficiency:   get("sleep_efficiency"),
		ActiveMinutes:     get("active_minutes"),
	}
}

func truthy(v *float64) bool {
	return v != nil && *v != 0
}

func round1(v float64) *float64 {
	return stats.Round(&v, 1)
}
