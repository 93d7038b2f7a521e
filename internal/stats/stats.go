// Package stats provides the descriptive statistics primitives used by the
// wearables summarizer. A nil result is the explicit "no data" signal; no
// function here ever returns an error.
package stats

import (
	"math"

	"github.com/evida/coach-api/internal/domain"
)

// Mean returns the arithmetic mean, nil for an empty slice.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// Variance returns the population variance (divisor N, not N-1), nil for
// an empty slice.
func Variance(values []float64) *float64 {
	avg := Mean(values)
	if avg == nil {
		return nil
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - *avg
		sumSquares += diff * diff
	}
	variance := sumSquares / float64(len(values))
	return &variance
}

// Std returns the population standard deviation, nil for an empty slice.
func Std(values []float64) *float64 {
	variance := Variance(values)
	if variance == nil {
		return nil
	}
	std := math.Sqrt(*variance)
	return &std
}

// Round rounds to the given number of decimals, half away from zero.
// A nil input passes through unchanged.
func Round(value *float64, digits int) *float64 {
	if value == nil {
		return nil
	}
	factor := math.Pow(10, float64(digits))
	rounded := math.Round(*value*factor) / factor
	return &rounded
}

// ComputeStats calculates mean/variance/std for each requested field over
// the series. Only entries where the field is present and numeric
// participate; a field with no valid values yields all-nil stats.
func ComputeStats(series []domain.MetricRecord, fields []string) map[string]domain.FieldStats {
	result := make(map[string]domain.FieldStats, len(fields))
	for _, field := range fields {
		var values []float64
		for _, record := range series {
			if v, ok := record.Numeric(field); ok {
				values = append(values, v)
			}
		}
		result[field] = domain.FieldStats{
			Mean:     Round(Mean(values), 2),
			Variance: Round(Variance(values), 2),
			Std:      Round(Std(values), 2),
		}
	}
	return result
}
