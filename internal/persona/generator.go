package persona

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/evida/coach-api/internal/domain"
)

// seriesDays is the length of every generated demo series.
const seriesDays = 30

// profile bounds the random walk for one persona archetype.
type profile struct {
	domain.Persona
	stepsMin, stepsMax         int
	sleepMin, sleepMax         float64
	stressMin, stressMax       int
	restingHRMin, restingHRMax int
	fragmentedSleep            bool
}

var profiles = []profile{
	{
		Persona: domain.Persona{
			ID:          "active-alex",
			Name:        "Active Alex",
			Description: "Young adult with regular exercise and high daily step count.",
		},
		stepsMin: 9000, stepsMax: 12000,
		sleepMin: 7.0, sleepMax: 8.0,
		stressMin: 20, stressMax: 35,
		restingHRMin: 55, restingHRMax: 62,
	},
	{
		Persona: domain.Persona{
			ID:          "stressed-sam",
			Name:        "Stressed Sam",
			Description: "Mid-career professional experiencing high stress and insufficient sleep.",
		},
		stepsMin: 4000, stepsMax: 6500,
		sleepMin: 5.0, sleepMax: 6.2,
		stressMin: 65, stressMax: 85,
		restingHRMin: 70, restingHRMax: 78,
	},
	{
		Persona: domain.Persona{
			ID:          "sleep-challenged-chris",
			Name:        "Sleep-Challenged Chris",
			Description: "Individual with insomnia symptoms and fragmented sleep.",
		},
		stepsMin: 3500, stepsMax: 5200,
		sleepMin: 4.5, sleepMax: 5.6,
		stressMin: 45, stressMax: 70,
		restingHRMin: 68, restingHRMax: 80,
		fragmentedSleep: true,
	},
	{
		Persona: domain.Persona{
			ID:          "recovering-riley",
			Name:        "Recovering Riley",
			Description: "Person recovering from injury with decreasing step count.",
		},
		stepsMin: 2500, stepsMax: 5500,
		sleepMin: 6.0, sleepMax: 7.0,
		stressMin: 40, stressMax: 60,
		restingHRMin: 72, restingHRMax: 85,
	},
}

// generateSeries builds the demo day series for one profile. The PRNG is
// seeded from the persona id, so the same persona always yields the same
// series.
func generateSeries(p profile, days int) []domain.MetricRecord {
	h := fnv.New64a()
	h.Write([]byte(p.ID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	series := make([]domain.MetricRecord, 0, days)
	for offset := 0; offset < days; offset++ {
		date := today.AddDate(0, 0, -(days - offset - 1))

		steps := p.stepsMin + rng.Intn(p.stepsMax-p.stepsMin+1)
		sleepHours := round2(p.sleepMin + rng.Float64()*(p.sleepMax-p.sleepMin))
		stress := p.stressMin + rng.Intn(p.stressMax-p.stressMin+1)
		restingHR := p.restingHRMin + rng.Intn(p.restingHRMax-p.restingHRMin+1)
		hrv := math.Round((40+rng.Float64()*40)*10) / 10
		calories := 1800 + float64(steps)*0.05
		sleepEff := round2(clamp(0.78+rng.Float64()*0.14, 0.70, 0.95))
		activeMinutes := float64(steps / 120)

		awakenings := float64(rng.Intn(3))
		if p.fragmentedSleep {
			awakenings = float64(1 + rng.Intn(4))
		}

		rem := round2(sleepHours * 0.22)
		deep := round2(sleepHours * 0.18)
		light := round2(sleepHours - rem - deep)

		series = append(series, domain.MetricRecord{
			"date":              date.Format("2006-01-02"),
			"steps":             float64(steps),
			"sleep_hours":       sleepHours,
			"stress_index":      float64(stress),
			"resting_hr":        float64(restingHR),
			"hrv_rmssd":         hrv,
			"calories_burned":   math.Floor(calories),
			"sleep_efficiency":  sleepEff,
			"active_minutes":    activeMinutes,
			"awakenings":        awakenings,
			"sleep_stage_rem":   rem,
			"sleep_stage_deep":  deep,
			"sleep_stage_light": light,
		})
	}
	return series
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
