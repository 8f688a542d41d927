package summary

import (
	"math"

	"github.com/2beens/intervals-sync/internal/intervals"
)

// Fitness markers decay exponentially between training days. CTL (chronic
// load) uses a 42 day time constant, ATL (acute load) a 7 day one. The ramp
// rate fades with the CTL constant.
const (
	ctlDecayDays = 42.0
	atlDecayDays = 7.0
)

// decayedFitness projects yesterday's fitness markers one day forward, to
// today. Markers missing in yesterday's record stay nil; a zero value is a
// valid marker and decays like any other.
func decayedFitness(yesterday intervals.Wellness) FitnessSnapshot {
	var snapshot FitnessSnapshot
	if yesterday.CTL != nil {
		snapshot.CTL = float64Ptr(round2(*yesterday.CTL * math.Exp(-1.0/ctlDecayDays)))
	}
	if yesterday.ATL != nil {
		snapshot.ATL = float64Ptr(round2(*yesterday.ATL * math.Exp(-1.0/atlDecayDays)))
	}
	if yesterday.RampRate != nil {
		snapshot.RampRate = float64Ptr(round2(*yesterday.RampRate * math.Exp(-1.0/ctlDecayDays)))
	}
	if snapshot.CTL != nil && snapshot.ATL != nil {
		snapshot.TSB = float64Ptr(round2(*snapshot.CTL - *snapshot.ATL))
	}
	return snapshot
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func float64Ptr(value float64) *float64 {
	return &value
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
