package summary_test

import (
	"encoding/json"
	"testing"

	"github.com/2beens/intervals-sync/internal/summary"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A published document read back must be identical to what was written,
// including the null markers.
func TestSummaryDocument_RoundTrip(t *testing.T) {
	doc := summary.SummaryDocument{
		ReadThisFirst: summary.ReadThisFirst{
			InstructionForAI: "DO NOT calculate totals from individual activities. Use pre-calculated values.",
			DataPeriod:       "Last 7 days",
			QuickStats: summary.QuickStats{
				TotalTrainingHours: 1.5,
				TotalActivities:    2,
				TotalTSS:           75,
			},
		},
		Metadata: summary.Metadata{
			AthleteID:     "REDACTED",
			LastUpdated:   "2026-02-10T15:04:05Z",
			DataRangeDays: 7,
		},
		Summary: summary.ActivitySummary{TotalActivities: 2},
		CurrentStatus: summary.CurrentStatus{
			Fitness: summary.FitnessSnapshot{
				CTL: fp(48.82),
				ATL: fp(47.94),
				TSB: fp(0.88),
				// ramp rate stays null
			},
			Thresholds: summary.Thresholds{FTP: fp(285), LTHR: fp(168)},
			CurrentMetrics: summary.CurrentMetrics{
				WeightKg:  fp(71.5),
				RestingHR: fp(48),
			},
		},
		RecentActivities: []summary.FormattedActivity{
			{
				ID:            "activity_1",
				Date:          "2026-02-05T18:30:00",
				Type:          "VirtualRide",
				Name:          gofakeit.Sentence(3),
				DurationHours: 1.25,
				DistanceKm:    30.5,
				TSS:           fp(50),
				AvgPower:      fp(210),
			},
		},
		WellnessData: []summary.FormattedWellness{
			{Date: "2026-02-09", HRVRmssd: fp(72), RestingHR: fp(46)},
			{Date: "2026-02-10"},
		},
		PlannedWorkouts: []summary.FormattedEvent{
			{Date: "2026-02-12T00:00:00", Name: gofakeit.Sentence(2)},
		},
		WeeklySummary: summary.WeeklySummary{ActivitiesCount: 2},
	}

	docJSON, err := json.Marshal(doc)
	require.NoError(t, err)

	var roundTripped summary.SummaryDocument
	require.NoError(t, json.Unmarshal(docJSON, &roundTripped))
	assert.Equal(t, doc, roundTripped)
}

func TestSummaryDocument_NullsAndKeys(t *testing.T) {
	var doc summary.SummaryDocument
	doc.RecentActivities = []summary.FormattedActivity{{ID: "activity_1"}}

	docJSON, err := json.Marshal(doc)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(docJSON, &asMap))

	// fixed top level key set
	for _, key := range []string{
		"READ_THIS_FIRST", "metadata", "summary", "current_status",
		"recent_activities", "wellness_data", "planned_workouts", "weekly_summary",
	} {
		assert.Contains(t, asMap, key)
	}

	// missing markers are nulls, not omitted
	currentStatus := asMap["current_status"].(map[string]any)
	fitness := currentStatus["fitness"].(map[string]any)
	for _, key := range []string{"ctl", "atl", "tsb", "ramp_rate"} {
		value, ok := fitness[key]
		assert.True(t, ok)
		assert.Nil(t, value)
	}

	activity := asMap["recent_activities"].([]any)[0].(map[string]any)
	for _, key := range []string{"tss", "avg_power", "normalized_power", "avg_hr", "decoupling"} {
		value, ok := activity[key]
		assert.True(t, ok)
		assert.Nil(t, value)
	}
}
