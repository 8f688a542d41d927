package summary

// SummaryDocument is the condensed training overview published as
// latest.json. The layout is consumed by LLM assistants, hence the
// instruction header with pre-calculated totals.
type SummaryDocument struct {
	ReadThisFirst    ReadThisFirst       `json:"READ_THIS_FIRST"`
	Metadata         Metadata            `json:"metadata"`
	Summary          ActivitySummary     `json:"summary"`
	CurrentStatus    CurrentStatus       `json:"current_status"`
	RecentActivities []FormattedActivity `json:"recent_activities"`
	WellnessData     []FormattedWellness `json:"wellness_data"`
	PlannedWorkouts  []FormattedEvent    `json:"planned_workouts"`
	WeeklySummary    WeeklySummary       `json:"weekly_summary"`
}

type ReadThisFirst struct {
	InstructionForAI string     `json:"instruction_for_ai"`
	DataPeriod       string     `json:"data_period"`
	QuickStats       QuickStats `json:"quick_stats"`
}

type QuickStats struct {
	TotalTrainingHours float64 `json:"total_training_hours"`
	TotalActivities    int     `json:"total_activities"`
	TotalTSS           float64 `json:"total_tss"`
}

type Metadata struct {
	AthleteID     string `json:"athlete_id"`
	LastUpdated   string `json:"last_updated"`
	DataRangeDays int    `json:"data_range_days"`
}

type ActivitySummary struct {
	TotalActivities int `json:"total_activities"`
}

type CurrentStatus struct {
	Fitness        FitnessSnapshot `json:"fitness"`
	Thresholds     Thresholds      `json:"thresholds"`
	CurrentMetrics CurrentMetrics  `json:"current_metrics"`
}

// FitnessSnapshot carries today's projected fitness markers. All fields are
// nullable: a marker missing upstream stays null in the published document.
type FitnessSnapshot struct {
	CTL      *float64 `json:"ctl"`
	ATL      *float64 `json:"atl"`
	TSB      *float64 `json:"tsb"`
	RampRate *float64 `json:"ramp_rate"`
}

type Thresholds struct {
	FTP  *float64 `json:"ftp"`
	LTHR *float64 `json:"lthr"`
}

type CurrentMetrics struct {
	WeightKg  *float64 `json:"weight_kg"`
	RestingHR *float64 `json:"resting_hr"`
	HRV       *float64 `json:"hrv"`
}

type FormattedActivity struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	DurationHours   float64  `json:"duration_hours"`
	DistanceKm      float64  `json:"distance_km"`
	TSS             *float64 `json:"tss"`
	AvgPower        *float64 `json:"avg_power"`
	NormalizedPower *float64 `json:"normalized_power"`
	AvgHR           *float64 `json:"avg_hr"`
	Decoupling      *float64 `json:"decoupling"`
}

type FormattedWellness struct {
	Date      string   `json:"date"`
	HRVRmssd  *float64 `json:"hrv_rmssd"`
	RestingHR *float64 `json:"resting_hr"`
}

type FormattedEvent struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type WeeklySummary struct {
	ActivitiesCount int `json:"activities_count"`
}
