package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/2beens/intervals-sync/internal/intervals"
	"github.com/2beens/intervals-sync/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=collector_mocks_test.go -package=summary_test

type intervalsAPI interface {
	Athlete(ctx context.Context) (*intervals.Athlete, error)
	Activities(ctx context.Context, oldest, newest string) ([]intervals.Activity, error)
	LatestActivities(ctx context.Context, limit int) ([]json.RawMessage, error)
	Wellness(ctx context.Context, oldest, newest string) ([]intervals.Wellness, error)
	Events(ctx context.Context, oldest, newest string) ([]intervals.Event, error)
}

const (
	instructionForAI = "DO NOT calculate totals from individual activities. Use pre-calculated values."

	// how far ahead to look for planned workouts
	plannedDaysAhead = 21

	dateLayout = "2006-01-02"
)

// Collector pulls athlete data from intervals.icu and condenses it into the
// published documents. All fetching is sequential; the data sets are small
// and the run happens a few times per day.
type Collector struct {
	api       intervalsAPI
	athleteID string
}

func NewCollector(api intervalsAPI, athleteID string) *Collector {
	return &Collector{
		api:       api,
		athleteID: athleteID,
	}
}

type CollectParams struct {
	// BaseTime anchors all date windows of the run, normally time.Now().
	BaseTime time.Time
	// Days is the size of the recent-data window, including BaseTime's day.
	Days int
	// Anonymize controls redaction of identifying fields.
	Anonymize AnonymizePolicy
}

// Collect builds the training summary document for the last params.Days
// days. Any upstream failure aborts the collection, except the fitness
// projection which degrades to null markers.
func (c *Collector) Collect(ctx context.Context, params CollectParams) (_ *SummaryDocument, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "collector.collect")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	oldest := params.BaseTime.AddDate(0, 0, -(params.Days - 1)).Format(dateLayout)
	newest := params.BaseTime.Format(dateLayout)

	log.Debugln("fetching athlete profile ...")
	athlete, err := c.api.Athlete(ctx)
	if err != nil {
		return nil, fmt.Errorf("get athlete profile: %w", err)
	}
	cycling := athlete.CyclingSettings()

	log.Debugf("fetching activities between %s and %s ...", oldest, newest)
	activities, err := c.api.Activities(ctx, oldest, newest)
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}

	log.Debugf("fetching wellness records between %s and %s ...", oldest, newest)
	wellness, err := c.api.Wellness(ctx, oldest, newest)
	if err != nil {
		return nil, fmt.Errorf("get wellness records: %w", err)
	}

	fitness := c.todayFitness(ctx, params.BaseTime)

	plannedNewest := params.BaseTime.AddDate(0, 0, plannedDaysAhead).Format(dateLayout)
	log.Debugf("fetching planned workouts up to %s ...", plannedNewest)
	events, err := c.api.Events(ctx, newest, plannedNewest)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}

	athleteID := c.athleteID
	if params.Anonymize.RedactIDs {
		athleteID = redactedAthleteID
	}

	var latestWellness intervals.Wellness
	if len(wellness) > 0 {
		latestWellness = wellness[len(wellness)-1]
	}

	doc := &SummaryDocument{
		ReadThisFirst: ReadThisFirst{
			InstructionForAI: instructionForAI,
			DataPeriod:       fmt.Sprintf("Last %d days", params.Days),
			QuickStats:       quickStats(activities),
		},
		Metadata: Metadata{
			AthleteID:     athleteID,
			LastUpdated:   params.BaseTime.Format(time.RFC3339),
			DataRangeDays: params.Days,
		},
		Summary: ActivitySummary{
			TotalActivities: len(activities),
		},
		CurrentStatus: CurrentStatus{
			Fitness:    fitness,
			Thresholds: thresholds(cycling),
			CurrentMetrics: CurrentMetrics{
				WeightKg:  firstNonNil(latestWellness.Weight, athlete.ICUWeight),
				RestingHR: firstNonNil(latestWellness.RestingHR, athlete.ICURestingHR),
				HRV:       latestWellness.HRV,
			},
		},
		RecentActivities: FormatActivities(activities, params.Anonymize),
		WellnessData:     FormatWellness(wellness),
		PlannedWorkouts:  FormatEvents(events, params.Anonymize),
		WeeklySummary: WeeklySummary{
			ActivitiesCount: len(activities),
		},
	}

	return doc, nil
}

// todayFitness projects yesterday's fitness markers to today. Failures are
// not fatal for the sync, the markers just come out empty.
func (c *Collector) todayFitness(ctx context.Context, baseTime time.Time) FitnessSnapshot {
	yesterday := baseTime.AddDate(0, 0, -1).Format(dateLayout)
	records, err := c.api.Wellness(ctx, yesterday, yesterday)
	if err != nil {
		log.Warnf("get yesterday [%s] wellness: %s; fitness markers will be empty", yesterday, err)
		return FitnessSnapshot{}
	}
	if len(records) == 0 {
		log.Warnf("no wellness record for yesterday [%s], fitness markers will be empty", yesterday)
		return FitnessSnapshot{}
	}
	return decayedFitness(records[0])
}

// Workout is the most recent single activity, kept in its raw upstream form
// for publishing, with the ID and name lifted out for logs and commit
// messages.
type Workout struct {
	Raw  json.RawMessage
	ID   string
	Name string
}

func (w Workout) HasID() bool {
	return w.ID != ""
}

// LatestWorkout fetches the most recent activity. It never fails the sync:
// on any error an empty workout is returned and the caller decides whether
// that is worth more than a warning.
func (c *Collector) LatestWorkout(ctx context.Context) Workout {
	ctx, span := tracing.GlobalTracer.Start(ctx, "collector.latestWorkout")
	defer span.End()

	log.Debugln("fetching the latest workout ...")

	latest, err := c.api.LatestActivities(ctx, 1)
	if err != nil {
		log.Warnf("get latest workout: %s", err)
		return Workout{}
	}
	if len(latest) == 0 {
		log.Warnln("no latest workout found")
		return Workout{}
	}

	workout := newWorkout(latest[0])
	if workout.HasID() {
		log.Infof("found latest workout: %s [%s]", workout.Name, workout.ID)
	}
	return workout
}

func newWorkout(raw json.RawMessage) Workout {
	workout := Workout{Raw: raw}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var record map[string]any
	if err := decoder.Decode(&record); err != nil {
		log.Warnf("parse latest workout record: %s", err)
		return workout
	}

	if id, ok := record["id"]; ok && id != nil {
		workout.ID = fmt.Sprint(id)
	}
	if name, ok := record["name"].(string); ok {
		workout.Name = name
	}
	return workout
}

func quickStats(activities []intervals.Activity) QuickStats {
	var totalMovingTime, totalTSS float64
	for _, act := range activities {
		totalMovingTime += valueOrZero(act.MovingTime)
		totalTSS += valueOrZero(act.ICUTrainingLoad)
	}
	return QuickStats{
		TotalTrainingHours: round2(totalMovingTime / 3600),
		TotalActivities:    len(activities),
		TotalTSS:           math.Round(totalTSS),
	}
}

func thresholds(cycling *intervals.SportSettings) Thresholds {
	if cycling == nil {
		return Thresholds{}
	}
	return Thresholds{
		FTP:  cycling.FTP,
		LTHR: cycling.LTHR,
	}
}
