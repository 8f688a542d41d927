package summary

import (
	"fmt"
	"strings"

	"github.com/2beens/intervals-sync/internal/intervals"
)

const (
	redactedAthleteID     = "REDACTED"
	anonymousActivityName = "Training Session"
)

// AnonymizePolicy controls which fields get scrubbed before publishing.
// The published documents end up in places like public GitHub repos, so
// everything identifying is redacted by default.
type AnonymizePolicy struct {
	// RedactIDs replaces the athlete ID and activity IDs with placeholders.
	RedactIDs bool
	// RedactActivityNames replaces activity names with a generic label.
	RedactActivityNames bool
	// RedactEventNames replaces planned workout names with a generic label.
	RedactEventNames bool
	// KeepVirtualNames preserves the names of virtual (indoor) activities
	// even when activity names are redacted. Virtual ride names carry no
	// location info.
	KeepVirtualNames bool
}

func DefaultAnonymizePolicy() AnonymizePolicy {
	return AnonymizePolicy{
		RedactIDs:           true,
		RedactActivityNames: true,
		KeepVirtualNames:    true,
	}
}

// OpenPolicy redacts nothing.
func OpenPolicy() AnonymizePolicy {
	return AnonymizePolicy{}
}

func FormatActivities(activities []intervals.Activity, policy AnonymizePolicy) []FormattedActivity {
	formatted := make([]FormattedActivity, 0, len(activities))
	for i, act := range activities {
		id := act.ID
		if policy.RedactIDs {
			id = fmt.Sprintf("activity_%d", i+1)
		}

		name := act.Name
		if policy.RedactActivityNames && !(policy.KeepVirtualNames && strings.Contains(act.Type, "Virtual")) {
			name = anonymousActivityName
		}

		formatted = append(formatted, FormattedActivity{
			ID:              id,
			Date:            act.StartDateLocal,
			Type:            act.Type,
			Name:            name,
			DurationHours:   round2(valueOrZero(act.MovingTime) / 3600),
			DistanceKm:      round2(valueOrZero(act.Distance) / 1000),
			TSS:             act.ICUTrainingLoad,
			AvgPower:        act.AverageWatts,
			NormalizedPower: act.ICUWeightedAvgWatts,
			AvgHR:           act.ICUAverageHR,
			Decoupling:      act.ICUHRDecoupling,
		})
	}
	return formatted
}

func FormatWellness(wellness []intervals.Wellness) []FormattedWellness {
	formatted := make([]FormattedWellness, 0, len(wellness))
	for _, record := range wellness {
		formatted = append(formatted, FormattedWellness{
			Date:      record.ID,
			HRVRmssd:  record.HRV,
			RestingHR: record.RestingHR,
		})
	}
	return formatted
}

func FormatEvents(events []intervals.Event, policy AnonymizePolicy) []FormattedEvent {
	formatted := make([]FormattedEvent, 0, len(events))
	for _, event := range events {
		name := event.Name
		if policy.RedactEventNames {
			name = anonymousActivityName
		}
		formatted = append(formatted, FormattedEvent{
			Date: event.StartDateLocal,
			Name: name,
		})
	}
	return formatted
}
