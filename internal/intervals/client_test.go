package intervals_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/intervals-sync/internal/intervals"
	"github.com/2beens/intervals-sync/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	promcl "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testAPIKey = "test-api-key"

func expectedAuthHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("API_KEY:"+testAPIKey))
}

func TestClient_Athlete(t *testing.T) {
	apiCallsCount := 0
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCallsCount++
		assert.Equal(t, "/athlete/i123456", r.RequestURI)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, expectedAuthHeader(), r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, athleteTestResponse)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	athlete, err := client.Athlete(context.Background())
	require.NoError(t, err)
	require.NotNil(t, athlete)
	assert.Equal(t, "i123456", athlete.ID)
	require.NotNil(t, athlete.ICUWeight)
	assert.InDelta(t, 71.5, *athlete.ICUWeight, 0.001)
	require.NotNil(t, athlete.ICURestingHR)
	assert.InDelta(t, 47, *athlete.ICURestingHR, 0.001)

	cycling := athlete.CyclingSettings()
	require.NotNil(t, cycling)
	require.NotNil(t, cycling.FTP)
	assert.InDelta(t, 285, *cycling.FTP, 0.001)
	require.NotNil(t, cycling.LTHR)
	assert.InDelta(t, 168, *cycling.LTHR, 0.001)

	assert.Equal(t, 1, apiCallsCount)
}

func TestClient_Athlete_NoCyclingSettings(t *testing.T) {
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "i123456", "name": "Runner Only", "sportSettings": [{"types": ["Run"], "lthr": 172}]}`)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	athlete, err := client.Athlete(context.Background())
	require.NoError(t, err)
	assert.Nil(t, athlete.CyclingSettings())
}

func TestClient_Activities(t *testing.T) {
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/athlete/i123456/activities?newest=2026-02-10&oldest=2026-02-04", r.RequestURI)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, expectedAuthHeader(), r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, activitiesTestResponse)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	activities, err := client.Activities(context.Background(), "2026-02-04", "2026-02-10")
	require.NoError(t, err)
	require.Len(t, activities, 2)

	assert.Equal(t, "i90000001", activities[0].ID)
	assert.Equal(t, "2026-02-05T18:30:00", activities[0].StartDateLocal)
	assert.Equal(t, "VirtualRide", activities[0].Type)
	assert.Equal(t, "Zwift - Sweet Spot", activities[0].Name)
	require.NotNil(t, activities[0].MovingTime)
	assert.InDelta(t, 3600, *activities[0].MovingTime, 0.001)
	require.NotNil(t, activities[0].ICUTrainingLoad)
	assert.InDelta(t, 50, *activities[0].ICUTrainingLoad, 0.001)
	require.NotNil(t, activities[0].AverageWatts)
	assert.InDelta(t, 210, *activities[0].AverageWatts, 0.001)

	// second activity has no power data at all
	assert.Equal(t, "i90000002", activities[1].ID)
	assert.Nil(t, activities[1].ICUTrainingLoad)
	assert.Nil(t, activities[1].AverageWatts)
	assert.Nil(t, activities[1].ICUWeightedAvgWatts)
	assert.Nil(t, activities[1].ICUHRDecoupling)
}

func TestClient_LatestActivities(t *testing.T) {
	apiCallsCount := 0
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCallsCount++
		assert.Equal(t, http.MethodGet, r.Method)
		query := r.URL.Query()
		assert.Equal(t, "1", query.Get("limit"))
		assert.Equal(t, "desc", query.Get("order"))
		assert.NotEmpty(t, query.Get("_cb"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, activitiesTestResponse)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	latest, err := client.LatestActivities(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Contains(t, string(latest[0]), "i90000001")
	assert.Equal(t, 1, apiCallsCount)
}

func TestClient_LatestActivities_SingleObjectResponse(t *testing.T) {
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "i90000007", "name": "Lone Ride"}`)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	latest, err := client.LatestActivities(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Contains(t, string(latest[0]), "i90000007")
}

func TestClient_Wellness(t *testing.T) {
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/athlete/i123456/wellness?newest=2026-02-10&oldest=2026-02-04", r.RequestURI)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, wellnessTestResponse)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	wellness, err := client.Wellness(context.Background(), "2026-02-04", "2026-02-10")
	require.NoError(t, err)
	require.Len(t, wellness, 2)

	assert.Equal(t, "2026-02-09", wellness[0].ID)
	require.NotNil(t, wellness[0].CTL)
	assert.InDelta(t, 50.0, *wellness[0].CTL, 0.001)
	require.NotNil(t, wellness[0].RampRate)
	assert.InDelta(t, 1.2, *wellness[0].RampRate, 0.001)

	assert.Equal(t, "2026-02-10", wellness[1].ID)
	assert.Nil(t, wellness[1].CTL)
	require.NotNil(t, wellness[1].HRV)
	assert.InDelta(t, 68, *wellness[1].HRV, 0.001)
}

func TestClient_Events(t *testing.T) {
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/athlete/i123456/events?newest=2026-03-03&oldest=2026-02-10", r.RequestURI)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, eventsTestResponse)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	client := intervals.NewClient(testServer.URL, "i123456", testAPIKey, testServer.Client(), metrics.NewTestManager())

	events, err := client.Events(context.Background(), "2026-02-10", "2026-03-03")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2026-02-12T00:00:00", events[0].StartDateLocal)
	assert.Equal(t, "Threshold Intervals 4x8", events[0].Name)
	assert.Equal(t, "WORKOUT", events[0].Category)
}

func TestClient_APIError(t *testing.T) {
	testServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": "invalid API key"}`)
	})
	testServer := httptest.NewServer(testServerHandler)
	defer testServer.Close()

	metricsManager, reg := metrics.NewTestManagerAndRegistry()
	client := intervals.NewClient(testServer.URL, "i123456", "wrong-key", testServer.Client(), metricsManager)

	activities, err := client.Activities(context.Background(), "2026-02-04", "2026-02-10")
	require.Error(t, err)
	assert.Nil(t, activities)

	var apiErr *intervals.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid API key")
	assert.Contains(t, apiErr.URL, "/athlete/i123456/activities")

	assert.Equal(
		t,
		float64(1),
		testutil.ToFloat64(metricsManager.CounterUpstreamCalls.WithLabelValues("activities", "403")),
	)

	gathered, err := reg.Gather()
	require.NoError(t, err)
	var foundCallsCounter *promcl.MetricFamily
	for _, m := range gathered {
		if *m.Name == "intervals_sync_upstream_calls" {
			foundCallsCounter = m
			break
		}
	}
	require.NotNil(t, foundCallsCounter)
	require.Len(t, foundCallsCounter.Metric, 1)
}

var (
	athleteTestResponse = `
{
  "id": "i123456",
  "name": "Testko Testic",
  "icu_weight": 71.5,
  "icu_resting_hr": 47,
  "sportSettings": [
    {
      "types": ["Run", "TrailRun"],
      "lthr": 175
    },
    {
      "types": ["Ride", "VirtualRide"],
      "ftp": 285,
      "lthr": 168
    }
  ]
}`

	activitiesTestResponse = `
[
  {
    "id": "i90000001",
    "start_date_local": "2026-02-05T18:30:00",
    "type": "VirtualRide",
    "name": "Zwift - Sweet Spot",
    "moving_time": 3600,
    "distance": 30500,
    "icu_training_load": 50,
    "average_watts": 210,
    "icu_weighted_avg_watts": 225,
    "icu_average_hr": 152,
    "icu_hr_decoupling": 2.8
  },
  {
    "id": "i90000002",
    "start_date_local": "2026-02-07T09:10:00",
    "type": "Run",
    "name": "Morning Run",
    "moving_time": 1800,
    "distance": 5200,
    "icu_average_hr": 149
  }
]`

	wellnessTestResponse = `
[
  {
    "id": "2026-02-09",
    "ctl": 50.0,
    "atl": 55.3,
    "rampRate": 1.2,
    "weight": 71.2,
    "restingHR": 46,
    "hrv": 72
  },
  {
    "id": "2026-02-10",
    "weight": 71.4,
    "restingHR": 48,
    "hrv": 68
  }
]`

	eventsTestResponse = `
[
  {
    "id": 555001,
    "start_date_local": "2026-02-12T00:00:00",
    "category": "WORKOUT",
    "name": "Threshold Intervals 4x8"
  },
  {
    "id": 555002,
    "start_date_local": "2026-02-15T00:00:00",
    "category": "WORKOUT",
    "name": "Endurance Ride 2h"
  }
]`
)
