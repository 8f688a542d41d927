package intervals

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/2beens/intervals-sync/internal/telemetry/metrics"
	"github.com/2beens/intervals-sync/internal/telemetry/tracing"
	"github.com/2beens/intervals-sync/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultBaseURL = "https://intervals.icu/api/v1"

// APIError is returned for non-2xx responses from the intervals.icu API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intervals api: %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client talks to the intervals.icu API for a single athlete.
// https://intervals.icu/api-docs.html
type Client struct {
	baseURL        string
	athleteID      string
	authHeader     string
	httpClient     *http.Client
	metricsManager *metrics.Manager
}

func NewClient(
	baseURL string,
	athleteID string,
	apiKey string,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) *Client {
	// basic auth with the literal user "API_KEY", per the intervals.icu docs
	credentials := base64.StdEncoding.EncodeToString([]byte("API_KEY:" + apiKey))
	return &Client{
		baseURL:        baseURL,
		athleteID:      athleteID,
		authHeader:     "Basic " + credentials,
		httpClient:     httpClient,
		metricsManager: metricsManager,
	}
}

// Athlete fetches the athlete profile, including sport settings.
func (c *Client) Athlete(ctx context.Context) (*Athlete, error) {
	respBytes, err := c.get(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	athlete := &Athlete{}
	if err := json.Unmarshal(respBytes, athlete); err != nil {
		return nil, fmt.Errorf("unmarshal athlete profile: %w", err)
	}
	return athlete, nil
}

// Activities fetches all activities with a local start date within
// [oldest, newest]. Dates are YYYY-MM-DD.
func (c *Client) Activities(ctx context.Context, oldest, newest string) ([]Activity, error) {
	params := url.Values{}
	params.Set("oldest", oldest)
	params.Set("newest", newest)

	respBytes, err := c.get(ctx, "activities", params)
	if err != nil {
		return nil, err
	}
	var activities []Activity
	if err := json.Unmarshal(respBytes, &activities); err != nil {
		return nil, fmt.Errorf("unmarshal activities: %w", err)
	}
	return activities, nil
}

// LatestActivities fetches the most recent activities, newest first, as raw
// records. A cache buster param is added so that a record finished moments
// ago is not served stale from an upstream cache.
//
// The endpoint normally returns a list, but is also known to return a single
// object for some accounts; both shapes are accepted.
func (c *Client) LatestActivities(ctx context.Context, limit int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("order", "desc")
	params.Set("_cb", strconv.FormatInt(time.Now().Unix(), 10))

	respBytes, err := c.get(ctx, "activities", params)
	if err != nil {
		return nil, err
	}

	respBytes = bytes.TrimSpace(respBytes)
	if len(respBytes) > 0 && respBytes[0] == '{' {
		return []json.RawMessage{respBytes}, nil
	}

	var activities []json.RawMessage
	if err := json.Unmarshal(respBytes, &activities); err != nil {
		return nil, fmt.Errorf("unmarshal latest activities: %w", err)
	}
	return activities, nil
}

// Wellness fetches wellness records within [oldest, newest], oldest first.
func (c *Client) Wellness(ctx context.Context, oldest, newest string) ([]Wellness, error) {
	params := url.Values{}
	params.Set("oldest", oldest)
	params.Set("newest", newest)

	respBytes, err := c.get(ctx, "wellness", params)
	if err != nil {
		return nil, err
	}
	var wellness []Wellness
	if err := json.Unmarshal(respBytes, &wellness); err != nil {
		return nil, fmt.Errorf("unmarshal wellness records: %w", err)
	}
	return wellness, nil
}

// Events fetches calendar events within [oldest, newest].
func (c *Client) Events(ctx context.Context, oldest, newest string) ([]Event, error) {
	params := url.Values{}
	params.Set("oldest", oldest)
	params.Set("newest", newest)

	respBytes, err := c.get(ctx, "events", params)
	if err != nil {
		return nil, err
	}
	var events []Event
	if err := json.Unmarshal(respBytes, &events); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}
	return events, nil
}

func (c *Client) get(ctx context.Context, resource string, params url.Values) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "intervalsApi.get")
	span.SetAttributes(attribute.String("resource", resource))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	endpoint := fmt.Sprintf("%s/athlete/%s", c.baseURL, c.athleteID)
	if resource != "" {
		endpoint += "/" + resource
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	log.Tracef("calling intervals api: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	callStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countCall(resource, "error")
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	c.observeCallDuration(resource, time.Since(callStart))
	c.countCall(resource, strconv.Itoa(resp.StatusCode))

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response bytes: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       pkg.BytesToString(bytes.TrimSpace(respBytes)),
		}
	}

	return respBytes, nil
}

func (c *Client) countCall(resource, status string) {
	if c.metricsManager == nil {
		return
	}
	if resource == "" {
		resource = "athlete"
	}
	c.metricsManager.CounterUpstreamCalls.
		WithLabelValues(resource, status).
		Inc()
}

func (c *Client) observeCallDuration(resource string, duration time.Duration) {
	if c.metricsManager == nil {
		return
	}
	if resource == "" {
		resource = "athlete"
	}
	c.metricsManager.HistUpstreamCallDuration.
		WithLabelValues(resource).
		Observe(duration.Seconds())
}
