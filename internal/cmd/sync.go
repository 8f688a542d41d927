package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/2beens/intervals-sync/internal/config"
	"github.com/2beens/intervals-sync/internal/intervals"
	"github.com/2beens/intervals-sync/internal/logging"
	"github.com/2beens/intervals-sync/internal/publish"
	"github.com/2beens/intervals-sync/internal/summary"
	"github.com/2beens/intervals-sync/internal/telemetry/metrics"
	"github.com/2beens/intervals-sync/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	summaryFileName = "latest.json"
	workoutFileName = "latest-workout.json"

	// timestamp in commit messages, forces commit visibility even
	// when the document content is unchanged
	commitTimeLayout = "2006-01-02 15:04:05"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch athlete data from intervals.icu and publish it",
	Long: `Fetch the athlete profile, recent activities, wellness records and
planned workouts from intervals.icu, build the summary and latest
workout documents, and publish them to the configured destination.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		return runSync(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	flags := syncCmd.Flags()
	flags.String("config", "", "path to the JSON config file (default "+config.DefaultConfigFile+")")
	flags.String("athlete-id", "", "intervals.icu athlete ID")
	flags.String("intervals-key", "", "intervals.icu API key")
	flags.String("github-token", "", "GitHub token")
	flags.String("github-repo", "", "GitHub repo to publish to, e.g. user/fitness-data")
	flags.String("github-branch", "main", "GitHub branch to commit to")
	flags.Int("days", 7, "number of days of data to sync")
	flags.String("output", "", "save documents to this directory instead of publishing")
	flags.Bool("anonymize", true, "redact the athlete ID and activity names")
	flags.Bool("anonymize-events", false, "redact planned workout names too")
	flags.Bool("keep-virtual-names", true, "keep names of virtual activities when anonymizing")
	flags.String("gdrive-credentials", "", "path to Google Drive service account credentials JSON")
	flags.String("gdrive-folder", "", "Google Drive folder to publish into")
	flags.Duration("timeout", 30*time.Second, "timeout for upstream HTTP calls")
	flags.String("log-level", "info", "log level [trace|debug|info|warn|error]")
	flags.String("logs-path", "", "log file path (empty: stdout only)")
	flags.String("pushgateway-url", "", "prometheus pushgateway URL to push run metrics to")
}

func runSync(ctx context.Context, cfg *config.Config) (err error) {
	syncID := uuid.NewString()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryDSN != "",
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: "intervals-sync",
	})
	defer logging.Flush(2 * time.Second)

	otelShutdown, err := tracing.HoneycombSetup(cfg.HoneycombEnabled, "intervals-sync")
	if err != nil {
		return fmt.Errorf("honeycomb setup: %w", err)
	}
	defer otelShutdown()

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("intervals", "sync", promRegistry)
	defer func() {
		if cfg.PushgatewayURL == "" {
			return
		}
		if pushErr := metrics.PushToGateway(cfg.PushgatewayURL, "intervals_sync", promRegistry); pushErr != nil {
			log.Errorf("sync %s: %s", syncID, pushErr)
		}
	}()

	ctx, span := tracing.GlobalTracer.Start(ctx, "sync.run")
	span.SetAttributes(attribute.String("syncID", syncID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	log.Infof(
		"sync %s starting: athlete %s, last %d days, destination [%s]",
		syncID, cfg.AthleteID, cfg.Days, cfg.Destination(),
	)

	tracedHttpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	publisher, err := newPublisher(ctx, cfg, tracedHttpClient)
	if err != nil {
		return err
	}

	client := intervals.NewClient(cfg.APIBaseURL, cfg.AthleteID, cfg.IntervalsKey, tracedHttpClient, metricsManager)
	collector := summary.NewCollector(client, cfg.AthleteID)

	baseTime := time.Now()
	observeStage := func(stage string, start time.Time) {
		metricsManager.HistSyncStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}

	start := time.Now()
	doc, err := collector.Collect(ctx, summary.CollectParams{
		BaseTime:  baseTime,
		Days:      cfg.Days,
		Anonymize: anonymizePolicy(cfg),
	})
	observeStage("collect", start)
	if err != nil {
		return fmt.Errorf("collect training data: %w", err)
	}

	start = time.Now()
	workout := collector.LatestWorkout(ctx)
	observeStage("latest_workout", start)

	destination := string(cfg.Destination())
	commitTime := baseTime.Format(commitTimeLayout)

	start = time.Now()
	summaryLocation, err := publisher.Publish(
		ctx, doc, summaryFileName,
		fmt.Sprintf("Summary Update %s", commitTime),
	)
	observeStage("publish_summary", start)
	if err != nil {
		metricsManager.CounterPublishes.WithLabelValues(destination, "error").Inc()
		return fmt.Errorf("publish summary: %w", err)
	}
	metricsManager.CounterPublishes.WithLabelValues(destination, "ok").Inc()
	metricsManager.GaugeSyncedDaysRange.Set(float64(cfg.Days))
	log.Infof("summary synced: %s", summaryLocation)

	if !workout.HasID() {
		log.Warnln("no valid latest workout found to sync")
		return ErrPartialSync
	}

	start = time.Now()
	workoutLocation, err := publisher.Publish(
		ctx, workout.Raw, workoutFileName,
		fmt.Sprintf("Workout Update %s - %s", workout.ID, commitTime),
	)
	observeStage("publish_workout", start)
	if err != nil {
		metricsManager.CounterPublishes.WithLabelValues(destination, "error").Inc()
		return fmt.Errorf("publish latest workout: %w", err)
	}
	metricsManager.CounterPublishes.WithLabelValues(destination, "ok").Inc()
	log.Infof("workout synced: %s", workoutLocation)

	metricsManager.GaugeLastSyncSuccess.SetToCurrentTime()
	log.Infof("sync %s done", syncID)

	return nil
}

func newPublisher(ctx context.Context, cfg *config.Config, httpClient *http.Client) (publish.Publisher, error) {
	switch cfg.Destination() {
	case config.DestinationLocal:
		log.Debugf("publishing to local directory: %s", cfg.OutputDir)
		return publish.NewLocal(cfg.OutputDir), nil
	case config.DestinationGoogleDrive:
		log.Debugf("publishing to google drive folder: %s", cfg.DriveFolder)
		credentials, err := os.ReadFile(cfg.DriveCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google drive credentials: %w", err)
		}
		return publish.NewGoogleDrive(ctx, credentials, cfg.DriveFolder)
	default:
		log.Debugf("publishing to github repo %s, branch %s", cfg.GitHubRepo, cfg.GitHubBranch)
		return publish.NewGitHub(
			cfg.GitHubAPIBaseURL,
			cfg.GitHubRepo,
			cfg.GitHubBranch,
			cfg.GitHubToken,
			httpClient,
		), nil
	}
}

func anonymizePolicy(cfg *config.Config) summary.AnonymizePolicy {
	if !cfg.Anonymize {
		return summary.OpenPolicy()
	}
	policy := summary.DefaultAnonymizePolicy()
	policy.RedactEventNames = cfg.AnonymizeEvents
	policy.KeepVirtualNames = cfg.KeepVirtualNames
	return policy
}
