package cmd

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrPartialSync marks a run that published the summary but had no valid
// latest workout to publish. Schedulers can tell it apart from a failure
// through the exit code.
var ErrPartialSync = errors.New("no valid latest workout found to sync")

var rootCmd = &cobra.Command{
	Use:   "intervals-sync",
	Short: "Sync intervals.icu athlete data to GitHub, Google Drive or disk",
	Long: `intervals-sync fetches athlete data from intervals.icu, condenses it into
a small summary document plus the latest workout in full detail, and
publishes both to a GitHub repo, a Google Drive folder or a local
directory. It runs once and exits, made to be driven by cron or CI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and maps the outcome to an exit code:
// 0 success, 1 failure, 3 partial success.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, ErrPartialSync) {
		os.Exit(3)
	}
	log.Errorf("sync failed: %s", err)
	os.Exit(1)
}
