package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

func SetupPrometheus() *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info, runtime metrics and process collectors.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return promRegistry
}

// PushToGateway delivers all metrics from the registry to a prometheus
// pushgateway. The process is a short-lived job with no /metrics endpoint
// to scrape, metrics leave through a final push.
func PushToGateway(gatewayURL, jobName string, reg *prometheus.Registry) error {
	if err := push.New(gatewayURL, jobName).Gatherer(reg).Push(); err != nil {
		return fmt.Errorf("push metrics to gateway: %w", err)
	}
	return nil
}
