package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	processesSpawned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bureaucrat",
		Name:      "processes_spawned_total",
		Help:      "Total number of OS processes spawned per declared process.",
	}, []string{"process"})

	processExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bureaucrat",
		Name:      "process_exits_total",
		Help:      "Total number of reaped process exits by outcome.",
	}, []string{"process", "outcome"})

	processesRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bureaucrat",
		Name:      "processes_running",
		Help:      "Number of spawned processes currently running.",
	})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bureaucrat",
		Name:      "build_info",
		Help:      "Build metadata for the running bureaucrat binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(processesSpawned, processExits, processesRunning, buildInfo)
}

// Registry returns the Prometheus registry containing all bureaucrat metrics.
func Registry() *prometheus.Registry {
	return registry
}

// IncProcessSpawned counts one spawn of the named process.
func IncProcessSpawned(process string) {
	if process == "" {
		return
	}
	processesSpawned.WithLabelValues(process).Inc()
}

// ObserveProcessExit counts one reaped exit with its outcome (exited or
// killed).
func ObserveProcessExit(process, outcome string) {
	if process == "" {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	processExits.WithLabelValues(process, outcome).Inc()
}

// AddRunning adjusts the running-process gauge.
func AddRunning(delta int) {
	processesRunning.Add(float64(delta))
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
