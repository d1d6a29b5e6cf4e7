package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls how dispatch telemetry is exported. Zero value disables
// everything; DefaultConfig reads the usual OTEL_* and workdeck-specific
// environment variables.
type Config struct {
	// ServiceName identifies this process in exported telemetry.
	// Defaults to "workdeck".
	ServiceName string

	// ServiceVersion is stamped onto the resource at startup.
	ServiceVersion string

	// ServiceInstanceID distinguishes replicas. Falls back to the
	// hostname, which under Kubernetes is the pod name.
	ServiceInstanceID string

	// K8sNamespace and K8sPodName enrich the resource when running
	// in a cluster. Empty values are simply omitted.
	K8sNamespace string
	K8sPodName   string

	// Enabled gates the whole package. INSTRUMENTATION_ENABLED=false
	// turns both metrics and tracing into no-ops.
	Enabled bool

	// MetricsExporter picks where capability metrics go:
	// "prometheus" (default), "otlp", or "stdout".
	MetricsExporter string

	// TracingExporter picks where dispatch spans go:
	// "otlp", "stdout", or "none" (default).
	TracingExporter string

	// OTLPEndpoint is the collector address for the otlp exporters,
	// host:port without a scheme, e.g. "localhost:4318".
	OTLPEndpoint string

	// OTLPInsecure sends OTLP over plain HTTP instead of TLS. Spans
	// carry account and capability metadata, so this is only for
	// local collectors.
	OTLPInsecure bool

	// TraceSamplingRate is the head sampling ratio, 0.0 to 1.0.
	// Defaults to 0.1.
	TraceSamplingRate float64

	// PrometheusEndpoint is the scrape path (default "/metrics").
	PrometheusEndpoint string

	// DetailedLabels adds per-account labels to capability metrics.
	// Every distinct account becomes a label value, so leave this off
	// unless the account set is small and known.
	DetailedLabels bool

	// AuditLogging configures the capability audit trail.
	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the audit trail written for every capability
// dispatch.
type AuditLoggingConfig struct {
	// Enabled turns the audit observer on (default: true).
	Enabled bool

	// IncludePII logs full user email addresses instead of anonymized
	// identifiers. Only enable when the log destination is access
	// controlled.
	IncludePII bool

	// LogLevel is the slog level for audit records ("debug", "info",
	// "warn", "error"). Failed dispatches are always logged at Warn.
	LogLevel string
}

// DefaultConfig builds a Config from the environment, falling back to
// defaults suitable for a single-process deployment.
func DefaultConfig() Config {
	config := Config{
		ServiceName:        getEnvOrDefault("OTEL_SERVICE_NAME", "workdeck"),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  getEnvOrDefault("OTEL_SERVICE_INSTANCE_ID", ""),
		K8sNamespace:       getEnvOrDefault("K8S_NAMESPACE", getEnvOrDefault("POD_NAMESPACE", "")),
		K8sPodName:         getEnvOrDefault("K8S_POD_NAME", getEnvOrDefault("HOSTNAME", "")),
		Enabled:            getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:    getEnvOrDefault("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    getEnvOrDefault("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:       getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       getEnvBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:  getEnvFloatOrDefault("OTEL_TRACES_SAMPLER_ARG", 0.1),
		PrometheusEndpoint: getEnvOrDefault("PROMETHEUS_ENDPOINT", "/metrics"),
		DetailedLabels:     getEnvBoolOrDefault("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    getEnvBoolOrDefault("AUDIT_LOGGING_ENABLED", true),
			IncludePII: getEnvBoolOrDefault("AUDIT_LOGGING_INCLUDE_PII", false),
			LogLevel:   getEnvOrDefault("AUDIT_LOGGING_LEVEL", "info"),
		},
	}

	return config
}

// Validate rejects configurations the exporters would fail on later.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	validMetricsExporters := map[string]bool{ExporterPrometheus: true, ExporterOTLP: true, ExporterStdout: true}
	if c.MetricsExporter != "" && !validMetricsExporters[c.MetricsExporter] {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	validTracingExporters := map[string]bool{ExporterOTLP: true, ExporterStdout: true, ExporterNone: true}
	if c.TracingExporter != "" && !validTracingExporters[c.TracingExporter] {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	// Both otlp exporters are useless without a collector address.
	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
	}
	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault parses the variable with strconv.ParseBool; unset or
// unparseable values yield the default.
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// Label values shared across the capability metrics.
const (
	// Dispatch outcome statuses
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"

	// Workspace service names, matching the capability slug prefixes
	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"
	ServiceDrive    = "drive"
	ServiceDocs     = "docs"
	ServiceSheets   = "sheets"
	ServiceSlides   = "slides"
	ServiceForms    = "forms"
	ServiceChat     = "chat"
	ServiceSearch   = "search"
	ServiceTasks    = "tasks"

	// Exporter types
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	// Metric recording intervals
	DefaultMetricInterval = 10 * time.Second
)
