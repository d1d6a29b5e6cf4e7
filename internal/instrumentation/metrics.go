package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod     = "method"
	attrPath       = "path"
	attrStatus     = "status"
	attrOperation  = "operation"
	attrService    = "service"
	attrCapability = "capability"
	attrAccount    = "account"
	attrModel      = "model"
	attrDirection  = "direction"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Google API metrics
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	// Capability dispatch metrics
	capabilityInvocationsTotal metric.Int64Counter
	capabilityDuration         metric.Float64Histogram

	// Planner metrics
	plannerTurnsTotal  metric.Int64Counter
	plannerTokensTotal metric.Int64Counter

	// Configuration
	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active user sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	// Google API Metrics
	m.googleAPIOperationsTotal, err = meter.Int64Counter(
		"google_api_operations_total",
		metric.WithDescription("Total number of Google API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operations_total counter: %w", err)
	}

	m.googleAPIOperationDuration, err = meter.Float64Histogram(
		"google_api_operation_duration_seconds",
		metric.WithDescription("Google API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	// Capability dispatch metrics
	m.capabilityInvocationsTotal, err = meter.Int64Counter(
		"capability_invocations_total",
		metric.WithDescription("Total number of capability invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability_invocations_total counter: %w", err)
	}

	m.capabilityDuration, err = meter.Float64Histogram(
		"capability_duration_seconds",
		metric.WithDescription("Capability execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability_duration_seconds histogram: %w", err)
	}

	// Planner metrics
	m.plannerTurnsTotal, err = meter.Int64Counter(
		"planner_turns_total",
		metric.WithDescription("Total number of planner model turns"),
		metric.WithUnit("{turn}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner_turns_total counter: %w", err)
	}

	m.plannerTokensTotal, err = meter.Int64Counter(
		"planner_tokens_total",
		metric.WithDescription("Total number of planner tokens, by direction"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner_tokens_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGoogleAPIOperation records a Google API operation with service, operation,
// status, and duration.
//
// Parameters:
//   - service: Google service name (gmail, calendar, drive, tasks, ...)
//   - operation: Operation type (list, get, create, update, delete, send, etc.)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCapabilityInvocation records a capability dispatch with slug, status, and duration.
//
// Parameters:
//   - slug: Capability slug (e.g., "GMAIL_SEND_EMAIL")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the execution
func (m *Metrics) RecordCapabilityInvocation(ctx context.Context, slug, status string, duration time.Duration) {
	if m.capabilityInvocationsTotal == nil || m.capabilityDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCapability, slug),
		attribute.String(attrStatus, status),
	}

	m.capabilityInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.capabilityDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCapabilityInvocationWithAccount records a capability dispatch with account info.
// This is the detailed version that includes the account when detailedLabels is enabled.
func (m *Metrics) RecordCapabilityInvocationWithAccount(ctx context.Context, slug, status, account string, duration time.Duration) {
	if m.capabilityInvocationsTotal == nil || m.capabilityDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCapability, slug),
		attribute.String(attrStatus, status),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.capabilityInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.capabilityDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// ObserveDispatch records a capability dispatch. It satisfies the dispatcher's
// Observer interface so the Metrics recorder can be wired in directly. The
// account label is only emitted when detailedLabels is enabled.
func (m *Metrics) ObserveDispatch(ctx context.Context, slug, account string, succeeded bool, duration time.Duration, _ string) {
	status := StatusSuccess
	if !succeeded {
		status = StatusError
	}
	m.RecordCapabilityInvocationWithAccount(ctx, slug, status, account, duration)
}

// RecordPlannerTurns records completed planner model turns for a run.
func (m *Metrics) RecordPlannerTurns(ctx context.Context, model string, turns int) {
	if m.plannerTurnsTotal == nil {
		return // Instrumentation not initialized
	}

	m.plannerTurnsTotal.Add(ctx, int64(turns), metric.WithAttributes(
		attribute.String(attrModel, model),
	))
}

// RecordPlannerTokens records planner token usage for a run.
func (m *Metrics) RecordPlannerTokens(ctx context.Context, model string, inputTokens, outputTokens int64) {
	if m.plannerTokensTotal == nil {
		return // Instrumentation not initialized
	}

	m.plannerTokensTotal.Add(ctx, inputTokens, metric.WithAttributes(
		attribute.String(attrModel, model),
		attribute.String(attrDirection, "input"),
	))
	m.plannerTokensTotal.Add(ctx, outputTokens, metric.WithAttributes(
		attribute.String(attrModel, model),
		attribute.String(attrDirection, "output"),
	))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}
