package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context, detailed bool) *Provider {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
		DetailedLabels:  detailed,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "GET", "/healthz", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)
}

func TestMetrics_RecordGoogleAPIOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordGoogleAPIOperation(ctx, ServiceGmail, "list", StatusSuccess, 200*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceCalendar, "create", StatusError, 500*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceDrive, "get", StatusSuccess, 100*time.Millisecond)
}

func TestMetrics_RecordCapabilityInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordCapabilityInvocation(ctx, "GMAIL_SEND_EMAIL", StatusSuccess, 100*time.Millisecond)
	metrics.RecordCapabilityInvocation(ctx, "GOOGLECALENDAR_CREATE_EVENT", StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordCapabilityInvocationWithAccount(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Without detailed labels the account is ignored
	metrics := newTestProvider(t, ctx, false).Metrics()
	metrics.RecordCapabilityInvocationWithAccount(ctx, "GMAIL_SEND_EMAIL", StatusSuccess, "work", 100*time.Millisecond)
}

func TestMetrics_RecordCapabilityInvocationWithAccount_DetailedLabels(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// With detailed labels the account is included
	metrics := newTestProvider(t, ctx, true).Metrics()
	metrics.RecordCapabilityInvocationWithAccount(ctx, "GMAIL_SEND_EMAIL", StatusSuccess, "work", 100*time.Millisecond)
}

func TestMetrics_ObserveDispatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic; maps succeeded to status
	metrics.ObserveDispatch(ctx, "GMAIL_SEND_EMAIL", "default", true, 100*time.Millisecond, "")
	metrics.ObserveDispatch(ctx, "GMAIL_SEND_EMAIL", "work", false, 100*time.Millisecond, "backend unavailable")
}

func TestMetrics_RecordPlannerTurnsAndTokens(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordPlannerTurns(ctx, "claude-sonnet-4-5", 3)
	metrics.RecordPlannerTokens(ctx, "claude-sonnet-4-5", 1200, 340)
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.IncrementActiveSessions(ctx)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil even when disabled")
	}

	// All these should not panic even with nil underlying metrics
	metrics.RecordHTTPRequest(ctx, "GET", "/healthz", 200, 100*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceGmail, "list", StatusSuccess, 200*time.Millisecond)
	metrics.RecordCapabilityInvocation(ctx, "GMAIL_SEND_EMAIL", StatusSuccess, 100*time.Millisecond)
	metrics.RecordCapabilityInvocationWithAccount(ctx, "GMAIL_SEND_EMAIL", StatusSuccess, "work", 100*time.Millisecond)
	metrics.ObserveDispatch(ctx, "GMAIL_SEND_EMAIL", "default", true, 100*time.Millisecond, "")
	metrics.RecordPlannerTurns(ctx, "claude-sonnet-4-5", 1)
	metrics.RecordPlannerTokens(ctx, "claude-sonnet-4-5", 10, 5)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}
