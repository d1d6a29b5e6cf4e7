// Package server wires the capability catalog into a running process.
//
// # Key Components
//
// ServerContext owns the capability registry and its dispatcher. It lazily
// creates Google API backends per account with caching: accounts that have a
// stored OAuth token get live clients, accounts without one fall back to the
// offline backends so the full catalog stays callable before any account is
// linked.
//
// HealthChecker exposes Kubernetes-style liveness and readiness probes.
// Readiness covers the explicit ready flag, shutdown state, and a populated
// capability catalog.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated from
// the main application traffic.
package server
