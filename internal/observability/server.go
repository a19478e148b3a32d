// Package observability provides HTTP endpoints for metrics and health checks.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker returns whether the service is ready to accept connections.
type ReadinessChecker func() bool

// Metrics contains the Prometheus metrics the decision engine and its
// policy store/cache record, under the xacml_pdp_ namespace.
type Metrics struct {
	// DecisionsTotal counts evaluate() calls by final Decision value
	// (Permit, Deny, NotApplicable, IndeterminateD/P/DP).
	DecisionsTotal *prometheus.CounterVec
	// EvaluationDuration is the root-evaluator latency, per spec §5's
	// single-threaded-per-request evaluation model.
	EvaluationDuration prometheus.Histogram
	// RejectedAttributesTotal counts mustBePresent designators/selectors
	// that resolved to an empty bag (missing-attribute Indeterminate).
	RejectedAttributesTotal prometheus.Counter
	// CacheStaleness reports the age, in seconds, of the policy cache's
	// last successful reload from the store.
	CacheStaleness prometheus.Gauge
	// CacheReloadsTotal counts policy cache reloads by outcome.
	CacheReloadsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the engine's Prometheus metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xacml_pdp_decisions_total",
				Help: "Total number of decisions returned, by decision value",
			},
			[]string{"decision"},
		),
		EvaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "xacml_pdp_evaluation_duration_seconds",
				Help:    "Duration of a single individual decision evaluation",
				Buckets: prometheus.DefBuckets,
			},
		),
		RejectedAttributesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "xacml_pdp_rejected_attributes_total",
				Help: "Total number of mustBePresent attributes that resolved empty",
			},
		),
		CacheStaleness: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "xacml_pdp_policy_cache_staleness_seconds",
				Help: "Seconds since the policy cache's last successful reload",
			},
		),
		CacheReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xacml_pdp_policy_cache_reloads_total",
				Help: "Total number of policy cache reloads, by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.DecisionsTotal)
	reg.MustRegister(m.EvaluationDuration)
	reg.MustRegister(m.RejectedAttributesTotal)
	reg.MustRegister(m.CacheStaleness)
	reg.MustRegister(m.CacheReloadsTotal)

	return m
}

// Server provides HTTP endpoints for observability (metrics and health probes).
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *Metrics
	isReady    ReadinessChecker
	running    atomic.Bool
}

// NewServer creates a new observability server.
func NewServer(addr string, readinessChecker ReadinessChecker) *Server {
	// Create a new registry to avoid polluting the global one
	registry := prometheus.NewRegistry()

	// Register standard Go metrics
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Register custom metrics
	metrics := NewMetrics(registry)

	s := &Server{
		addr:     addr,
		registry: registry,
		metrics:  metrics,
		isReady:  readinessChecker,
	}

	return s
}

// Metrics returns the custom metrics for recording application events.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start begins serving observability endpoints. The returned channel
// receives at most one error: an unexpected Serve() failure, or nothing
// (the channel is closed) on a graceful Stop().
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("observability server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	// Kubernetes-style health probes
	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := s.httpServer.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("observability server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("observability server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the observability server. If ctx expires
// before active connections drain, the running state is restored so
// Stop may be retried.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return fmt.Errorf("failed to shutdown observability server: %w", err)
		}
	}

	slog.Info("observability server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// handleLiveness returns 200 if the process is running.
// This is a simple check that the process is alive.
func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleReadiness returns 200 if the service is ready to accept connections,
// or 503 if not ready.
func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if s.isReady == nil || s.isReady() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready\n"))
}
