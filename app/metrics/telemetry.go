// Package metrics exposes the engine metrics to prometheus. Keeper
// telemetry is recorded through the global go-metrics instance, whose sink
// feeds the same registry as the host gauges.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cosmossdk.io/log"
	gometrics "github.com/hashicorp/go-metrics"
	gometricsprom "github.com/hashicorp/go-metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the telemetry of the engine.
type Config struct {
	ServiceName          string
	Retention            time.Duration
	EnableRuntimeMetrics bool
}

// Telemetry owns the prometheus registry of the engine.
type Telemetry struct {
	registry *prometheus.Registry
	metrics  *gometrics.Metrics
	logger   log.Logger
}

// New creates a registry, installs a go-metrics prometheus sink on it as the
// global metrics instance and registers the process collectors.
func New(cfg Config, logger log.Logger) (*Telemetry, error) {
	registry := prometheus.NewRegistry()

	sink, err := gometricsprom.NewPrometheusSinkFrom(gometricsprom.PrometheusOpts{
		Expiration: cfg.Retention,
		Registerer: registry,
		Name:       cfg.ServiceName + "_sink",
	})
	if err != nil {
		return nil, err
	}

	mcfg := gometrics.DefaultConfig(cfg.ServiceName)
	mcfg.EnableHostname = false
	mcfg.EnableRuntimeMetrics = cfg.EnableRuntimeMetrics
	m, err := gometrics.NewGlobal(mcfg, sink)
	if err != nil {
		return nil, err
	}

	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	return &Telemetry{
		registry: registry,
		metrics:  m,
		logger:   logger.With("module", "telemetry"),
	}, nil
}

// Registry returns the registry host collectors register with.
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// Handler serves the registry in the prometheus exposition format.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (t *Telemetry) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", t.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		t.logger.Info("serving metrics", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops the global metrics instance.
func (t *Telemetry) Shutdown() {
	t.metrics.Shutdown()
}
