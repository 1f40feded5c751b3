package perf

import (
	"context"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/encodeous/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DispatchLatency           = metric.NewHistogram("1m1s")
	LinkStateConvergence      = metric.NewHistogram("10m10s")
	DistanceVectorConvergence = metric.NewHistogram("10m10s")
	RunsPerSecond             = metric.NewCounter("10s1s")

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routesim_commands_total",
		Help: "Total number of operator commands, labelled by command and status.",
	}, []string{"command", "status"})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routesim_runs_total",
		Help: "Total number of routing runs, labelled by algorithm and whether the result was cached.",
	}, []string{"algorithm", "cached"})

	ConvergenceSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "routesim_convergence_seconds",
		Help:    "Wall-clock duration of a single routing run.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"algorithm"})
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	http.Handle("/metrics", promhttp.Handler())
	expvar.Publish("routesim:DispatchLatency (µs)", DispatchLatency)
	expvar.Publish("routesim:LSRPConvergence (µs)", LinkStateConvergence)
	expvar.Publish("routesim:DVRPConvergence (µs)", DistanceVectorConvergence)
	expvar.Publish("routesim:Runs/s", RunsPerSecond)
}

// ObserveRun records a routing run. Cached runs are counted but do not contribute to the latency histograms.
func ObserveRun(algorithm string, elapsed time.Duration, cached bool) {
	RunsTotal.WithLabelValues(algorithm, strconv.FormatBool(cached)).Inc()
	RunsPerSecond.Add(1)
	if cached {
		return
	}
	ConvergenceSeconds.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	switch algorithm {
	case "lsrp":
		LinkStateConvergence.Add(float64(elapsed.Microseconds()))
	case "dvrp":
		DistanceVectorConvergence.Add(float64(elapsed.Microseconds()))
	}
}

func ObserveCommand(command string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CommandsTotal.WithLabelValues(command, status).Inc()
}

// Serve exposes /metrics and /debug/metrics on addr until ctx is done
func Serve(ctx context.Context, addr string, log *slog.Logger) {
	srv := &http.Server{Addr: addr, Handler: http.DefaultServeMux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "error", err)
		}
	}()
}
