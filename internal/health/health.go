// Package health serves the gRPC health checking protocol for the configured
// store connections. Each connection is a service named after it; the empty
// service name reports SERVING only while every connection answers PING.
package health

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/SiriusScan/mcp-redis/internal/connection"
	"github.com/SiriusScan/mcp-redis/internal/metrics"
)

// DefaultInterval is the time between two probe rounds.
const DefaultInterval = 15 * time.Second

// probeTimeout bounds a single PING.
const probeTimeout = 2 * time.Second

// Checker probes every connection and publishes the result.
type Checker struct {
	conns    *connection.Registry
	status   *health.Server
	metrics  metrics.Collector
	logger   *zap.Logger
	interval time.Duration

	mu     sync.Mutex
	server *grpc.Server
	done   chan struct{}
}

// NewChecker creates a checker. Every service starts as NOT_SERVING until
// the first probe.
func NewChecker(conns *connection.Registry, collector metrics.Collector, logger *zap.Logger) *Checker {
	if collector == nil {
		collector = metrics.Noop()
	}
	c := &Checker{
		conns:    conns,
		status:   health.NewServer(),
		metrics:  collector,
		logger:   logger.Named("health"),
		interval: DefaultInterval,
	}

	c.status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	for _, e := range conns.Entries() {
		c.status.SetServingStatus(e.Name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return c
}

// Status returns the health service implementation.
func (c *Checker) Status() healthpb.HealthServer {
	return c.status
}

// Probe pings every connection once and updates the published statuses. It
// reports whether all connections answered.
func (c *Checker) Probe(ctx context.Context) bool {
	allUp := true
	for _, e := range c.conns.Entries() {
		pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := e.Client.Ping(pingCtx)
		cancel()

		up := err == nil
		c.metrics.SetConnectionUp(e.Name, up)
		if up {
			c.status.SetServingStatus(e.Name, healthpb.HealthCheckResponse_SERVING)
			continue
		}

		allUp = false
		c.status.SetServingStatus(e.Name, healthpb.HealthCheckResponse_NOT_SERVING)
		c.logger.Warn("Connection health check failed",
			zap.String("connection", e.Name),
			zap.Error(err))
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !allUp {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.status.SetServingStatus("", overall)
	return allUp
}

// Run probes immediately and then on every interval until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}

// Start listens on addr and serves the health service with reflection
// enabled. It returns once the listener is bound.
func (c *Checker) Start(addr string) (net.Addr, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, c.status)
	reflection.Register(srv)

	done := make(chan struct{})
	c.mu.Lock()
	c.server = srv
	c.done = done
	c.mu.Unlock()

	c.logger.Info("Health server listening", zap.String("address", lis.Addr().String()))
	go func() {
		defer close(done)
		if err := srv.Serve(lis); err != nil {
			c.logger.Error("Health server stopped", zap.Error(err))
		}
	}()
	return lis.Addr(), nil
}

// Stop marks every service NOT_SERVING and stops the gRPC server.
func (c *Checker) Stop() {
	c.status.Shutdown()

	c.mu.Lock()
	srv, done := c.server, c.done
	c.server = nil
	c.mu.Unlock()

	if srv != nil {
		srv.GracefulStop()
		<-done
	}
}
