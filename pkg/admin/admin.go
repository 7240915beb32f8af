// Package admin is a control-plane client for Kafka-compatible clusters. It
// negotiates protocol versions per broker, routes each operation to the right
// broker (controller, group coordinator, partition leader, a named broker, or
// the least-loaded one) and recovers from stale controller/coordinator caches
// with bounded retries.
//
// The network layer is a collaborator behind the BrokerClient interface; the
// client itself owns no sockets and no background goroutines. Admin calls are
// not safe for concurrent use from multiple goroutines; callers that share an
// Admin must serialise calls.
package admin

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// Admin drives administrative operations against a cluster.
type Admin struct {
	cfg     Config
	client  BrokerClient
	logger  log.Logger
	metrics *adminMetrics

	controllerID  int32
	hasController bool
	coordinators  map[string]int32

	correlation int32
	closed      bool
}

// New builds an Admin over an already-bootstrapped broker client and resolves
// the cluster controller. Requires brokers >= 0.10.0.
func New(cfg Config, client BrokerClient, logger log.Logger, reg prometheus.Registerer) (*Admin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	a := &Admin{
		cfg:          cfg,
		client:       client,
		logger:       logger,
		metrics:      newAdminMetrics(reg),
		coordinators: map[string]int32{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ControllerRefreshTimeout)
	defer cancel()
	if err := a.refreshController(ctx); err != nil {
		a.metrics.close()
		return nil, err
	}
	level.Debug(logger).Log("msg", "admin client started", "controller", a.controllerID)
	return a, nil
}

// Close releases the metrics collectors and the broker client. Idempotent;
// every operation after Close fails with ErrClosed.
func (a *Admin) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.metrics.close()
	return a.client.Close()
}

func (a *Admin) checkOpen() error {
	if a.closed {
		return ErrClosed
	}
	return nil
}

// timeoutMS resolves a per-call timeout against the configured default. The
// value is what gets written into wire timeout fields.
func (a *Admin) timeoutMS(timeout time.Duration) int32 {
	if timeout <= 0 {
		timeout = a.cfg.RequestTimeout
	}
	return int32(timeout / time.Millisecond)
}

// newRequest builds a request for (key, version) with the next correlation id
// and the configured client id.
func (a *Admin) newRequest(key protocol.ApiKey, version int16, body ...any) (*protocol.Request, error) {
	req, err := protocol.NewRequest(key, version, body...)
	if err != nil {
		return nil, err
	}
	a.correlation++
	req.CorrelationID = a.correlation
	if a.cfg.ClientID != "" {
		clientID := a.cfg.ClientID
		req.ClientID = &clientID
	}
	return req, nil
}

// send dispatches one request and blocks for its response. UnknownNodeID
// targets the least-loaded broker.
func (a *Admin) send(ctx context.Context, nodeID int32, req *protocol.Request) (*protocol.Record, error) {
	if nodeID == UnknownNodeID {
		nodeID = a.client.LeastLoadedNode()
	}
	start := time.Now()
	resp, err := a.sendTo(ctx, nodeID, req)
	a.metrics.observe(req.Key(), time.Since(start), err)
	return resp, err
}

func (a *Admin) sendTo(ctx context.Context, nodeID int32, req *protocol.Request) (*protocol.Record, error) {
	if err := a.client.Ready(ctx, nodeID); err != nil {
		return nil, err
	}
	return a.client.Send(ctx, nodeID, req)
}
