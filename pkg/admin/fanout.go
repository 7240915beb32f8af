package admin

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// nodeRequest pairs a request with its target. UnknownNodeID targets the
// least-loaded broker.
type nodeRequest struct {
	nodeID int32
	req    *protocol.Request
}

// sendAll dispatches every request concurrently and blocks until all have
// completed or failed. Results come back in input order regardless of
// completion order; callers rely on that to zip results to their inputs.
// When several requests fail, the error of the earliest input wins.
func (a *Admin) sendAll(ctx context.Context, requests []nodeRequest) ([]*protocol.Record, error) {
	// Pin least-loaded targets up front so concurrent dispatch does not
	// shift load accounting mid-flight.
	targets := make([]int32, len(requests))
	for i, nr := range requests {
		targets[i] = nr.nodeID
		if targets[i] == UnknownNodeID {
			targets[i] = a.client.LeastLoadedNode()
		}
	}

	results := make([]*protocol.Record, len(requests))
	errs := make([]error, len(requests))
	var g errgroup.Group
	for i, nr := range requests {
		i, nr := i, nr
		g.Go(func() error {
			start := time.Now()
			resp, err := a.sendTo(ctx, targets[i], nr.req)
			a.metrics.observe(nr.req.Key(), time.Since(start), err)
			results[i], errs[i] = resp, err
			return nil
		})
	}
	// Goroutines record their outcome instead of returning it, so Wait
	// always sees every request through.
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
