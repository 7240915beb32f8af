package admin

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

const coordinatorTypeGroup int8 = 0

func (a *Admin) findCoordinatorRequest(groupID string) (*protocol.Request, error) {
	version, err := a.client.APIVersion(protocol.FindCoordinator, maxFindCoordinatorVersion)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return a.newRequest(protocol.FindCoordinator, version, groupID)
	}
	return a.newRequest(protocol.FindCoordinator, version, groupID, coordinatorTypeGroup)
}

// findCoordinatorIDs resolves the coordinator broker for each group, sending
// one FindCoordinator per uncached group in parallel. Any error code fails
// the whole lookup. Successful answers populate the coordinator cache.
func (a *Admin) findCoordinatorIDs(ctx context.Context, groupIDs []string) (map[string]int32, error) {
	out := make(map[string]int32, len(groupIDs))
	var pending []string
	for _, g := range groupIDs {
		if id, ok := a.coordinators[g]; ok {
			out[g] = id
			continue
		}
		pending = append(pending, g)
	}
	if len(pending) == 0 {
		return out, nil
	}

	requests := make([]nodeRequest, len(pending))
	for i, g := range pending {
		req, err := a.findCoordinatorRequest(g)
		if err != nil {
			return nil, err
		}
		requests[i] = nodeRequest{nodeID: UnknownNodeID, req: req}
	}
	responses, err := a.sendAll(ctx, requests)
	if err != nil {
		return nil, err
	}
	for i, resp := range responses {
		if kafkaErr := kerr.ErrorForCode(resp.Int16("error_code")); kafkaErr != nil {
			return nil, errors.Wrapf(kafkaErr, "finding coordinator for group %q failed with response %s", pending[i], resp)
		}
		id := resp.Int32("coordinator_id")
		a.coordinators[pending[i]] = id
		out[pending[i]] = id
	}
	return out, nil
}

// evictCoordinatorOn drops a cached coordinator when a group RPC reports the
// cache stale. No automatic retry: the caller sees the error.
func (a *Admin) evictCoordinatorOn(groupID string, err error) {
	if errors.Is(err, kerr.NotCoordinator) {
		delete(a.coordinators, groupID)
	}
}
