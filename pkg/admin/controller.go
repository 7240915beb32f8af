package admin

import (
	"context"
	"time"

	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/backoff"
	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

var minControllerVersion = BrokerVersion{Major: 0, Minor: 10, Patch: 0}

// metadataBody builds a Metadata request body for the negotiated version.
// topics == nil asks for all topics.
func metadataBody(version int16, topics []any, autoCreation, includeAuthorizedOps bool) []any {
	switch {
	case version <= 3:
		return []any{topics}
	case version <= 7:
		return []any{topics, autoCreation}
	default:
		return []any{topics, autoCreation, includeAuthorizedOps, includeAuthorizedOps}
	}
}

// refreshController re-resolves the cluster controller via Metadata against a
// least-loaded broker. A controller_id of -1 means an election is in flight;
// wait a second and ask again until ctx expires. ctx carries the single
// deadline for the whole refresh.
func (a *Admin) refreshController(ctx context.Context) error {
	a.metrics.controllerRefreshes.Inc()

	version, err := a.client.APIVersion(protocol.Metadata, maxMetadataVersion)
	if err != nil {
		return err
	}
	if version == 0 {
		return &UnrecognizedBrokerVersionError{
			Reason: "cannot determine the controller with Metadata v0",
		}
	}
	body := metadataBody(version, nil, false, false)

	bo := backoff.New(ctx, backoff.Config{
		MinBackoff: time.Second,
		MaxBackoff: time.Second,
	})
	for bo.Ongoing() {
		req, err := a.newRequest(protocol.Metadata, version, body...)
		if err != nil {
			return err
		}
		resp, err := a.send(ctx, UnknownNodeID, req)
		if err != nil {
			return errors.Wrap(err, "refreshing controller")
		}
		controllerID := resp.Int32("controller_id")
		if controllerID == -1 {
			level.Warn(a.logger).Log("msg", "controller id not available, retrying")
			bo.Wait()
			continue
		}
		controllerVersion, err := a.client.CheckVersion(controllerID)
		if err != nil {
			return errors.Wrap(err, "checking controller version")
		}
		if controllerVersion.Before(minControllerVersion) {
			return &IncompatibleBrokerVersionError{
				Feature:  "admin operations",
				Required: "brokers >= " + minControllerVersion.String(),
				Got:      controllerVersion.String(),
			}
		}
		a.controllerID = controllerID
		a.hasController = true
		level.Debug(a.logger).Log("msg", "resolved controller", "node", controllerID)
		return nil
	}
	return errors.Wrap(bo.Err(), "controller not available")
}

func (a *Admin) refreshControllerWithTimeout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ControllerRefreshTimeout)
	defer cancel()
	return a.refreshController(ctx)
}

// sendToController dispatches to the cached controller and retries once
// through a refresh when the response carries NotController. A second
// NotController propagates; unbounded retries would mask real cluster
// trouble.
func (a *Admin) sendToController(ctx context.Context, key protocol.ApiKey, version int16, body []any) (*protocol.Record, error) {
	if !a.hasController {
		if err := a.refreshControllerWithTimeout(ctx); err != nil {
			return nil, err
		}
	}
	tries := 2
	for tries > 0 {
		tries--
		req, err := a.newRequest(key, version, body...)
		if err != nil {
			return nil, err
		}
		resp, err := a.send(ctx, a.controllerID, req)
		if err != nil {
			return nil, err
		}
		retry, err := a.inspectControllerResponse(req, resp, tries > 0)
		if err != nil {
			return nil, err
		}
		if !retry {
			return resp, nil
		}
		level.Debug(a.logger).Log("msg", "controller moved, refreshing", "api", key)
		if err := a.refreshControllerWithTimeout(ctx); err != nil {
			return nil, err
		}
	}
	panic("admin: controller retry loop exited without a response")
}

// inspectControllerResponse walks the response's per-entity error array as
// declared by its descriptor. NotController anywhere requests a retry when
// tries remain; it is either reported for all entries or none.
func (a *Admin) inspectControllerResponse(req *protocol.Request, resp *protocol.Record, triesLeft bool) (retry bool, err error) {
	d := req.Descriptor
	switch d.ErrorLayout {
	case protocol.ErrorLayoutNone:
		// Responses without a per-entity error array may still carry a
		// top-level error code.
		if !resp.Has("error_code") {
			return false, nil
		}
		code := resp.Int16("error_code")
		if code == kerr.NotController.Code && triesLeft {
			return true, nil
		}
		if kafkaErr := kerr.ErrorForCode(code); kafkaErr != nil {
			return false, errors.Wrapf(kafkaErr, "%s v%d request failed with response %s", d.Key, d.Version, resp)
		}
	case protocol.ErrorLayoutTopic:
		for _, e := range resp.Array(d.ErrorField) {
			entry := e.(*protocol.Record)
			code := entry.Int16("error_code")
			if code == kerr.NotController.Code && triesLeft {
				return true, nil
			}
			if kafkaErr := kerr.ErrorForCode(code); kafkaErr != nil {
				return false, errors.Wrapf(kafkaErr, "%s v%d request failed with response %s", d.Key, d.Version, resp)
			}
		}
	case protocol.ErrorLayoutTopicPartition:
		for _, t := range resp.Array(d.ErrorField) {
			topic := t.(*protocol.Record)
			for _, p := range topic.Array("partition_result") {
				partition := p.(*protocol.Record)
				code := partition.Int16("error_code")
				if code == kerr.NotController.Code && triesLeft {
					return true, nil
				}
				if code == kerr.ElectionNotNeeded.Code {
					continue
				}
				if kafkaErr := kerr.ErrorForCode(code); kafkaErr != nil {
					return false, errors.Wrapf(kafkaErr, "%s v%d request failed with response %s", d.Key, d.Version, resp)
				}
			}
		}
	}
	return false, nil
}
