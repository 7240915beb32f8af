package admin

import (
	"context"
	"strconv"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func describeConfigResourceBody(r ConfigResource) []any {
	// nil Configs fetches every key; an empty map fetches zero keys, as the
	// protocol defines.
	var names []any
	if r.Configs != nil {
		names = make([]any, 0, len(r.Configs))
		for _, k := range sortedKeys(r.Configs) {
			names = append(names, k)
		}
	}
	return []any{int8(r.Type), r.Name, names}
}

func describeConfigsBody(version int16, resources []any, includeSynonyms bool) []any {
	if version == 0 {
		return []any{resources}
	}
	return []any{resources, includeSynonyms}
}

// DescribeConfigs fetches configuration for the given resources. BROKER
// resources must each go to the broker they name, so every broker resource
// becomes its own request; all other resources share one request to a
// least-loaded broker. Responses come back in that order: broker resources
// first (input order), then the combined response for the rest.
func (a *Admin) DescribeConfigs(ctx context.Context, resources []ConfigResource, includeSynonyms bool) ([]*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DescribeConfigs, maxDescribeConfigsVersion)
	if err != nil {
		return nil, err
	}
	if includeSynonyms && version == 0 {
		return nil, incompatibleVersion("include_synonyms", "DescribeConfigs >= v1", version)
	}

	var requests []nodeRequest
	var otherResources []any
	for _, r := range resources {
		if r.Type != ConfigResourceBroker {
			otherResources = append(otherResources, describeConfigResourceBody(r))
			continue
		}
		brokerID, err := strconv.ParseInt(r.Name, 10, 32)
		if err != nil {
			return nil, configErrorf("broker resource name %q must be an integer broker id", r.Name)
		}
		req, err := a.newRequest(protocol.DescribeConfigs, version,
			describeConfigsBody(version, []any{describeConfigResourceBody(r)}, includeSynonyms)...)
		if err != nil {
			return nil, err
		}
		requests = append(requests, nodeRequest{nodeID: int32(brokerID), req: req})
	}
	if len(otherResources) > 0 {
		req, err := a.newRequest(protocol.DescribeConfigs, version,
			describeConfigsBody(version, otherResources, includeSynonyms)...)
		if err != nil {
			return nil, err
		}
		requests = append(requests, nodeRequest{nodeID: UnknownNodeID, req: req})
	}
	return a.sendAll(ctx, requests)
}

// AlterConfigs updates configuration for the given resources with a single
// request to a least-loaded broker.
//
// Known defect kept for compatibility: BROKER resources ought to be sent to
// the broker they name, the way DescribeConfigs routes them, but this request
// always goes to the least-loaded node. Altering a broker config can
// therefore fail or land on the wrong broker.
func (a *Admin) AlterConfigs(ctx context.Context, resources []ConfigResource, validateOnly bool) (*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.AlterConfigs, maxAlterConfigsVersion)
	if err != nil {
		return nil, err
	}
	bodies := make([]any, len(resources))
	for i, r := range resources {
		entries := make([]any, 0, len(r.Configs))
		for _, k := range sortedKeys(r.Configs) {
			v := r.Configs[k]
			entries = append(entries, []any{k, &v})
		}
		bodies[i] = []any{int8(r.Type), r.Name, entries}
	}
	req, err := a.newRequest(protocol.AlterConfigs, version, bodies, validateOnly)
	if err != nil {
		return nil, err
	}
	return a.send(ctx, UnknownNodeID, req)
}
