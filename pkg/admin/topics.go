package admin

import (
	"context"
	"sort"
	"time"

	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func newTopicBody(t NewTopic) []any {
	assignments := make([]any, 0, len(t.ReplicaAssignments))
	pids := make([]int32, 0, len(t.ReplicaAssignments))
	for pid := range t.ReplicaAssignments {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	for _, pid := range pids {
		replicas := make([]any, 0, len(t.ReplicaAssignments[pid]))
		for _, r := range t.ReplicaAssignments[pid] {
			replicas = append(replicas, r)
		}
		assignments = append(assignments, []any{pid, replicas})
	}

	configs := make([]any, 0, len(t.Configs))
	for _, k := range sortedKeys(t.Configs) {
		v := t.Configs[k]
		configs = append(configs, []any{k, &v})
	}
	return []any{t.Name, t.NumPartitions, t.ReplicationFactor, assignments, configs}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTopicNames(m map[string][]int32) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateTopics creates new topics through the controller. A zero timeout uses
// the configured request timeout; validateOnly requires brokers speaking
// CreateTopics v1+.
func (a *Admin) CreateTopics(ctx context.Context, newTopics []NewTopic, timeout time.Duration, validateOnly bool) (*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.CreateTopics, maxCreateTopicsVersion)
	if err != nil {
		return nil, err
	}
	topics := make([]any, len(newTopics))
	for i, t := range newTopics {
		topics[i] = newTopicBody(t)
	}
	var body []any
	if version == 0 {
		if validateOnly {
			return nil, incompatibleVersion("validate_only", "CreateTopics >= v1", version)
		}
		body = []any{topics, a.timeoutMS(timeout)}
	} else {
		body = []any{topics, a.timeoutMS(timeout), validateOnly}
	}
	return a.sendToController(ctx, protocol.CreateTopics, version, body)
}

// DeleteTopics deletes topics through the controller.
func (a *Admin) DeleteTopics(ctx context.Context, topics []string, timeout time.Duration) (*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DeleteTopics, maxDeleteTopicsVersion)
	if err != nil {
		return nil, err
	}
	names := make([]any, len(topics))
	for i, t := range topics {
		names[i] = t
	}
	return a.sendToController(ctx, protocol.DeleteTopics, version, []any{names, a.timeoutMS(timeout)})
}

// CreatePartitions grows the partition count of existing topics through the
// controller.
func (a *Admin) CreatePartitions(ctx context.Context, topicPartitions map[string]NewPartitions, timeout time.Duration, validateOnly bool) (*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.CreatePartitions, maxCreatePartitionsVersion)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(topicPartitions))
	for name := range topicPartitions {
		names = append(names, name)
	}
	sort.Strings(names)
	topics := make([]any, 0, len(names))
	for _, name := range names {
		np := topicPartitions[name]
		var assignment []any
		if np.NewAssignments != nil {
			assignment = make([]any, 0, len(np.NewAssignments))
			for _, replicas := range np.NewAssignments {
				rs := make([]any, len(replicas))
				for i, r := range replicas {
					rs[i] = r
				}
				assignment = append(assignment, rs)
			}
		}
		topics = append(topics, []any{name, []any{np.TotalCount, assignment}})
	}
	body := []any{topics, a.timeoutMS(timeout), validateOnly}
	return a.sendToController(ctx, protocol.CreatePartitions, version, body)
}

// clusterMetadata issues one Metadata request to a least-loaded broker.
// topics == nil fetches every topic; an empty slice fetches none.
func (a *Admin) clusterMetadata(ctx context.Context, topics []string, autoCreation, includeAuthorizedOps bool) (*protocol.Record, error) {
	version, err := a.client.APIVersion(protocol.Metadata, maxMetadataVersion)
	if err != nil {
		return nil, err
	}
	if autoCreation && version <= 3 {
		return nil, incompatibleVersion("auto_topic_creation", "Metadata >= v4", version)
	}
	if includeAuthorizedOps && version < 8 {
		return nil, incompatibleVersion("include_authorized_operations", "Metadata >= v8", version)
	}
	var topicsField []any
	if topics != nil {
		topicsField = make([]any, len(topics))
		for i, t := range topics {
			topicsField[i] = t
		}
	}
	req, err := a.newRequest(protocol.Metadata, version, metadataBody(version, topicsField, autoCreation, includeAuthorizedOps)...)
	if err != nil {
		return nil, err
	}
	return a.send(ctx, UnknownNodeID, req)
}

func parseBrokers(resp *protocol.Record) []Node {
	entries := resp.Array("brokers")
	brokers := make([]Node, 0, len(entries))
	for _, e := range entries {
		b := e.(*protocol.Record)
		brokers = append(brokers, Node{
			ID:   b.Int32("node_id"),
			Host: b.Str("host"),
			Port: b.Int32("port"),
			Rack: b.StrPtr("rack"),
		})
	}
	return brokers
}

func parseTopicMetadata(resp *protocol.Record) []TopicMetadata {
	entries := resp.Array("topics")
	topics := make([]TopicMetadata, 0, len(entries))
	for _, e := range entries {
		t := e.(*protocol.Record)
		tm := TopicMetadata{
			Topic:      t.Str("topic"),
			IsInternal: t.Bool("is_internal"),
			Err:        kerr.ErrorForCode(t.Int16("error_code")),
		}
		if t.Has("topic_authorized_operations") {
			tm.AuthorizedOperations = validAclOperations(t.Bits("topic_authorized_operations"))
		}
		for _, p := range t.Array("partitions") {
			part := p.(*protocol.Record)
			pm := PartitionMetadata{
				Partition:   part.Int32("partition"),
				Leader:      part.Int32("leader"),
				LeaderEpoch: -1,
				Replicas:    int32Values(part.Array("replicas")),
				ISR:         int32Values(part.Array("isr")),
				Err:         kerr.ErrorForCode(part.Int16("error_code")),
			}
			if part.Has("leader_epoch") {
				pm.LeaderEpoch = part.Int32("leader_epoch")
			}
			if part.Has("offline_replicas") {
				pm.OfflineReplicas = int32Values(part.Array("offline_replicas"))
			}
			tm.Partitions = append(tm.Partitions, pm)
		}
		topics = append(topics, tm)
	}
	return topics
}

func int32Values(vals []any) []int32 {
	out := make([]int32, len(vals))
	for i, v := range vals {
		out[i] = v.(int32)
	}
	return out
}

// ListTopics returns the names of every topic in the cluster, internal ones
// included.
func (a *Admin) ListTopics(ctx context.Context) ([]string, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	resp, err := a.clusterMetadata(ctx, nil, false, false)
	if err != nil {
		return nil, err
	}
	topics := parseTopicMetadata(resp)
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Topic
	}
	return names, nil
}

// DescribeTopics fetches metadata for the named topics, or for all topics
// when topics is nil.
func (a *Admin) DescribeTopics(ctx context.Context, topics []string) ([]TopicMetadata, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	resp, err := a.clusterMetadata(ctx, topics, false, false)
	if err != nil {
		return nil, err
	}
	return parseTopicMetadata(resp), nil
}

// DescribeCluster fetches cluster-wide metadata: brokers, controller and
// cluster id. includeAuthorizedOps requires Metadata v8+.
func (a *Admin) DescribeCluster(ctx context.Context, includeAuthorizedOps bool) (ClusterDescription, error) {
	if err := a.checkOpen(); err != nil {
		return ClusterDescription{}, err
	}
	resp, err := a.clusterMetadata(ctx, []string{}, false, includeAuthorizedOps)
	if err != nil {
		return ClusterDescription{}, err
	}
	desc := ClusterDescription{
		Brokers:      parseBrokers(resp),
		ControllerID: resp.Int32("controller_id"),
		ClusterID:    resp.StrPtr("cluster_id"),
	}
	if resp.Has("cluster_authorized_operations") {
		desc.AuthorizedOperations = validAclOperations(resp.Bits("cluster_authorized_operations"))
	}
	return desc, nil
}
