package admin

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// AlterPartitionReassignments starts, changes or cancels replica movements
// through the controller. A nil replica list for a partition cancels its
// in-flight reassignment. Per-partition outcomes are returned keyed by
// partition; only transport and top-level failures become the error.
func (a *Admin) AlterPartitionReassignments(ctx context.Context, reassignments map[TopicPartition][]int32, timeout time.Duration) (map[TopicPartition]error, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.AlterPartitionReassignments, maxAlterPartitionReassignmentsVersion)
	if err != nil {
		return nil, err
	}

	var topicOrder []string
	byTopic := map[string][]any{}
	for _, tp := range sortedPartitions(reassignments) {
		var replicas []any
		if target := reassignments[tp]; target != nil {
			replicas = make([]any, len(target))
			for i, r := range target {
				replicas[i] = r
			}
		}
		if _, ok := byTopic[tp.Topic]; !ok {
			topicOrder = append(topicOrder, tp.Topic)
		}
		byTopic[tp.Topic] = append(byTopic[tp.Topic], []any{tp.Partition, replicas, nil})
	}
	topics := make([]any, 0, len(topicOrder))
	for _, name := range topicOrder {
		topics = append(topics, []any{name, byTopic[name], nil})
	}

	body := []any{a.timeoutMS(timeout), topics, nil}
	resp, err := a.sendToController(ctx, protocol.AlterPartitionReassignments, version, body)
	if err != nil {
		return nil, err
	}

	outcomes := map[TopicPartition]error{}
	for _, t := range resp.Array("responses") {
		topic := t.(*protocol.Record)
		for _, p := range topic.Array("partitions") {
			part := p.(*protocol.Record)
			tp := TopicPartition{Topic: topic.Str("name"), Partition: part.Int32("partition_index")}
			outcomes[tp] = kerr.ErrorForCode(part.Int16("error_code"))
		}
	}
	return outcomes, nil
}

// ListPartitionReassignments reports the replica movements currently in
// flight, for the given partitions or for all of them when topicPartitions is
// nil.
func (a *Admin) ListPartitionReassignments(ctx context.Context, topicPartitions map[string][]int32, timeout time.Duration) (map[TopicPartition]PartitionReassignment, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.ListPartitionReassignments, maxListPartitionReassignmentsVersion)
	if err != nil {
		return nil, err
	}

	var topics []any
	if topicPartitions != nil {
		topics = make([]any, 0, len(topicPartitions))
		for _, name := range sortedTopicNames(topicPartitions) {
			pids := make([]any, len(topicPartitions[name]))
			for i, pid := range topicPartitions[name] {
				pids[i] = pid
			}
			topics = append(topics, []any{name, pids, nil})
		}
	}

	body := []any{a.timeoutMS(timeout), topics, nil}
	resp, err := a.sendToController(ctx, protocol.ListPartitionReassignments, version, body)
	if err != nil {
		return nil, err
	}
	if kafkaErr := kerr.ErrorForCode(resp.Int16("error_code")); kafkaErr != nil {
		return nil, errors.Wrapf(kafkaErr, "listing partition reassignments failed with response %s", resp)
	}

	reassignments := map[TopicPartition]PartitionReassignment{}
	for _, t := range resp.Array("topics") {
		topic := t.(*protocol.Record)
		for _, p := range topic.Array("partitions") {
			part := p.(*protocol.Record)
			tp := TopicPartition{Topic: topic.Str("name"), Partition: part.Int32("partition_index")}
			reassignments[tp] = PartitionReassignment{
				Replicas:         int32Values(part.Array("replicas")),
				AddingReplicas:   int32Values(part.Array("adding_replicas")),
				RemovingReplicas: int32Values(part.Array("removing_replicas")),
			}
		}
	}
	return reassignments, nil
}

func sortedPartitions[V any](m map[TopicPartition]V) []TopicPartition {
	out := make([]TopicPartition, 0, len(m))
	for tp := range m {
		out = append(out, tp)
	}
	sortTopicPartitions(out)
	return out
}
