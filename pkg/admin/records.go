package admin

import (
	"context"
	"sort"
	"time"

	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// leaderForPartitions buckets the given partitions by their current leader,
// resolved from one Metadata request covering the union of topics. Partitions
// the metadata does not answer for, leaderless ones included, fail the whole
// lookup.
func (a *Admin) leaderForPartitions(ctx context.Context, partitions []TopicPartition) (map[int32][]TopicPartition, error) {
	topicSet := map[string]struct{}{}
	for _, tp := range partitions {
		topicSet[tp.Topic] = struct{}{}
	}
	topics := make([]string, 0, len(topicSet))
	for t := range topicSet {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	resp, err := a.clusterMetadata(ctx, topics, false, false)
	if err != nil {
		return nil, err
	}

	wanted := make(map[TopicPartition]struct{}, len(partitions))
	for _, tp := range partitions {
		wanted[tp] = struct{}{}
	}
	byLeader := map[int32][]TopicPartition{}
	for _, tm := range parseTopicMetadata(resp) {
		for _, pm := range tm.Partitions {
			tp := TopicPartition{Topic: tm.Topic, Partition: pm.Partition}
			if _, ok := wanted[tp]; !ok || pm.Leader == UnknownNodeID {
				continue
			}
			byLeader[pm.Leader] = append(byLeader[pm.Leader], tp)
			delete(wanted, tp)
		}
	}
	if len(wanted) > 0 {
		missing := make([]TopicPartition, 0, len(wanted))
		for tp := range wanted {
			missing = append(missing, tp)
		}
		sortTopicPartitions(missing)
		return nil, &UnknownTopicOrPartitionError{Partitions: missing}
	}
	return byLeader, nil
}

// DeleteRecords truncates each partition's log before the given offset. One
// request goes to each partition leader; leaderHint, when not UnknownNodeID,
// skips leader resolution and sends everything to that broker. A single
// failing partition surfaces its broker error directly; several failing
// partitions aggregate into a DeleteRecordsError.
func (a *Admin) DeleteRecords(ctx context.Context, beforeOffsets map[TopicPartition]int64, timeout time.Duration, leaderHint int32) (map[TopicPartition]DeletedRecords, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DeleteRecords, maxDeleteRecordsVersion)
	if err != nil {
		return nil, err
	}

	partitions := sortedPartitions(beforeOffsets)

	var byLeader map[int32][]TopicPartition
	if leaderHint != UnknownNodeID {
		byLeader = map[int32][]TopicPartition{leaderHint: partitions}
	} else {
		byLeader, err = a.leaderForPartitions(ctx, partitions)
		if err != nil {
			return nil, err
		}
	}
	leaders := make([]int32, 0, len(byLeader))
	for leader := range byLeader {
		leaders = append(leaders, leader)
	}
	sort.Slice(leaders, func(i, j int) bool { return leaders[i] < leaders[j] })

	requests := make([]nodeRequest, 0, len(leaders))
	for _, leader := range leaders {
		var topicOrder []string
		byTopic := map[string][]any{}
		for _, tp := range byLeader[leader] {
			if _, ok := byTopic[tp.Topic]; !ok {
				topicOrder = append(topicOrder, tp.Topic)
			}
			byTopic[tp.Topic] = append(byTopic[tp.Topic], []any{tp.Partition, beforeOffsets[tp]})
		}
		topicsField := make([]any, 0, len(topicOrder))
		for _, t := range topicOrder {
			topicsField = append(topicsField, []any{t, byTopic[t]})
		}
		req, err := a.newRequest(protocol.DeleteRecords, version, topicsField, a.timeoutMS(timeout))
		if err != nil {
			return nil, err
		}
		requests = append(requests, nodeRequest{nodeID: leader, req: req})
	}
	responses, err := a.sendAll(ctx, requests)
	if err != nil {
		return nil, err
	}

	deleted := map[TopicPartition]DeletedRecords{}
	failed := map[TopicPartition]error{}
	for _, resp := range responses {
		for _, t := range resp.Array("topics") {
			topic := t.(*protocol.Record)
			for _, p := range topic.Array("partitions") {
				part := p.(*protocol.Record)
				tp := TopicPartition{Topic: topic.Str("name"), Partition: part.Int32("partition_index")}
				if kafkaErr := kerr.ErrorForCode(part.Int16("error_code")); kafkaErr != nil {
					failed[tp] = kafkaErr
					continue
				}
				deleted[tp] = DeletedRecords{LowWatermark: part.Int64("low_watermark")}
			}
		}
	}
	switch len(failed) {
	case 0:
		return deleted, nil
	case 1:
		for _, err := range failed {
			return nil, err
		}
	}
	return nil, &DeleteRecordsError{Errors: failed}
}
