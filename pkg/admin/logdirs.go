package admin

import (
	"context"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// DescribeLogDirs queries a least-loaded broker for its log directories and
// the partitions stored in each. topicPartitions == nil asks for everything
// the broker hosts.
func (a *Admin) DescribeLogDirs(ctx context.Context, topicPartitions map[string][]int32) (*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DescribeLogDirs, maxDescribeLogDirsVersion)
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
			topics = append(topics, []any{name, pids})
		}
	}
	req, err := a.newRequest(protocol.DescribeLogDirs, version, topics)
	if err != nil {
		return nil, err
	}
	return a.send(ctx, UnknownNodeID, req)
}
