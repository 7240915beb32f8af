package admin

import (
	"context"
	"time"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// PerformLeaderElection triggers leader election for the given partitions
// through the controller. topicPartitions == nil elects leaders for every
// partition of every topic the client currently knows about.
func (a *Admin) PerformLeaderElection(ctx context.Context, electionType ElectionType, topicPartitions map[string][]int32, timeout time.Duration) (*protocol.Record, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.ElectLeaders, maxElectLeadersVersion)
	if err != nil {
		return nil, err
	}
	if topicPartitions == nil {
		topicPartitions = map[string][]int32{}
		for _, topic := range a.client.Topics() {
			topicPartitions[topic] = a.client.PartitionsForTopic(topic)
		}
	}

	names := sortedTopicNames(topicPartitions)
	topics := make([]any, 0, len(names))
	for _, name := range names {
		pids := make([]any, len(topicPartitions[name]))
		for i, pid := range topicPartitions[name] {
			pids[i] = pid
		}
		topics = append(topics, []any{name, pids})
	}

	body := []any{int8(electionType), topics, a.timeoutMS(timeout)}
	return a.sendToController(ctx, protocol.ElectLeaders, version, body)
}
