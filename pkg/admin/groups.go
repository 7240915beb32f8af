package admin

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// consumerProtocolType is the protocol_type the standard consumer group
// protocol advertises. Groups created by pre-0.9 clients report "".
const consumerProtocolType = "consumer"

// resolveCoordinators maps every group to its coordinator, using the caller's
// override for all groups when one is given.
func (a *Admin) resolveCoordinators(ctx context.Context, groupIDs []string, coordinatorID int32) (map[string]int32, error) {
	if coordinatorID != UnknownNodeID {
		out := make(map[string]int32, len(groupIDs))
		for _, g := range groupIDs {
			out[g] = coordinatorID
		}
		return out, nil
	}
	return a.findCoordinatorIDs(ctx, groupIDs)
}

func (a *Admin) describeGroupsRequest(groupID string, version int16, includeAuthorizedOps bool) (*protocol.Request, error) {
	// One group per request. Batching per coordinator would save round
	// trips but makes per-group error attribution ambiguous, so each group
	// keeps its own request.
	groups := []any{groupID}
	if version <= 2 {
		return a.newRequest(protocol.DescribeGroups, version, groups)
	}
	return a.newRequest(protocol.DescribeGroups, version, groups, includeAuthorizedOps)
}

func decodeMemberBlobs(m *MemberDescription) error {
	if meta, err := protocol.DecodeConsumerMetadata(m.RawMetadata); err != nil {
		return errors.Wrapf(err, "member %s metadata", m.MemberID)
	} else if meta != nil {
		for _, t := range meta.Array("subscription") {
			m.Subscription = append(m.Subscription, t.(string))
		}
	}
	assign, err := protocol.DecodeConsumerAssignment(m.RawAssignment)
	if err != nil {
		return errors.Wrapf(err, "member %s assignment", m.MemberID)
	}
	if assign != nil {
		m.Assignment = map[string][]int32{}
		for _, t := range assign.Array("assignment") {
			entry := t.(*protocol.Record)
			m.Assignment[entry.Str("topic")] = int32Values(entry.Array("partitions"))
		}
	}
	return nil
}

func (a *Admin) processDescribedGroup(groupID string, resp *protocol.Record) (GroupDescription, error) {
	groups := resp.Array("groups")
	if len(groups) != 1 {
		return GroupDescription{}, errors.Errorf("DescribeGroups response carries %d groups, want 1", len(groups))
	}
	group := groups[0].(*protocol.Record)
	if kafkaErr := kerr.ErrorForCode(group.Int16("error_code")); kafkaErr != nil {
		a.evictCoordinatorOn(groupID, kafkaErr)
		return GroupDescription{}, errors.Wrapf(kafkaErr, "describing group %q failed with response %s", groupID, resp)
	}

	desc := GroupDescription{
		GroupID:      group.Str("group"),
		State:        group.Str("state"),
		ProtocolType: group.Str("protocol_type"),
		Protocol:     group.Str("protocol"),
	}
	isConsumer := desc.ProtocolType == consumerProtocolType || desc.ProtocolType == ""
	for _, e := range group.Array("members") {
		entry := e.(*protocol.Record)
		member := MemberDescription{
			MemberID:      entry.Str("member_id"),
			ClientID:      entry.Str("client_id"),
			ClientHost:    entry.Str("client_host"),
			RawMetadata:   entry.Bytes("member_metadata"),
			RawAssignment: entry.Bytes("member_assignment"),
		}
		if isConsumer {
			if err := decodeMemberBlobs(&member); err != nil {
				return GroupDescription{}, err
			}
		}
		desc.Members = append(desc.Members, member)
	}
	if group.Has("authorized_operations") {
		desc.AuthorizedOperations = validAclOperations(group.Bits("authorized_operations"))
	}
	return desc, nil
}

// DescribeConsumerGroups describes each group via its coordinator, one
// request per group, results aligned to groupIDs. A coordinatorID other than
// UnknownNodeID skips the lookup and must be shared by every group.
func (a *Admin) DescribeConsumerGroups(ctx context.Context, groupIDs []string, coordinatorID int32, includeAuthorizedOps bool) ([]GroupDescription, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DescribeGroups, maxDescribeGroupsVersion)
	if err != nil {
		return nil, err
	}
	if includeAuthorizedOps && version < 3 {
		return nil, incompatibleVersion("include_authorized_operations", "DescribeGroups >= v3", version)
	}
	coordinators, err := a.resolveCoordinators(ctx, groupIDs, coordinatorID)
	if err != nil {
		return nil, err
	}

	requests := make([]nodeRequest, len(groupIDs))
	for i, g := range groupIDs {
		req, err := a.describeGroupsRequest(g, version, includeAuthorizedOps)
		if err != nil {
			return nil, err
		}
		requests[i] = nodeRequest{nodeID: coordinators[g], req: req}
	}
	responses, err := a.sendAll(ctx, requests)
	if err != nil {
		return nil, err
	}

	descriptions := make([]GroupDescription, len(groupIDs))
	for i, resp := range responses {
		desc, err := a.processDescribedGroup(groupIDs[i], resp)
		if err != nil {
			return nil, err
		}
		descriptions[i] = desc
	}
	return descriptions, nil
}

// ListConsumerGroups unions the groups known to the given brokers, or to
// every broker when brokerIDs is nil. The union deduplicates groups that two
// brokers both report during a coordinator handoff.
func (a *Admin) ListConsumerGroups(ctx context.Context, brokerIDs []int32) ([]GroupListing, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.ListGroups, maxListGroupsVersion)
	if err != nil {
		return nil, err
	}
	if brokerIDs == nil {
		for _, b := range a.client.Brokers() {
			brokerIDs = append(brokerIDs, b.ID)
		}
	}
	requests := make([]nodeRequest, len(brokerIDs))
	for i, id := range brokerIDs {
		req, err := a.newRequest(protocol.ListGroups, version)
		if err != nil {
			return nil, err
		}
		requests[i] = nodeRequest{nodeID: id, req: req}
	}
	responses, err := a.sendAll(ctx, requests)
	if err != nil {
		return nil, err
	}

	seen := map[GroupListing]struct{}{}
	var listings []GroupListing
	for i, resp := range responses {
		if kafkaErr := kerr.ErrorForCode(resp.Int16("error_code")); kafkaErr != nil {
			return nil, errors.Wrapf(kafkaErr, "listing groups on broker %d failed with response %s", brokerIDs[i], resp)
		}
		for _, g := range resp.Array("groups") {
			entry := g.(*protocol.Record)
			listing := GroupListing{
				GroupID:      entry.Str("group"),
				ProtocolType: entry.Str("protocol_type"),
			}
			if _, dup := seen[listing]; dup {
				continue
			}
			seen[listing] = struct{}{}
			listings = append(listings, listing)
		}
	}
	return listings, nil
}

// ListConsumerGroupOffsets fetches the committed offsets of one group from
// its coordinator. partitions == nil fetches every offset the group has,
// which requires OffsetFetch v2+. Partitions without a committed offset
// report -1.
func (a *Admin) ListConsumerGroupOffsets(ctx context.Context, groupID string, coordinatorID int32, partitions []TopicPartition) (map[TopicPartition]OffsetAndMetadata, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.OffsetFetch, maxOffsetFetchVersion)
	if err != nil {
		return nil, err
	}
	var topicsField []any
	if partitions == nil {
		if version <= 1 {
			return nil, incompatibleVersion("fetching all offsets of a group", "OffsetFetch >= v2", version)
		}
	} else {
		var topicOrder []string
		byTopic := map[string][]any{}
		for _, tp := range partitions {
			if _, ok := byTopic[tp.Topic]; !ok {
				topicOrder = append(topicOrder, tp.Topic)
			}
			byTopic[tp.Topic] = append(byTopic[tp.Topic], tp.Partition)
		}
		topicsField = make([]any, 0, len(topicOrder))
		for _, t := range topicOrder {
			topicsField = append(topicsField, []any{t, byTopic[t]})
		}
	}
	if coordinatorID == UnknownNodeID {
		ids, err := a.findCoordinatorIDs(ctx, []string{groupID})
		if err != nil {
			return nil, err
		}
		coordinatorID = ids[groupID]
	}

	req, err := a.newRequest(protocol.OffsetFetch, version, groupID, topicsField)
	if err != nil {
		return nil, err
	}
	resp, err := a.send(ctx, coordinatorID, req)
	if err != nil {
		return nil, err
	}

	// v0 and v1 lack the top-level error code.
	if resp.Has("error_code") {
		if kafkaErr := kerr.ErrorForCode(resp.Int16("error_code")); kafkaErr != nil {
			a.evictCoordinatorOn(groupID, kafkaErr)
			return nil, errors.Wrapf(kafkaErr, "fetching offsets for group %q failed with response %s", groupID, resp)
		}
	}
	offsets := map[TopicPartition]OffsetAndMetadata{}
	for _, t := range resp.Array("topics") {
		topic := t.(*protocol.Record)
		for _, p := range topic.Array("partitions") {
			part := p.(*protocol.Record)
			if kafkaErr := kerr.ErrorForCode(part.Int16("error_code")); kafkaErr != nil {
				return nil, errors.Wrapf(kafkaErr, "fetching offset for %s-%d of group %q",
					topic.Str("topic"), part.Int32("partition"), groupID)
			}
			leaderEpoch := int32(-1)
			if part.Has("leader_epoch") {
				leaderEpoch = part.Int32("leader_epoch")
			}
			offsets[TopicPartition{Topic: topic.Str("topic"), Partition: part.Int32("partition")}] = OffsetAndMetadata{
				Offset:      part.Int64("offset"),
				Metadata:    part.Str("metadata"),
				LeaderEpoch: leaderEpoch,
			}
		}
	}
	return offsets, nil
}

// DeleteConsumerGroups deletes the given groups, one DeleteGroups request per
// coordinator carrying that coordinator's subset. Unlike most operations the
// per-group outcomes are returned, not raised; callers must check them.
func (a *Admin) DeleteConsumerGroups(ctx context.Context, groupIDs []string, coordinatorID int32) ([]GroupError, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DeleteGroups, maxDeleteGroupsVersion)
	if err != nil {
		return nil, err
	}
	coordinators, err := a.resolveCoordinators(ctx, groupIDs, coordinatorID)
	if err != nil {
		return nil, err
	}

	var coordinatorOrder []int32
	byCoordinator := map[int32][]any{}
	for _, g := range groupIDs {
		id := coordinators[g]
		if _, ok := byCoordinator[id]; !ok {
			coordinatorOrder = append(coordinatorOrder, id)
		}
		byCoordinator[id] = append(byCoordinator[id], g)
	}

	requests := make([]nodeRequest, 0, len(coordinatorOrder))
	for _, id := range coordinatorOrder {
		req, err := a.newRequest(protocol.DeleteGroups, version, byCoordinator[id])
		if err != nil {
			return nil, err
		}
		requests = append(requests, nodeRequest{nodeID: id, req: req})
	}
	responses, err := a.sendAll(ctx, requests)
	if err != nil {
		return nil, err
	}

	var results []GroupError
	for _, resp := range responses {
		for _, r := range resp.Array("results") {
			entry := r.(*protocol.Record)
			groupID := entry.Str("group_id")
			kafkaErr := kerr.ErrorForCode(entry.Int16("error_code"))
			if kafkaErr != nil {
				a.evictCoordinatorOn(groupID, kafkaErr)
			}
			results = append(results, GroupError{GroupID: groupID, Err: kafkaErr})
		}
	}
	return results, nil
}
