package admin

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func TestAlterPartitionReassignmentsBodyAndOutcomes(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		if req.Key() != protocol.AlterPartitionReassignments {
			return nil, errUnscripted(req)
		}
		return rec(
			"error_code", int16(0),
			"error_message", (*string)(nil),
			"responses", []any{rec(
				"name", "t1",
				"partitions", []any{
					rec("partition_index", int32(0), "error_code", int16(0), "error_message", (*string)(nil)),
					rec("partition_index", int32(1), "error_code", kerr.NoReassignmentInProgress.Code, "error_message", strPtr("nothing to cancel")),
				},
			)},
		), nil
	}

	outcomes, err := a.AlterPartitionReassignments(context.Background(), map[TopicPartition][]int32{
		{Topic: "t1", Partition: 1}: nil,
		{Topic: "t1", Partition: 0}: {1, 2},
	}, 0)
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[TopicPartition{Topic: "t1", Partition: 0}])
	assert.ErrorIs(t, outcomes[TopicPartition{Topic: "t1", Partition: 1}], kerr.NoReassignmentInProgress)

	sent := c.sentTo(protocol.AlterPartitionReassignments)
	require.Len(t, sent, 1)
	require.Len(t, sent[0].req.Body, 3)
	assert.Equal(t, int32(30000), sent[0].req.Body[0])
	assert.Nil(t, sent[0].req.Body[2], "empty tagged fields")

	topics := sent[0].req.Body[1].([]any)
	require.Len(t, topics, 1)
	topic := topics[0].([]any)
	assert.Equal(t, "t1", topic[0])
	parts := topic[1].([]any)
	require.Len(t, parts, 2)
	// Partitions come sorted; a nil replica list cancels.
	assert.Equal(t, []any{int32(0), []any{int32(1), int32(2)}, nil}, parts[0])
	assert.Equal(t, []any{int32(1), []any(nil), nil}, parts[1])
}

func TestAlterPartitionReassignmentsRetriesNotController(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	attempts := 0
	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		switch req.Key() {
		case protocol.Metadata:
			return metadataRec(2, c.brokers, nil), nil
		case protocol.AlterPartitionReassignments:
			attempts++
			if attempts == 1 {
				return rec(
					"error_code", kerr.NotController.Code,
					"error_message", strPtr("not me"),
					"responses", []any{},
				), nil
			}
			return rec(
				"error_code", int16(0),
				"error_message", (*string)(nil),
				"responses", []any{},
			), nil
		}
		return nil, errUnscripted(req)
	}

	_, err := a.AlterPartitionReassignments(context.Background(), map[TopicPartition][]int32{
		{Topic: "t1", Partition: 0}: {1},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts, "one refresh-and-resend after NOT_CONTROLLER")

	sent := c.sentTo(protocol.AlterPartitionReassignments)
	require.Len(t, sent, 2)
	assert.Equal(t, int32(2), sent[1].nodeID, "second attempt goes to the new controller")
}

func TestListPartitionReassignmentsParses(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		if req.Key() != protocol.ListPartitionReassignments {
			return nil, errUnscripted(req)
		}
		return rec(
			"error_code", int16(0),
			"error_message", (*string)(nil),
			"topics", []any{rec(
				"name", "t1",
				"partitions", []any{rec(
					"partition_index", int32(0),
					"replicas", []any{int32(1), int32(2), int32(3)},
					"adding_replicas", []any{int32(3)},
					"removing_replicas", []any{int32(1)},
				)},
			)},
		), nil
	}

	got, err := a.ListPartitionReassignments(context.Background(), map[string][]int32{"t1": {0}}, 0)
	require.NoError(t, err)

	want := map[TopicPartition]PartitionReassignment{
		{Topic: "t1", Partition: 0}: {
			Replicas:         []int32{1, 2, 3},
			AddingReplicas:   []int32{3},
			RemovingReplicas: []int32{1},
		},
	}
	assert.Empty(t, cmp.Diff(want, got))

	sent := c.sentTo(protocol.ListPartitionReassignments)
	require.Len(t, sent, 1)
	topics := sent[0].req.Body[1].([]any)
	assert.Equal(t, []any{"t1", []any{int32(0)}, nil}, topics[0])
}

func TestListPartitionReassignmentsNilAsksForAll(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		if req.Key() != protocol.ListPartitionReassignments {
			return nil, errUnscripted(req)
		}
		return rec(
			"error_code", int16(0),
			"error_message", (*string)(nil),
			"topics", []any{},
		), nil
	}

	got, err := a.ListPartitionReassignments(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	sent := c.sentTo(protocol.ListPartitionReassignments)
	require.Len(t, sent, 1)
	assert.Nil(t, sent[0].req.Body[1], "null topics array lists everything")
}

func TestListPartitionReassignmentsTopLevelError(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		if req.Key() != protocol.ListPartitionReassignments {
			return nil, errUnscripted(req)
		}
		return rec(
			"error_code", kerr.ClusterAuthorizationFailed.Code,
			"error_message", strPtr("denied"),
			"topics", []any{},
		), nil
	}

	_, err := a.ListPartitionReassignments(context.Background(), nil, 0)
	require.ErrorIs(t, err, kerr.ClusterAuthorizationFailed)
}
