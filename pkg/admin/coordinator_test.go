package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func coordinatorRec(id int32) *protocol.Record {
	return rec(
		"error_code", int16(0),
		"error_message", (*string)(nil),
		"coordinator_id", id,
		"host", "b1",
		"port", int32(9092),
	)
}

func offsetsRec() *protocol.Record {
	return rec(
		"error_code", int16(0),
		"topics", []any{},
	)
}

func TestCoordinatorLookupIsCached(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		switch req.Key() {
		case protocol.FindCoordinator:
			return coordinatorRec(1), nil
		case protocol.OffsetFetch:
			return offsetsRec(), nil
		}
		return nil, errUnscripted(req)
	}

	_, err := a.ListConsumerGroupOffsets(context.Background(), "g1", UnknownNodeID, nil)
	require.NoError(t, err)
	_, err = a.ListConsumerGroupOffsets(context.Background(), "g1", UnknownNodeID, nil)
	require.NoError(t, err)

	assert.Len(t, c.sentTo(protocol.FindCoordinator), 1, "second call must hit the cache")
	fetches := c.sentTo(protocol.OffsetFetch)
	require.Len(t, fetches, 2)
	for _, s := range fetches {
		assert.Equal(t, int32(1), s.nodeID)
	}
}

func TestCoordinatorOverrideSkipsLookup(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		if req.Key() == protocol.OffsetFetch {
			return offsetsRec(), nil
		}
		return nil, errUnscripted(req)
	}

	_, err := a.ListConsumerGroupOffsets(context.Background(), "g1", 2, nil)
	require.NoError(t, err)
	assert.Empty(t, c.sentTo(protocol.FindCoordinator))
	require.Len(t, c.sentTo(protocol.OffsetFetch), 1)
	assert.Equal(t, int32(2), c.sentTo(protocol.OffsetFetch)[0].nodeID)
}

func TestCoordinatorLookupFailsWholeCall(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec(
			"error_code", kerr.CoordinatorNotAvailable.Code,
			"error_message", (*string)(nil),
			"coordinator_id", int32(-1),
			"host", "",
			"port", int32(-1),
		), nil
	}

	_, err := a.ListConsumerGroupOffsets(context.Background(), "g1", UnknownNodeID, nil)
	require.ErrorIs(t, err, kerr.CoordinatorNotAvailable)
	assert.Empty(t, a.coordinators, "a failed lookup must not populate the cache")
}

func TestNotCoordinatorEvictsCacheWithoutRetry(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		switch req.Key() {
		case protocol.FindCoordinator:
			return coordinatorRec(1), nil
		case protocol.OffsetFetch:
			return rec("error_code", kerr.NotCoordinator.Code, "topics", []any{}), nil
		}
		return nil, errUnscripted(req)
	}

	_, err := a.ListConsumerGroupOffsets(context.Background(), "g1", UnknownNodeID, nil)
	require.ErrorIs(t, err, kerr.NotCoordinator)
	assert.Len(t, c.sentTo(protocol.OffsetFetch), 1, "no automatic retry")
	assert.Empty(t, a.coordinators, "stale entry must be evicted")

	// Next call resolves the coordinator afresh.
	c.reset()
	_, err = a.ListConsumerGroupOffsets(context.Background(), "g1", UnknownNodeID, nil)
	require.ErrorIs(t, err, kerr.NotCoordinator)
	assert.Len(t, c.sentTo(protocol.FindCoordinator), 1)
}

func TestFindCoordinatorVersionZeroOmitsType(t *testing.T) {
	c := newFakeClient()
	c.brokerMax = map[protocol.ApiKey]int16{protocol.FindCoordinator: 0}
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		switch req.Key() {
		case protocol.FindCoordinator:
			return coordinatorRec(1), nil
		case protocol.OffsetFetch:
			return offsetsRec(), nil
		}
		return nil, errUnscripted(req)
	}

	_, err := a.ListConsumerGroupOffsets(context.Background(), "g1", UnknownNodeID, nil)
	require.NoError(t, err)

	sent := c.sentTo(protocol.FindCoordinator)
	require.Len(t, sent, 1)
	assert.Equal(t, int16(0), sent[0].req.Version())
	assert.Equal(t, []any{"g1"}, sent[0].req.Body)
}
