package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func TestControllerRefreshWaitsOutElection(t *testing.T) {
	c := newFakeClient()
	metadataCalls := 0
	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		metadataCalls++
		if metadataCalls == 1 {
			// Election in flight: no controller yet.
			return metadataRec(-1, c.brokers, nil), nil
		}
		return metadataRec(1, c.brokers, nil), nil
	}

	a, err := New(testConfig(), c, nil, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 2, metadataCalls)
	assert.Equal(t, int32(1), a.controllerID)
}

func TestControllerRefreshGivesUpOnDeadline(t *testing.T) {
	c := newFakeClient()
	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return metadataRec(-1, c.brokers, nil), nil
	}
	cfg := testConfig()
	cfg.ControllerRefreshTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err := New(cfg, c, nil, nil)
	require.ErrorContains(t, err, "controller not available")
	assert.Less(t, time.Since(start), 5*time.Second, "must respect the single refresh deadline")
}

func TestCreateTopicsRetriesThroughNewController(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	attempt := 0
	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		switch req.Key() {
		case protocol.CreateTopics:
			attempt++
			if attempt == 1 {
				return rec("topic_errors", []any{
					rec("topic", "t1", "error_code", kerr.NotController.Code),
				}), nil
			}
			return rec("topic_errors", []any{
				rec("topic", "t1", "error_code", int16(0)),
			}), nil
		case protocol.Metadata:
			return metadataRec(2, c.brokers, nil), nil
		}
		return nil, errUnscripted(req)
	}

	resp, err := a.CreateTopics(context.Background(), []NewTopic{{Name: "t1", NumPartitions: 1, ReplicationFactor: 1}}, 0, false)
	require.NoError(t, err)
	require.NotNil(t, resp)

	sent := c.sentTo(protocol.CreateTopics)
	require.Len(t, sent, 2)
	assert.Equal(t, int32(0), sent[0].nodeID, "first attempt goes to the cached controller")
	assert.Equal(t, int32(2), sent[1].nodeID, "second attempt goes to the refreshed controller")
	assert.Len(t, c.sentTo(protocol.Metadata), 1, "exactly one refresh between attempts")
	assert.Equal(t, int32(2), a.controllerID)
}

func TestCreateTopicsStopsAfterSecondNotController(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		switch req.Key() {
		case protocol.CreateTopics:
			return rec("topic_errors", []any{
				rec("topic", "t1", "error_code", kerr.NotController.Code),
			}), nil
		case protocol.Metadata:
			return metadataRec(2, c.brokers, nil), nil
		}
		return nil, errUnscripted(req)
	}

	_, err := a.CreateTopics(context.Background(), []NewTopic{{Name: "t1"}}, 0, false)
	require.ErrorIs(t, err, kerr.NotController)
	assert.Len(t, c.sentTo(protocol.CreateTopics), 2, "one retry, then surface the error")
}

func TestCreateTopicsSurfacesTopicError(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("topic_errors", []any{
			rec("topic", "t1", "error_code", int16(0)),
			rec("topic", "t2", "error_code", kerr.TopicAlreadyExists.Code),
		}), nil
	}

	_, err := a.CreateTopics(context.Background(), []NewTopic{{Name: "t1"}, {Name: "t2"}}, 0, false)
	require.ErrorIs(t, err, kerr.TopicAlreadyExists)
}

func TestDeleteTopicsSendsNamesAndTimeout(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("topic_error_codes", []any{
			rec("topic", "t1", "error_code", int16(0)),
		}), nil
	}

	_, err := a.DeleteTopics(context.Background(), []string{"t1"}, 5*time.Second)
	require.NoError(t, err)

	sent := c.sentTo(protocol.DeleteTopics)
	require.Len(t, sent, 1)
	assert.Equal(t, []any{"t1"}, sent[0].req.Body[0])
	assert.Equal(t, int32(5000), sent[0].req.Body[1])
}

func TestElectLeadersToleratesElectionNotNeeded(t *testing.T) {
	c := newFakeClient()
	c.partitions = map[string][]int32{"t1": {0, 1}}
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("replication_election_results", []any{
			rec("topic", "t1", "partition_result", []any{
				rec("partition_id", int32(0), "error_code", int16(0)),
				rec("partition_id", int32(1), "error_code", kerr.ElectionNotNeeded.Code),
			}),
		}), nil
	}

	resp, err := a.PerformLeaderElection(context.Background(), ElectionPreferred, nil, 0)
	require.NoError(t, err)
	require.NotNil(t, resp)

	sent := c.sentTo(protocol.ElectLeaders)
	require.Len(t, sent, 1)
	assert.Equal(t, int8(ElectionPreferred), sent[0].req.Body[0])
	topics := sent[0].req.Body[1].([]any)
	require.Len(t, topics, 1)
	assert.Equal(t, []any{"t1", []any{int32(0), int32(1)}}, topics[0])
}

func errUnscripted(req *protocol.Request) error {
	return &ConfigurationError{Reason: "unscripted " + req.Key().String()}
}
