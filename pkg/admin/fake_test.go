package admin

import (
	"context"
	"flag"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

type sentRequest struct {
	nodeID int32
	req    *protocol.Request
}

// fakeClient scripts broker behaviour per request. The handler sees every
// Send; tests swap it mid-flight to script multi-step conversations.
type fakeClient struct {
	mtx  sync.Mutex
	sent []sentRequest

	handler    func(nodeID int32, req *protocol.Request) (*protocol.Record, error)
	brokerMax  map[protocol.ApiKey]int16
	leastNode  int32
	version    BrokerVersion
	versionErr error
	brokers    []Node
	partitions map[string][]int32
	readyErr   map[int32]error
	closed     bool
}

func newFakeClient() *fakeClient {
	c := &fakeClient{
		version: BrokerVersion{Major: 2, Minor: 6, Patch: 0},
		brokers: []Node{
			{ID: 0, Host: "b0", Port: 9092},
			{ID: 1, Host: "b1", Port: 9092},
			{ID: 2, Host: "b2", Port: 9092},
		},
	}
	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		if req.Key() == protocol.Metadata {
			return metadataRec(0, c.brokers, nil), nil
		}
		return nil, errors.Errorf("fake: unscripted %s request", req.Key())
	}
	return c
}

func (c *fakeClient) Ready(_ context.Context, nodeID int32) error {
	if err := c.readyErr[nodeID]; err != nil {
		return err
	}
	return nil
}

func (c *fakeClient) Send(_ context.Context, nodeID int32, req *protocol.Request) (*protocol.Record, error) {
	// A real client puts the request on the wire, so every request must
	// encode against its schema before the scripted handler sees it.
	if _, err := req.MarshalFrame(); err != nil {
		return nil, errors.Wrap(err, "fake: request does not encode")
	}
	c.mtx.Lock()
	c.sent = append(c.sent, sentRequest{nodeID: nodeID, req: req})
	handler := c.handler
	c.mtx.Unlock()
	return handler(nodeID, req)
}

func (c *fakeClient) LeastLoadedNode() int32 { return c.leastNode }

func (c *fakeClient) APIVersion(key protocol.ApiKey, maxVersion int16) (int16, error) {
	if v, ok := c.brokerMax[key]; ok {
		if v < maxVersion {
			return v, nil
		}
	}
	return maxVersion, nil
}

func (c *fakeClient) CheckVersion(int32) (BrokerVersion, error) {
	return c.version, c.versionErr
}

func (c *fakeClient) Brokers() []Node { return c.brokers }

func (c *fakeClient) Topics() []string {
	names := make([]string, 0, len(c.partitions))
	for name := range c.partitions {
		names = append(names, name)
	}
	return names
}

func (c *fakeClient) PartitionsForTopic(topic string) []int32 { return c.partitions[topic] }

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

// sentKeys returns the api key of every recorded request, in send order.
func (c *fakeClient) sentKeys() []protocol.ApiKey {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	keys := make([]protocol.ApiKey, len(c.sent))
	for i, s := range c.sent {
		keys[i] = s.req.Key()
	}
	return keys
}

// sentTo returns every recorded request for key, in send order.
func (c *fakeClient) sentTo(key protocol.ApiKey) []sentRequest {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	var out []sentRequest
	for _, s := range c.sent {
		if s.req.Key() == key {
			out = append(out, s)
		}
	}
	return out
}

func (c *fakeClient) reset() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.sent = nil
}

// rec builds a response record from name/value pairs. Fakes hand records
// straight to the client, so the schema only needs the field names the code
// under test reads.
func rec(kv ...any) *protocol.Record {
	fields := make([]protocol.Field, 0, len(kv)/2)
	vals := make([]any, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		fields = append(fields, protocol.F(kv[i].(string), protocol.Int8))
		vals = append(vals, kv[i+1])
	}
	return protocol.NewRecord(protocol.Struct(fields...), vals...)
}

type fakePartition struct {
	id     int32
	leader int32
}

// metadataRec scripts a Metadata response with the given controller, brokers
// and topic layout.
func metadataRec(controllerID int32, brokers []Node, topics map[string][]fakePartition) *protocol.Record {
	brokerRecs := make([]any, 0, len(brokers))
	for _, b := range brokers {
		brokerRecs = append(brokerRecs, rec(
			"node_id", b.ID,
			"host", b.Host,
			"port", b.Port,
			"rack", b.Rack,
		))
	}
	var topicRecs []any
	for name, parts := range topics {
		partRecs := make([]any, 0, len(parts))
		for _, p := range parts {
			partRecs = append(partRecs, rec(
				"error_code", int16(0),
				"partition", p.id,
				"leader", p.leader,
				"replicas", []any{p.leader},
				"isr", []any{p.leader},
			))
		}
		topicRecs = append(topicRecs, rec(
			"error_code", int16(0),
			"topic", name,
			"is_internal", false,
			"partitions", partRecs,
		))
	}
	return rec(
		"brokers", brokerRecs,
		"controller_id", controllerID,
		"cluster_id", strPtr("test-cluster"),
		"topics", topicRecs,
	)
}

func strPtr(s string) *string { return &s }

func testConfig() Config {
	var cfg Config
	cfg.RegisterFlagsAndApplyDefaults("kafka", flag.NewFlagSet("test", flag.PanicOnError))
	return cfg
}

func newTestAdmin(t *testing.T, c *fakeClient) *Admin {
	t.Helper()
	a, err := New(testConfig(), c, nil, nil)
	require.NoError(t, err)
	c.reset()
	return a
}
