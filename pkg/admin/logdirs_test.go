package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func TestDescribeLogDirsBody(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("log_dirs", []any{}), nil
	}

	_, err := a.DescribeLogDirs(context.Background(), map[string][]int32{
		"t2": {0},
		"t1": {0, 1},
	})
	require.NoError(t, err)

	sent := c.sentTo(protocol.DescribeLogDirs)
	require.Len(t, sent, 1)
	topics := sent[0].req.Body[0].([]any)
	require.Len(t, topics, 2)
	assert.Equal(t, []any{"t1", []any{int32(0), int32(1)}}, topics[0])
	assert.Equal(t, []any{"t2", []any{int32(0)}}, topics[1])
}

func TestDescribeLogDirsNilAsksForAll(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("log_dirs", []any{}), nil
	}

	_, err := a.DescribeLogDirs(context.Background(), nil)
	require.NoError(t, err)

	sent := c.sentTo(protocol.DescribeLogDirs)
	require.Len(t, sent, 1)
	assert.Nil(t, sent[0].req.Body[0], "null topics array queries every hosted partition")
}
