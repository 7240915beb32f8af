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

func testAcl(name string, op AclOperation) Acl {
	return Acl{
		Principal:      "User:alice",
		Host:           "*",
		Operation:      op,
		PermissionType: PermissionAllow,
		Pattern: ResourcePattern{
			ResourceType: ResourceTopic,
			Name:         name,
			PatternType:  PatternLiteral,
		},
	}
}

func TestDescribeAclsParsesResources(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec(
			"error_code", int16(0),
			"error_message", (*string)(nil),
			"resources", []any{rec(
				"resource_type", int8(ResourceTopic),
				"resource_name", "events",
				"resource_pattern_type", int8(PatternPrefixed),
				"acls", []any{rec(
					"principal", "User:alice",
					"host", "*",
					"operation", int8(OpRead),
					"permission_type", int8(PermissionAllow),
				)},
			)},
		), nil
	}

	filter := AclFilter{
		ResourceType:   ResourceAny,
		PatternType:    PatternAny,
		Operation:      OpAny,
		PermissionType: PermissionAny,
	}
	acls, err := a.DescribeAcls(context.Background(), filter)
	require.NoError(t, err)

	want := []Acl{{
		Principal:      "User:alice",
		Host:           "*",
		Operation:      OpRead,
		PermissionType: PermissionAllow,
		Pattern: ResourcePattern{
			ResourceType: ResourceTopic,
			Name:         "events",
			PatternType:  PatternPrefixed,
		},
	}}
	assert.Empty(t, cmp.Diff(want, acls))

	sent := c.sentTo(protocol.DescribeAcls)
	require.Len(t, sent, 1)
	assert.Equal(t, int16(1), sent[0].req.Version())
	require.Len(t, sent[0].req.Body, 7)
	assert.Equal(t, int8(PatternAny), sent[0].req.Body[2])
}

func TestDescribeAclsVersionZeroDefaultsLiteral(t *testing.T) {
	c := newFakeClient()
	c.brokerMax = map[protocol.ApiKey]int16{protocol.DescribeAcls: 0}
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		// v0 responses carry no resource_pattern_type.
		return rec(
			"error_code", int16(0),
			"error_message", (*string)(nil),
			"resources", []any{rec(
				"resource_type", int8(ResourceTopic),
				"resource_name", "events",
				"acls", []any{rec(
					"principal", "User:alice",
					"host", "*",
					"operation", int8(OpRead),
					"permission_type", int8(PermissionAllow),
				)},
			)},
		), nil
	}

	acls, err := a.DescribeAcls(context.Background(), AclFilter{})
	require.NoError(t, err)
	require.Len(t, acls, 1)
	assert.Equal(t, PatternLiteral, acls[0].Pattern.PatternType)

	sent := c.sentTo(protocol.DescribeAcls)
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].req.Body, 6, "v0 filter has no pattern type")
}

func TestDescribeAclsTopLevelError(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec(
			"error_code", kerr.SecurityDisabled.Code,
			"error_message", strPtr("no authorizer configured"),
			"resources", []any{},
		), nil
	}

	_, err := a.DescribeAcls(context.Background(), AclFilter{})
	require.ErrorIs(t, err, kerr.SecurityDisabled)
}

func TestCreateAclsSplitsOutcomes(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("creation_responses", []any{
			rec("error_code", int16(0), "error_message", (*string)(nil)),
			rec("error_code", kerr.InvalidRequest.Code, "error_message", strPtr("bad acl")),
		}), nil
	}

	acls := []Acl{testAcl("t1", OpRead), testAcl("t2", OpWrite)}
	result, err := a.CreateAcls(context.Background(), acls)
	require.NoError(t, err)

	require.Len(t, result.Succeeded, 1)
	assert.Equal(t, "t1", result.Succeeded[0].Pattern.Name)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "t2", result.Failed[0].Acl.Pattern.Name)
	assert.ErrorIs(t, result.Failed[0].Err, kerr.InvalidRequest)

	sent := c.sentTo(protocol.CreateAcls)
	require.Len(t, sent, 1)
	creations := sent[0].req.Body[0].([]any)
	require.Len(t, creations, 2)
	first := creations[0].([]any)
	assert.Equal(t, int8(ResourceTopic), first[0])
	assert.Equal(t, "t1", first[1])
	assert.Equal(t, int8(PatternLiteral), first[2])
}

func TestDeleteAclsZipsFiltersAndMatches(t *testing.T) {
	c := newFakeClient()
	a := newTestAdmin(t, c)
	defer a.Close()

	c.handler = func(nodeID int32, req *protocol.Request) (*protocol.Record, error) {
		return rec("filter_responses", []any{
			rec(
				"error_code", int16(0),
				"error_message", (*string)(nil),
				"matching_acls", []any{rec(
					"error_code", int16(0),
					"error_message", (*string)(nil),
					"resource_type", int8(ResourceTopic),
					"resource_name", "events",
					"resource_pattern_type", int8(PatternLiteral),
					"principal", "User:alice",
					"host", "*",
					"operation", int8(OpRead),
					"permission_type", int8(PermissionAllow),
				)},
			),
			rec(
				"error_code", kerr.ClusterAuthorizationFailed.Code,
				"error_message", strPtr("denied"),
				"matching_acls", []any{},
			),
		}), nil
	}

	name1, name2 := "events", "orders"
	filters := []AclFilter{
		{ResourceType: ResourceTopic, ResourceName: &name1, PatternType: PatternLiteral, Operation: OpAny, PermissionType: PermissionAny},
		{ResourceType: ResourceTopic, ResourceName: &name2, PatternType: PatternLiteral, Operation: OpAny, PermissionType: PermissionAny},
	}
	results, err := a.DeleteAcls(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	require.Len(t, results[0].Matching, 1)
	assert.NoError(t, results[0].Matching[0].Err)
	assert.Equal(t, "events", results[0].Matching[0].Acl.Pattern.Name)
	assert.Equal(t, OpRead, results[0].Matching[0].Acl.Operation)

	assert.ErrorIs(t, results[1].Err, kerr.ClusterAuthorizationFailed)
	assert.Empty(t, results[1].Matching)
	assert.Equal(t, filters[1], results[1].Filter)
}
