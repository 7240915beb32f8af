package admin

import (
	"fmt"
	"sort"
)

// TopicPartition identifies one partition of one topic. Comparable, usable as
// a map key.
type TopicPartition struct {
	Topic     string
	Partition int32
}

func (tp TopicPartition) String() string {
	return fmt.Sprintf("%s-%d", tp.Topic, tp.Partition)
}

func sortTopicPartitions(tps []TopicPartition) {
	sort.Slice(tps, func(i, j int) bool {
		if tps[i].Topic != tps[j].Topic {
			return tps[i].Topic < tps[j].Topic
		}
		return tps[i].Partition < tps[j].Partition
	})
}

// NewTopic describes a topic to create. Either NumPartitions and
// ReplicationFactor are set, or ReplicaAssignments maps partition ids to
// replica lists (with NumPartitions/ReplicationFactor left at -1).
type NewTopic struct {
	Name               string
	NumPartitions      int32
	ReplicationFactor  int16
	ReplicaAssignments map[int32][]int32
	Configs            map[string]string
}

// NewPartitions describes a partition-count increase for an existing topic.
type NewPartitions struct {
	TotalCount     int32
	NewAssignments [][]int32
}

// OffsetAndMetadata is one committed offset. LeaderEpoch is -1 when the
// negotiated OffsetFetch version predates epochs.
type OffsetAndMetadata struct {
	Offset      int64
	Metadata    string
	LeaderEpoch int32
}

// ElectionType selects the leader-election strategy.
type ElectionType int8

const (
	ElectionPreferred ElectionType = 0
	ElectionUnclean   ElectionType = 1
)

// ConfigResourceType names the kind of entity a config belongs to.
type ConfigResourceType int8

const (
	ConfigResourceTopic  ConfigResourceType = 2
	ConfigResourceBroker ConfigResourceType = 4
)

// ConfigResource addresses one config-carrying entity. For describe calls a
// nil Configs map fetches every key and an empty map fetches none; for alter
// calls Configs holds the values to set.
type ConfigResource struct {
	Type    ConfigResourceType
	Name    string
	Configs map[string]string
}

// ResourceType names the entity class an ACL binds to.
type ResourceType int8

const (
	ResourceUnknown         ResourceType = 0
	ResourceAny             ResourceType = 1
	ResourceTopic           ResourceType = 2
	ResourceGroup           ResourceType = 3
	ResourceCluster         ResourceType = 4
	ResourceTransactionalID ResourceType = 5
	ResourceDelegationToken ResourceType = 6
)

// AclOperation is the operation field of an ACL.
type AclOperation int8

const (
	OpAny             AclOperation = 1
	OpAll             AclOperation = 2
	OpRead            AclOperation = 3
	OpWrite           AclOperation = 4
	OpCreate          AclOperation = 5
	OpDelete          AclOperation = 6
	OpAlter           AclOperation = 7
	OpDescribe        AclOperation = 8
	OpClusterAction   AclOperation = 9
	OpDescribeConfigs AclOperation = 10
	OpAlterConfigs    AclOperation = 11
	OpIdempotentWrite AclOperation = 12
)

func (o AclOperation) String() string {
	switch o {
	case OpAny:
		return "ANY"
	case OpAll:
		return "ALL"
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	case OpCreate:
		return "CREATE"
	case OpDelete:
		return "DELETE"
	case OpAlter:
		return "ALTER"
	case OpDescribe:
		return "DESCRIBE"
	case OpClusterAction:
		return "CLUSTER_ACTION"
	case OpDescribeConfigs:
		return "DESCRIBE_CONFIGS"
	case OpAlterConfigs:
		return "ALTER_CONFIGS"
	case OpIdempotentWrite:
		return "IDEMPOTENT_WRITE"
	}
	return fmt.Sprintf("AclOperation(%d)", int8(o))
}

// validAclOperations filters a bitfield's set bits down to concrete
// operations, dropping ANY/ALL and unknown bits.
func validAclOperations(bits []int32) []AclOperation {
	ops := make([]AclOperation, 0, len(bits))
	for _, b := range bits {
		op := AclOperation(b)
		if op >= OpRead && op <= OpIdempotentWrite {
			ops = append(ops, op)
		}
	}
	return ops
}

// AclPermissionType is the allow/deny field of an ACL.
type AclPermissionType int8

const (
	PermissionAny   AclPermissionType = 1
	PermissionDeny  AclPermissionType = 2
	PermissionAllow AclPermissionType = 3
)

// PatternType is the resource-name matching mode of an ACL pattern.
type PatternType int8

const (
	PatternAny      PatternType = 1
	PatternMatch    PatternType = 2
	PatternLiteral  PatternType = 3
	PatternPrefixed PatternType = 4
)

// ResourcePattern is the resource side of an ACL.
type ResourcePattern struct {
	ResourceType ResourceType
	Name         string
	PatternType  PatternType
}

// Acl is one concrete access-control entry.
type Acl struct {
	Principal      string
	Host           string
	Operation      AclOperation
	PermissionType AclPermissionType
	Pattern        ResourcePattern
}

// AclFilter matches a set of ACLs. Nil string fields match anything.
type AclFilter struct {
	ResourceType   ResourceType
	ResourceName   *string
	PatternType    PatternType
	Principal      *string
	Host           *string
	Operation      AclOperation
	PermissionType AclPermissionType
}

// CreateAclsResult partitions the input ACLs into created and failed.
type CreateAclsResult struct {
	Succeeded []Acl
	Failed    []AclFailure
}

// AclFailure is one ACL the broker rejected.
type AclFailure struct {
	Acl Acl
	Err error
}

// MatchingAcl is one ACL matched (and deleted) by a DeleteAcls filter.
type MatchingAcl struct {
	Acl Acl
	Err error
}

// DeleteAclsFilterResult maps one input filter to its matches and its
// filter-level error.
type DeleteAclsFilterResult struct {
	Filter   AclFilter
	Matching []MatchingAcl
	Err      error
}

// GroupListing is one entry of a ListGroups response.
type GroupListing struct {
	GroupID      string
	ProtocolType string
}

// MemberDescription is one member of a described consumer group. The
// Subscription and Assignment fields are decoded from the consumer-protocol
// blobs when the group speaks the standard consumer protocol; otherwise the
// raw blobs are kept.
type MemberDescription struct {
	MemberID   string
	ClientID   string
	ClientHost string

	Subscription []string
	Assignment   map[string][]int32

	RawMetadata   []byte
	RawAssignment []byte
}

// GroupDescription is the result of describing one consumer group.
type GroupDescription struct {
	GroupID      string
	State        string
	ProtocolType string
	Protocol     string
	Members      []MemberDescription

	// AuthorizedOperations is populated at DescribeGroups v3+ when
	// requested, nil otherwise.
	AuthorizedOperations []AclOperation
}

// GroupError is one (group, outcome) pair of a DeleteConsumerGroups call.
// Err is nil for groups that were deleted.
type GroupError struct {
	GroupID string
	Err     error
}

// DeletedRecords is the broker's answer for one partition of a DeleteRecords
// call.
type DeletedRecords struct {
	LowWatermark int64
}

// PartitionMetadata is one partition of a described topic.
type PartitionMetadata struct {
	Partition       int32
	Leader          int32
	LeaderEpoch     int32
	Replicas        []int32
	ISR             []int32
	OfflineReplicas []int32
	Err             error
}

// TopicMetadata is one topic of a Metadata response.
type TopicMetadata struct {
	Topic      string
	IsInternal bool
	Partitions []PartitionMetadata
	// AuthorizedOperations is populated at Metadata v8+ only.
	AuthorizedOperations []AclOperation
	Err                  error
}

// ClusterDescription is cluster-wide metadata without topic details.
type ClusterDescription struct {
	Brokers              []Node
	ControllerID         int32
	ClusterID            *string
	AuthorizedOperations []AclOperation
}

// PartitionReassignment describes the in-flight replica movement of one
// partition.
type PartitionReassignment struct {
	Replicas         []int32
	AddingReplicas   []int32
	RemovingReplicas []int32
}
