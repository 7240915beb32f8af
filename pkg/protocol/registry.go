package protocol

import (
	"fmt"

	"github.com/pkg/errors"
)

// ApiKey names a wire RPC.
type ApiKey int16

const (
	Metadata                    ApiKey = 3
	OffsetFetch                 ApiKey = 9
	FindCoordinator             ApiKey = 10
	JoinGroup                   ApiKey = 11
	Heartbeat                   ApiKey = 12
	LeaveGroup                  ApiKey = 13
	SyncGroup                   ApiKey = 14
	DescribeGroups              ApiKey = 15
	ListGroups                  ApiKey = 16
	CreateTopics                ApiKey = 19
	DeleteTopics                ApiKey = 20
	DeleteRecords               ApiKey = 21
	DescribeAcls                ApiKey = 29
	CreateAcls                  ApiKey = 30
	DeleteAcls                  ApiKey = 31
	DescribeConfigs             ApiKey = 32
	AlterConfigs                ApiKey = 33
	DescribeLogDirs             ApiKey = 35
	SaslAuthenticate            ApiKey = 36
	CreatePartitions            ApiKey = 37
	DeleteGroups                ApiKey = 42
	ElectLeaders                ApiKey = 43
	AlterPartitionReassignments ApiKey = 45
	ListPartitionReassignments  ApiKey = 46
	DescribeClientQuotas        ApiKey = 48
)

func (k ApiKey) String() string {
	if name, ok := apiKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ApiKey(%d)", int16(k))
}

var apiKeyNames = map[ApiKey]string{
	Metadata:                    "Metadata",
	OffsetFetch:                 "OffsetFetch",
	FindCoordinator:             "FindCoordinator",
	JoinGroup:                   "JoinGroup",
	Heartbeat:                   "Heartbeat",
	LeaveGroup:                  "LeaveGroup",
	SyncGroup:                   "SyncGroup",
	DescribeGroups:              "DescribeGroups",
	ListGroups:                  "ListGroups",
	CreateTopics:                "CreateTopics",
	DeleteTopics:                "DeleteTopics",
	DeleteRecords:               "DeleteRecords",
	DescribeAcls:                "DescribeAcls",
	CreateAcls:                  "CreateAcls",
	DeleteAcls:                  "DeleteAcls",
	DescribeConfigs:             "DescribeConfigs",
	AlterConfigs:                "AlterConfigs",
	DescribeLogDirs:             "DescribeLogDirs",
	SaslAuthenticate:            "SaslAuthenticate",
	CreatePartitions:            "CreatePartitions",
	DeleteGroups:                "DeleteGroups",
	ElectLeaders:                "ElectLeaders",
	AlterPartitionReassignments: "AlterPartitionReassignments",
	ListPartitionReassignments:  "ListPartitionReassignments",
	DescribeClientQuotas:        "DescribeClientQuotas",
}

// ErrorLayout declares where broker error codes live inside a response, so
// callers walk the right array instead of probing field names.
type ErrorLayout int

const (
	// ErrorLayoutNone: no uniform per-entity error array.
	ErrorLayoutNone ErrorLayout = iota
	// ErrorLayoutTopic: a flat array of (topic, error_code, ...) entries.
	ErrorLayoutTopic
	// ErrorLayoutTopicPartition: (topic, [(partition, error_code, ...)]).
	ErrorLayoutTopicPartition
	// ErrorLayoutPerGroup: a flat array of (group_id, error_code) entries.
	ErrorLayoutPerGroup
	// ErrorLayoutFilterAcls: (error_code, error_message, [matching acls]).
	ErrorLayoutFilterAcls
)

// Descriptor binds one (api key, version) pair to its request and response
// schemas. The registry is immutable after package init.
type Descriptor struct {
	Key      ApiKey
	Version  int16
	Flexible bool
	Request  *StructNode
	Response *StructNode

	// ErrorLayout and ErrorField describe the response's per-entity error
	// array for responses the controller retry loop must inspect.
	ErrorLayout ErrorLayout
	ErrorField  string
}

var registry = map[ApiKey][]*Descriptor{}

// register appends a descriptor; versions must be registered contiguously
// from zero.
func register(d *Descriptor) {
	if int(d.Version) != len(registry[d.Key]) {
		panic(fmt.Sprintf("protocol: %s v%d registered out of order", d.Key, d.Version))
	}
	registry[d.Key] = append(registry[d.Key], d)
}

// Lookup returns the descriptor for (key, version).
func Lookup(key ApiKey, version int16) (*Descriptor, error) {
	ds := registry[key]
	if version < 0 || int(version) >= len(ds) {
		return nil, errors.Errorf("protocol: no schema for %s v%d", key, version)
	}
	return ds[version], nil
}

// MaxVersion returns the highest registered version for key.
func MaxVersion(key ApiKey) (int16, bool) {
	ds := registry[key]
	if len(ds) == 0 {
		return 0, false
	}
	return int16(len(ds) - 1), true
}

// Descriptors returns every registered descriptor for key, ascending by
// version.
func Descriptors(key ApiKey) []*Descriptor {
	return registry[key]
}

// Keys returns every registered api key.
func Keys() []ApiKey {
	keys := make([]ApiKey, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}
