package protocol

// Schema tables for Metadata, FindCoordinator and OffsetFetch. The topics
// array of a Metadata request is nullable from v1 on: nil asks for all
// topics, an empty array for none.

var metadataRequestV0 = Struct(
	F("topics", Array(String)),
)

var metadataRequestV4 = Struct(
	F("topics", Array(String)),
	F("allow_auto_topic_creation", Bool),
)

var metadataRequestV8 = Struct(
	F("topics", Array(String)),
	F("allow_auto_topic_creation", Bool),
	F("include_cluster_authorized_operations", Bool),
	F("include_topic_authorized_operations", Bool),
)

var metadataBrokerV0 = Struct(
	F("node_id", Int32),
	F("host", String),
	F("port", Int32),
)

var metadataBrokerV1 = Struct(
	F("node_id", Int32),
	F("host", String),
	F("port", Int32),
	F("rack", NullableString),
)

var metadataPartitionV0 = Struct(
	F("error_code", Int16),
	F("partition", Int32),
	F("leader", Int32),
	F("replicas", Array(Int32)),
	F("isr", Array(Int32)),
)

var metadataPartitionV5 = Struct(
	F("error_code", Int16),
	F("partition", Int32),
	F("leader", Int32),
	F("replicas", Array(Int32)),
	F("isr", Array(Int32)),
	F("offline_replicas", Array(Int32)),
)

var metadataPartitionV7 = Struct(
	F("error_code", Int16),
	F("partition", Int32),
	F("leader", Int32),
	F("leader_epoch", Int32),
	F("replicas", Array(Int32)),
	F("isr", Array(Int32)),
	F("offline_replicas", Array(Int32)),
)

func metadataTopic(partition *StructNode) *StructNode {
	return Struct(
		F("error_code", Int16),
		F("topic", String),
		F("is_internal", Bool),
		F("partitions", Array(partition)),
	)
}

var metadataResponseV0 = Struct(
	F("brokers", Array(metadataBrokerV0)),
	F("topics", Array(Struct(
		F("error_code", Int16),
		F("topic", String),
		F("partitions", Array(metadataPartitionV0)),
	))),
)

var metadataResponseV1 = Struct(
	F("brokers", Array(metadataBrokerV1)),
	F("controller_id", Int32),
	F("topics", Array(metadataTopic(metadataPartitionV0))),
)

var metadataResponseV2 = Struct(
	F("brokers", Array(metadataBrokerV1)),
	F("cluster_id", NullableString),
	F("controller_id", Int32),
	F("topics", Array(metadataTopic(metadataPartitionV0))),
)

var metadataResponseV3 = Struct(
	F("throttle_time_ms", Int32),
	F("brokers", Array(metadataBrokerV1)),
	F("cluster_id", NullableString),
	F("controller_id", Int32),
	F("topics", Array(metadataTopic(metadataPartitionV0))),
)

var metadataResponseV5 = Struct(
	F("throttle_time_ms", Int32),
	F("brokers", Array(metadataBrokerV1)),
	F("cluster_id", NullableString),
	F("controller_id", Int32),
	F("topics", Array(metadataTopic(metadataPartitionV5))),
)

var metadataResponseV7 = Struct(
	F("throttle_time_ms", Int32),
	F("brokers", Array(metadataBrokerV1)),
	F("cluster_id", NullableString),
	F("controller_id", Int32),
	F("topics", Array(metadataTopic(metadataPartitionV7))),
)

var metadataResponseV8 = Struct(
	F("throttle_time_ms", Int32),
	F("brokers", Array(metadataBrokerV1)),
	F("cluster_id", NullableString),
	F("controller_id", Int32),
	F("topics", Array(Struct(
		F("error_code", Int16),
		F("topic", String),
		F("is_internal", Bool),
		F("partitions", Array(metadataPartitionV7)),
		F("topic_authorized_operations", BitField32),
	))),
	F("cluster_authorized_operations", BitField32),
)

var findCoordinatorRequestV1 = Struct(
	F("coordinator_key", String),
	F("coordinator_type", Int8),
)

var findCoordinatorResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("error_message", NullableString),
	F("coordinator_id", Int32),
	F("host", String),
	F("port", Int32),
)

var offsetFetchRequestV0 = Struct(
	F("consumer_group", String),
	F("topics", Array(Struct(
		F("topic", String),
		F("partitions", Array(Int32)),
	))),
)

var offsetFetchTopicsV0 = Array(Struct(
	F("topic", String),
	F("partitions", Array(Struct(
		F("partition", Int32),
		F("offset", Int64),
		F("metadata", NullableString),
		F("error_code", Int16),
	))),
))

var offsetFetchResponseV0 = Struct(
	F("topics", offsetFetchTopicsV0),
)

var offsetFetchResponseV2 = Struct(
	F("topics", offsetFetchTopicsV0),
	F("error_code", Int16),
)

var offsetFetchResponseV3 = Struct(
	F("throttle_time_ms", Int32),
	F("topics", offsetFetchTopicsV0),
	F("error_code", Int16),
)

var offsetFetchResponseV5 = Struct(
	F("throttle_time_ms", Int32),
	F("topics", Array(Struct(
		F("topic", String),
		F("partitions", Array(Struct(
			F("partition", Int32),
			F("offset", Int64),
			F("leader_epoch", Int32),
			F("metadata", NullableString),
			F("error_code", Int16),
		))),
	))),
	F("error_code", Int16),
)

func init() {
	register(&Descriptor{Key: Metadata, Version: 0,
		Request: metadataRequestV0, Response: metadataResponseV0,
	})
	register(&Descriptor{Key: Metadata, Version: 1,
		Request: metadataRequestV0, Response: metadataResponseV1,
	})
	register(&Descriptor{Key: Metadata, Version: 2,
		Request: metadataRequestV0, Response: metadataResponseV2,
	})
	register(&Descriptor{Key: Metadata, Version: 3,
		Request: metadataRequestV0, Response: metadataResponseV3,
	})
	register(&Descriptor{Key: Metadata, Version: 4,
		Request: metadataRequestV4, Response: metadataResponseV3,
	})
	register(&Descriptor{Key: Metadata, Version: 5,
		Request: metadataRequestV4, Response: metadataResponseV5,
	})
	register(&Descriptor{Key: Metadata, Version: 6,
		Request: metadataRequestV4, Response: metadataResponseV5,
	})
	register(&Descriptor{Key: Metadata, Version: 7,
		Request: metadataRequestV4, Response: metadataResponseV7,
	})
	register(&Descriptor{Key: Metadata, Version: 8,
		Request: metadataRequestV8, Response: metadataResponseV8,
	})

	register(&Descriptor{Key: FindCoordinator, Version: 0,
		Request: Struct(F("coordinator_key", String)),
		Response: Struct(
			F("error_code", Int16),
			F("coordinator_id", Int32),
			F("host", String),
			F("port", Int32),
		),
	})
	register(&Descriptor{Key: FindCoordinator, Version: 1,
		Request: findCoordinatorRequestV1, Response: findCoordinatorResponseV1,
	})
	register(&Descriptor{Key: FindCoordinator, Version: 2,
		Request: findCoordinatorRequestV1, Response: findCoordinatorResponseV1,
	})

	register(&Descriptor{Key: OffsetFetch, Version: 0,
		Request: offsetFetchRequestV0, Response: offsetFetchResponseV0,
	})
	register(&Descriptor{Key: OffsetFetch, Version: 1,
		Request: offsetFetchRequestV0, Response: offsetFetchResponseV0,
	})
	register(&Descriptor{Key: OffsetFetch, Version: 2,
		Request: offsetFetchRequestV0, Response: offsetFetchResponseV2,
	})
	register(&Descriptor{Key: OffsetFetch, Version: 3,
		Request: offsetFetchRequestV0, Response: offsetFetchResponseV3,
	})
	register(&Descriptor{Key: OffsetFetch, Version: 4,
		Request: offsetFetchRequestV0, Response: offsetFetchResponseV3,
	})
	register(&Descriptor{Key: OffsetFetch, Version: 5,
		Request: offsetFetchRequestV0, Response: offsetFetchResponseV5,
	})
}
