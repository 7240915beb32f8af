package protocol

// Schema tables for the admin-plane APIs. One register call per (api key,
// version); shared subtrees are hoisted into vars when several versions reuse
// them unchanged.

var replicaAssignment = Array(Struct(
	F("partition_id", Int32),
	F("replicas", Array(Int32)),
))

var createTopicsRequestV0 = Struct(
	F("create_topic_requests", Array(Struct(
		F("topic", String),
		F("num_partitions", Int32),
		F("replication_factor", Int16),
		F("replica_assignment", replicaAssignment),
		F("configs", Array(Struct(
			F("config_key", String),
			F("config_value", NullableString),
		))),
	))),
	F("timeout", Int32),
)

var createTopicsRequestV1 = Struct(
	F("create_topic_requests", Array(Struct(
		F("topic", String),
		F("num_partitions", Int32),
		F("replication_factor", Int16),
		F("replica_assignment", replicaAssignment),
		F("configs", Array(Struct(
			F("config_key", String),
			F("config_value", NullableString),
		))),
	))),
	F("timeout", Int32),
	F("validate_only", Bool),
)

var createTopicsResponseV1 = Struct(
	F("topic_errors", Array(Struct(
		F("topic", String),
		F("error_code", Int16),
		F("error_message", NullableString),
	))),
)

var createTopicsResponseV2 = Struct(
	F("throttle_time_ms", Int32),
	F("topic_errors", Array(Struct(
		F("topic", String),
		F("error_code", Int16),
		F("error_message", NullableString),
	))),
)

var deleteTopicsRequestV0 = Struct(
	F("topics", Array(String)),
	F("timeout", Int32),
)

var deleteTopicsResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("topic_error_codes", Array(Struct(
		F("topic", String),
		F("error_code", Int16),
	))),
)

var deleteRecordsRequestV0 = Struct(
	F("topics", Array(Struct(
		F("name", String),
		F("partitions", Array(Struct(
			F("partition_index", Int32),
			F("offset", Int64),
		))),
	))),
	F("timeout_ms", Int32),
)

var deleteRecordsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("topics", Array(Struct(
		F("name", String),
		F("partitions", Array(Struct(
			F("partition_index", Int32),
			F("low_watermark", Int64),
			F("error_code", Int16),
		))),
	))),
)

var describeAclsRequestV0 = Struct(
	F("resource_type", Int8),
	F("resource_name", NullableString),
	F("principal", NullableString),
	F("host", NullableString),
	F("operation", Int8),
	F("permission_type", Int8),
)

var describeAclsRequestV1 = Struct(
	F("resource_type", Int8),
	F("resource_name", NullableString),
	F("resource_pattern_type_filter", Int8),
	F("principal", NullableString),
	F("host", NullableString),
	F("operation", Int8),
	F("permission_type", Int8),
)

var describeAclsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("error_message", NullableString),
	F("resources", Array(Struct(
		F("resource_type", Int8),
		F("resource_name", String),
		F("acls", Array(Struct(
			F("principal", String),
			F("host", String),
			F("operation", Int8),
			F("permission_type", Int8),
		))),
	))),
)

var describeAclsResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("error_message", NullableString),
	F("resources", Array(Struct(
		F("resource_type", Int8),
		F("resource_name", String),
		F("resource_pattern_type", Int8),
		F("acls", Array(Struct(
			F("principal", String),
			F("host", String),
			F("operation", Int8),
			F("permission_type", Int8),
		))),
	))),
)

var createAclsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("creation_responses", Array(Struct(
		F("error_code", Int16),
		F("error_message", NullableString),
	))),
)

var describeConfigsRequestV1 = Struct(
	F("resources", Array(Struct(
		F("resource_type", Int8),
		F("resource_name", String),
		F("config_names", Array(String)),
	))),
	F("include_synonyms", Bool),
)

var describeConfigsEntryV1 = Struct(
	F("config_name", String),
	F("config_value", NullableString),
	F("read_only", Bool),
	F("config_source", Int8),
	F("is_sensitive", Bool),
	F("config_synonyms", Array(Struct(
		F("config_name", String),
		F("config_value", NullableString),
		F("config_source", Int8),
	))),
)

var describeConfigsResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("resources", Array(Struct(
		F("error_code", Int16),
		F("error_message", NullableString),
		F("resource_type", Int8),
		F("resource_name", String),
		F("config_entries", Array(describeConfigsEntryV1)),
	))),
)

var alterConfigsRequestV0 = Struct(
	F("resources", Array(Struct(
		F("resource_type", Int8),
		F("resource_name", String),
		F("config_entries", Array(Struct(
			F("config_name", String),
			F("config_value", NullableString),
		))),
	))),
	F("validate_only", Bool),
)

var alterConfigsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("resources", Array(Struct(
		F("error_code", Int16),
		F("error_message", NullableString),
		F("resource_type", Int8),
		F("resource_name", String),
	))),
)

var describeLogDirsRequestV0 = Struct(
	F("topics", Array(Struct(
		F("topic", String),
		F("partitions", Array(Int32)),
	))),
)

var describeLogDirsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("log_dirs", Array(Struct(
		F("error_code", Int16),
		F("log_dir", String),
		F("topics", Array(Struct(
			F("name", String),
			F("partitions", Array(Struct(
				F("partition_index", Int32),
				F("partition_size", Int64),
				F("offset_lag", Int64),
				F("is_future_key", Bool),
			))),
		))),
	))),
)

var saslAuthenticateRequestV0 = Struct(
	F("sasl_auth_bytes", Bytes),
)

var createPartitionsRequestV0 = Struct(
	F("topic_partitions", Array(Struct(
		F("topic", String),
		F("new_partitions", Struct(
			F("count", Int32),
			F("assignment", Array(Array(Int32))),
		)),
	))),
	F("timeout", Int32),
	F("validate_only", Bool),
)

var createPartitionsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("topic_errors", Array(Struct(
		F("topic", String),
		F("error_code", Int16),
		F("error_message", NullableString),
	))),
)

var deleteGroupsRequestV0 = Struct(
	F("group_names", Array(String)),
)

var deleteGroupsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("results", Array(Struct(
		F("group_id", String),
		F("error_code", Int16),
	))),
)

var electLeadersRequestV0 = Struct(
	F("election_type", Int8),
	F("topic_partitions", Array(Struct(
		F("topic", String),
		F("partition_ids", Array(Int32)),
	))),
	F("timeout", Int32),
)

var electLeadersResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("replication_election_results", Array(Struct(
		F("topic", String),
		F("partition_result", Array(Struct(
			F("partition_id", Int32),
			F("error_code", Int16),
			F("error_message", NullableString),
		))),
	))),
)

var alterPartitionReassignmentsRequestV0 = Struct(
	F("timeout_ms", Int32),
	F("topics", CompactArray(Struct(
		F("name", CompactString),
		F("partitions", CompactArray(Struct(
			F("partition_index", Int32),
			F("replicas", CompactArray(Int32)),
			F("tags", Tags),
		))),
		F("tags", Tags),
	))),
	F("tags", Tags),
)

var alterPartitionReassignmentsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("error_message", CompactString),
	F("responses", CompactArray(Struct(
		F("name", CompactString),
		F("partitions", CompactArray(Struct(
			F("partition_index", Int32),
			F("error_code", Int16),
			F("error_message", CompactString),
			F("tags", Tags),
		))),
		F("tags", Tags),
	))),
	F("tags", Tags),
)

var listPartitionReassignmentsRequestV0 = Struct(
	F("timeout_ms", Int32),
	F("topics", CompactArray(Struct(
		F("name", CompactString),
		F("partition_index", CompactArray(Int32)),
		F("tags", Tags),
	))),
	F("tags", Tags),
)

var listPartitionReassignmentsResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("error_message", CompactString),
	F("topics", CompactArray(Struct(
		F("name", CompactString),
		F("partitions", CompactArray(Struct(
			F("partition_index", Int32),
			F("replicas", CompactArray(Int32)),
			F("adding_replicas", CompactArray(Int32)),
			F("removing_replicas", CompactArray(Int32)),
			F("tags", Tags),
		))),
		F("tags", Tags),
	))),
	F("tags", Tags),
)

var describeClientQuotasRequestV0 = Struct(
	F("components", Array(Struct(
		F("entity_type", String),
		F("match_type", Int8),
		F("match", NullableString),
	))),
	F("strict", Bool),
)

var describeClientQuotasResponseV0 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("error_message", NullableString),
	F("entries", Array(Struct(
		F("entity", Array(Struct(
			F("entity_type", String),
			F("entity_name", NullableString),
		))),
		F("values", Array(Struct(
			F("name", String),
			F("value", Float64),
		))),
	))),
)

func init() {
	register(&Descriptor{Key: CreateTopics, Version: 0,
		Request: createTopicsRequestV0,
		Response: Struct(
			F("topic_errors", Array(Struct(
				F("topic", String),
				F("error_code", Int16),
			))),
		),
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_errors",
	})
	register(&Descriptor{Key: CreateTopics, Version: 1,
		Request: createTopicsRequestV1, Response: createTopicsResponseV1,
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_errors",
	})
	register(&Descriptor{Key: CreateTopics, Version: 2,
		Request: createTopicsRequestV1, Response: createTopicsResponseV2,
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_errors",
	})
	register(&Descriptor{Key: CreateTopics, Version: 3,
		Request: createTopicsRequestV1, Response: createTopicsResponseV2,
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_errors",
	})

	register(&Descriptor{Key: DeleteTopics, Version: 0,
		Request: deleteTopicsRequestV0,
		Response: Struct(
			F("topic_error_codes", Array(Struct(
				F("topic", String),
				F("error_code", Int16),
			))),
		),
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_error_codes",
	})
	for v := int16(1); v <= 3; v++ {
		register(&Descriptor{Key: DeleteTopics, Version: v,
			Request: deleteTopicsRequestV0, Response: deleteTopicsResponseV1,
			ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_error_codes",
		})
	}

	register(&Descriptor{Key: DeleteRecords, Version: 0,
		Request: deleteRecordsRequestV0, Response: deleteRecordsResponseV0,
	})

	register(&Descriptor{Key: DescribeAcls, Version: 0,
		Request: describeAclsRequestV0, Response: describeAclsResponseV0,
	})
	register(&Descriptor{Key: DescribeAcls, Version: 1,
		Request: describeAclsRequestV1, Response: describeAclsResponseV1,
	})

	register(&Descriptor{Key: CreateAcls, Version: 0,
		Request: Struct(
			F("creations", Array(Struct(
				F("resource_type", Int8),
				F("resource_name", String),
				F("principal", String),
				F("host", String),
				F("operation", Int8),
				F("permission_type", Int8),
			))),
		),
		Response: createAclsResponseV0,
	})
	register(&Descriptor{Key: CreateAcls, Version: 1,
		Request: Struct(
			F("creations", Array(Struct(
				F("resource_type", Int8),
				F("resource_name", String),
				F("resource_pattern_type", Int8),
				F("principal", String),
				F("host", String),
				F("operation", Int8),
				F("permission_type", Int8),
			))),
		),
		Response: createAclsResponseV0,
	})

	register(&Descriptor{Key: DeleteAcls, Version: 0,
		Request: Struct(
			F("filters", Array(describeAclsRequestV0)),
		),
		Response: Struct(
			F("throttle_time_ms", Int32),
			F("filter_responses", Array(Struct(
				F("error_code", Int16),
				F("error_message", NullableString),
				F("matching_acls", Array(Struct(
					F("error_code", Int16),
					F("error_message", NullableString),
					F("resource_type", Int8),
					F("resource_name", String),
					F("principal", String),
					F("host", String),
					F("operation", Int8),
					F("permission_type", Int8),
				))),
			))),
		),
		ErrorLayout: ErrorLayoutFilterAcls, ErrorField: "filter_responses",
	})
	register(&Descriptor{Key: DeleteAcls, Version: 1,
		Request: Struct(
			F("filters", Array(describeAclsRequestV1)),
		),
		Response: Struct(
			F("throttle_time_ms", Int32),
			F("filter_responses", Array(Struct(
				F("error_code", Int16),
				F("error_message", NullableString),
				F("matching_acls", Array(Struct(
					F("error_code", Int16),
					F("error_message", NullableString),
					F("resource_type", Int8),
					F("resource_name", String),
					F("resource_pattern_type", Int8),
					F("principal", String),
					F("host", String),
					F("operation", Int8),
					F("permission_type", Int8),
				))),
			))),
		),
		ErrorLayout: ErrorLayoutFilterAcls, ErrorField: "filter_responses",
	})

	register(&Descriptor{Key: DescribeConfigs, Version: 0,
		Request: Struct(
			F("resources", Array(Struct(
				F("resource_type", Int8),
				F("resource_name", String),
				F("config_names", Array(String)),
			))),
		),
		Response: Struct(
			F("throttle_time_ms", Int32),
			F("resources", Array(Struct(
				F("error_code", Int16),
				F("error_message", NullableString),
				F("resource_type", Int8),
				F("resource_name", String),
				F("config_entries", Array(Struct(
					F("config_name", String),
					F("config_value", NullableString),
					F("read_only", Bool),
					F("is_default", Bool),
					F("is_sensitive", Bool),
				))),
			))),
		),
	})
	register(&Descriptor{Key: DescribeConfigs, Version: 1,
		Request: describeConfigsRequestV1, Response: describeConfigsResponseV1,
	})
	register(&Descriptor{Key: DescribeConfigs, Version: 2,
		Request: describeConfigsRequestV1, Response: describeConfigsResponseV1,
	})

	register(&Descriptor{Key: AlterConfigs, Version: 0,
		Request: alterConfigsRequestV0, Response: alterConfigsResponseV0,
	})
	register(&Descriptor{Key: AlterConfigs, Version: 1,
		Request: alterConfigsRequestV0, Response: alterConfigsResponseV0,
	})

	register(&Descriptor{Key: DescribeLogDirs, Version: 0,
		Request: describeLogDirsRequestV0, Response: describeLogDirsResponseV0,
	})

	register(&Descriptor{Key: SaslAuthenticate, Version: 0,
		Request: saslAuthenticateRequestV0,
		Response: Struct(
			F("error_code", Int16),
			F("error_message", NullableString),
			F("sasl_auth_bytes", Bytes),
		),
	})
	register(&Descriptor{Key: SaslAuthenticate, Version: 1,
		Request: saslAuthenticateRequestV0,
		Response: Struct(
			F("error_code", Int16),
			F("error_message", NullableString),
			F("sasl_auth_bytes", Bytes),
			F("session_lifetime_ms", Int64),
		),
	})

	register(&Descriptor{Key: CreatePartitions, Version: 0,
		Request: createPartitionsRequestV0, Response: createPartitionsResponseV0,
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_errors",
	})
	register(&Descriptor{Key: CreatePartitions, Version: 1,
		Request: createPartitionsRequestV0, Response: createPartitionsResponseV0,
		ErrorLayout: ErrorLayoutTopic, ErrorField: "topic_errors",
	})

	register(&Descriptor{Key: DeleteGroups, Version: 0,
		Request: deleteGroupsRequestV0, Response: deleteGroupsResponseV0,
		ErrorLayout: ErrorLayoutPerGroup, ErrorField: "results",
	})
	register(&Descriptor{Key: DeleteGroups, Version: 1,
		Request: deleteGroupsRequestV0, Response: deleteGroupsResponseV0,
		ErrorLayout: ErrorLayoutPerGroup, ErrorField: "results",
	})

	register(&Descriptor{Key: ElectLeaders, Version: 0,
		Request: electLeadersRequestV0, Response: electLeadersResponseV0,
		ErrorLayout: ErrorLayoutTopicPartition, ErrorField: "replication_election_results",
	})
	register(&Descriptor{Key: ElectLeaders, Version: 1,
		Request: electLeadersRequestV0, Response: electLeadersResponseV0,
		ErrorLayout: ErrorLayoutTopicPartition, ErrorField: "replication_election_results",
	})

	register(&Descriptor{Key: AlterPartitionReassignments, Version: 0, Flexible: true,
		Request:  alterPartitionReassignmentsRequestV0,
		Response: alterPartitionReassignmentsResponseV0,
	})

	register(&Descriptor{Key: ListPartitionReassignments, Version: 0, Flexible: true,
		Request:  listPartitionReassignmentsRequestV0,
		Response: listPartitionReassignmentsResponseV0,
	})

	register(&Descriptor{Key: DescribeClientQuotas, Version: 0,
		Request: describeClientQuotasRequestV0, Response: describeClientQuotasResponseV0,
	})
}
