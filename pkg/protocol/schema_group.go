package protocol

// Schema tables for the group-coordination APIs.

var joinGroupRequestV1 = Struct(
	F("group", String),
	F("session_timeout", Int32),
	F("rebalance_timeout", Int32),
	F("member_id", String),
	F("protocol_type", String),
	F("group_protocols", Array(Struct(
		F("protocol_name", String),
		F("protocol_metadata", Bytes),
	))),
)

var joinGroupResponseV0 = Struct(
	F("error_code", Int16),
	F("generation_id", Int32),
	F("group_protocol", String),
	F("leader_id", String),
	F("member_id", String),
	F("members", Array(Struct(
		F("member_id", String),
		F("member_metadata", Bytes),
	))),
)

var joinGroupResponseV2 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("generation_id", Int32),
	F("group_protocol", String),
	F("leader_id", String),
	F("member_id", String),
	F("members", Array(Struct(
		F("member_id", String),
		F("member_metadata", Bytes),
	))),
)

// Static membership (KIP-345) threads a group_instance_id through the v5/v3
// generation of the group APIs.
var joinGroupRequestV5 = Struct(
	F("group", String),
	F("session_timeout", Int32),
	F("rebalance_timeout", Int32),
	F("member_id", String),
	F("group_instance_id", String),
	F("protocol_type", String),
	F("group_protocols", Array(Struct(
		F("protocol_name", String),
		F("protocol_metadata", Bytes),
	))),
)

var joinGroupResponseV5 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("generation_id", Int32),
	F("group_protocol", String),
	F("leader_id", String),
	F("member_id", String),
	F("members", Array(Struct(
		F("member_id", String),
		F("group_instance_id", String),
		F("member_metadata", Bytes),
	))),
)

var heartbeatRequestV0 = Struct(
	F("group", String),
	F("generation_id", Int32),
	F("member_id", String),
)

var throttledErrorCode = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
)

var leaveGroupRequestV0 = Struct(
	F("group", String),
	F("member_id", String),
)

var syncGroupRequestV0 = Struct(
	F("group", String),
	F("generation_id", Int32),
	F("member_id", String),
	F("group_assignment", Array(Struct(
		F("member_id", String),
		F("member_metadata", Bytes),
	))),
)

var syncGroupResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("member_assignment", Bytes),
)

var describeGroupsRequestV0 = Struct(
	F("groups", Array(String)),
)

var describedGroupV0 = Struct(
	F("error_code", Int16),
	F("group", String),
	F("state", String),
	F("protocol_type", String),
	F("protocol", String),
	F("members", Array(Struct(
		F("member_id", String),
		F("client_id", String),
		F("client_host", String),
		F("member_metadata", Bytes),
		F("member_assignment", Bytes),
	))),
)

var describeGroupsResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("groups", Array(describedGroupV0)),
)

var describeGroupsResponseV3 = Struct(
	F("throttle_time_ms", Int32),
	F("groups", Array(Struct(
		F("error_code", Int16),
		F("group", String),
		F("state", String),
		F("protocol_type", String),
		F("protocol", String),
		F("members", Array(Struct(
			F("member_id", String),
			F("client_id", String),
			F("client_host", String),
			F("member_metadata", Bytes),
			F("member_assignment", Bytes),
		))),
		F("authorized_operations", BitField32),
	))),
)

var listGroupsResponseV0 = Struct(
	F("error_code", Int16),
	F("groups", Array(Struct(
		F("group", String),
		F("protocol_type", String),
	))),
)

var listGroupsResponseV1 = Struct(
	F("throttle_time_ms", Int32),
	F("error_code", Int16),
	F("groups", Array(Struct(
		F("group", String),
		F("protocol_type", String),
	))),
)

func init() {
	register(&Descriptor{Key: JoinGroup, Version: 0,
		Request: Struct(
			F("group", String),
			F("session_timeout", Int32),
			F("member_id", String),
			F("protocol_type", String),
			F("group_protocols", Array(Struct(
				F("protocol_name", String),
				F("protocol_metadata", Bytes),
			))),
		),
		Response: joinGroupResponseV0,
	})
	register(&Descriptor{Key: JoinGroup, Version: 1,
		Request: joinGroupRequestV1, Response: joinGroupResponseV0,
	})
	register(&Descriptor{Key: JoinGroup, Version: 2,
		Request: joinGroupRequestV1, Response: joinGroupResponseV2,
	})
	register(&Descriptor{Key: JoinGroup, Version: 3,
		Request: joinGroupRequestV1, Response: joinGroupResponseV2,
	})
	register(&Descriptor{Key: JoinGroup, Version: 4,
		Request: joinGroupRequestV1, Response: joinGroupResponseV2,
	})
	register(&Descriptor{Key: JoinGroup, Version: 5,
		Request: joinGroupRequestV5, Response: joinGroupResponseV5,
	})

	register(&Descriptor{Key: Heartbeat, Version: 0,
		Request:  heartbeatRequestV0,
		Response: Struct(F("error_code", Int16)),
	})
	register(&Descriptor{Key: Heartbeat, Version: 1,
		Request: heartbeatRequestV0, Response: throttledErrorCode,
	})
	register(&Descriptor{Key: Heartbeat, Version: 2,
		Request: heartbeatRequestV0, Response: throttledErrorCode,
	})
	register(&Descriptor{Key: Heartbeat, Version: 3,
		Request: Struct(
			F("group", String),
			F("generation_id", Int32),
			F("member_id", String),
			F("group_instance_id", String),
		),
		Response: throttledErrorCode,
	})

	register(&Descriptor{Key: LeaveGroup, Version: 0,
		Request:  leaveGroupRequestV0,
		Response: Struct(F("error_code", Int16)),
	})
	register(&Descriptor{Key: LeaveGroup, Version: 1,
		Request: leaveGroupRequestV0, Response: throttledErrorCode,
	})
	register(&Descriptor{Key: LeaveGroup, Version: 2,
		Request: leaveGroupRequestV0, Response: throttledErrorCode,
	})
	register(&Descriptor{Key: LeaveGroup, Version: 3,
		Request: Struct(
			F("group", String),
			F("members", Array(Struct(
				F("member_id", String),
				F("group_instance_id", String),
			))),
		),
		Response: Struct(
			F("throttle_time_ms", Int32),
			F("error_code", Int16),
			F("members", Array(Struct(
				F("member_id", String),
				F("group_instance_id", String),
				F("error_code", Int16),
			))),
		),
	})

	register(&Descriptor{Key: SyncGroup, Version: 0,
		Request: syncGroupRequestV0,
		Response: Struct(
			F("error_code", Int16),
			F("member_assignment", Bytes),
		),
	})
	register(&Descriptor{Key: SyncGroup, Version: 1,
		Request: syncGroupRequestV0, Response: syncGroupResponseV1,
	})
	register(&Descriptor{Key: SyncGroup, Version: 2,
		Request: syncGroupRequestV0, Response: syncGroupResponseV1,
	})
	register(&Descriptor{Key: SyncGroup, Version: 3,
		Request: Struct(
			F("group", String),
			F("generation_id", Int32),
			F("member_id", String),
			F("group_instance_id", String),
			F("group_assignment", Array(Struct(
				F("member_id", String),
				F("member_metadata", Bytes),
			))),
		),
		Response: syncGroupResponseV1,
	})

	register(&Descriptor{Key: DescribeGroups, Version: 0,
		Request: describeGroupsRequestV0,
		Response: Struct(
			F("groups", Array(describedGroupV0)),
		),
	})
	register(&Descriptor{Key: DescribeGroups, Version: 1,
		Request: describeGroupsRequestV0, Response: describeGroupsResponseV1,
	})
	register(&Descriptor{Key: DescribeGroups, Version: 2,
		Request: describeGroupsRequestV0, Response: describeGroupsResponseV1,
	})
	register(&Descriptor{Key: DescribeGroups, Version: 3,
		Request: Struct(
			F("groups", Array(String)),
			F("include_authorized_operations", Bool),
		),
		Response: describeGroupsResponseV3,
	})

	register(&Descriptor{Key: ListGroups, Version: 0,
		Request: Struct(), Response: listGroupsResponseV0,
	})
	register(&Descriptor{Key: ListGroups, Version: 1,
		Request: Struct(), Response: listGroupsResponseV1,
	})
	register(&Descriptor{Key: ListGroups, Version: 2,
		Request: Struct(), Response: listGroupsResponseV1,
	})
}
