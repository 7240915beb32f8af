package protocol

// Embedded structs carried as opaque bytes inside group RPCs: the consumer
// protocol subscription (member_metadata) and assignment (member_assignment).
// They use the same codec but are not framed RPCs, so they live outside the
// registry.

// ConsumerProtocolMetadata is the subscription a consumer advertises when
// joining a group.
var ConsumerProtocolMetadata = Struct(
	F("version", Int16),
	F("subscription", Array(String)),
	F("user_data", Bytes),
)

// ConsumerMemberAssignment is the per-member assignment distributed by the
// group leader.
var ConsumerMemberAssignment = Struct(
	F("version", Int16),
	F("assignment", Array(Struct(
		F("topic", String),
		F("partitions", Array(Int32)),
	))),
	F("user_data", Bytes),
)

// DecodeConsumerAssignment decodes a member_assignment blob. An empty blob
// decodes to nil, matching members that have no assignment yet.
func DecodeConsumerAssignment(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return DecodeStruct(ConsumerMemberAssignment, data, false)
}

// DecodeConsumerMetadata decodes a member_metadata blob. An empty blob
// decodes to nil.
func DecodeConsumerMetadata(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return DecodeStruct(ConsumerProtocolMetadata, data, false)
}
