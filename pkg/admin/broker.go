package admin

import (
	"context"
	"fmt"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// UnknownNodeID stands in for "no specific broker". As a send target it means
// the least-loaded node; as a caller-supplied coordinator it means "resolve".
const UnknownNodeID int32 = -1

// Node is one broker of the cluster view.
type Node struct {
	ID   int32
	Host string
	Port int32
	Rack *string
}

func (n Node) String() string {
	return fmt.Sprintf("%s:%d (id: %d)", n.Host, n.Port, n.ID)
}

// BrokerVersion is the broker software version reported by the version
// handshake.
type BrokerVersion struct {
	Major int
	Minor int
	Patch int
}

func (v BrokerVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Before reports whether v is older than o.
func (v BrokerVersion) Before(o BrokerVersion) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// BrokerClient is the network collaborator owning sockets, handshakes and
// broker discovery. All network progress happens inside its calls; the admin
// client holds no connections of its own.
//
// Send encodes the request, frames it, and returns the decoded response for
// the request's negotiated version. Implementations must be safe for
// concurrent Send calls to distinct brokers.
type BrokerClient interface {
	// Ready blocks until the broker's connection is usable.
	Ready(ctx context.Context, nodeID int32) error
	Send(ctx context.Context, nodeID int32, req *protocol.Request) (*protocol.Record, error)
	// LeastLoadedNode returns the connected broker with the fewest in-flight
	// requests.
	LeastLoadedNode() int32
	// APIVersion returns min(maxVersion, broker max) for key, or an error
	// when the key is wholly unsupported.
	APIVersion(key protocol.ApiKey, maxVersion int16) (int16, error)
	CheckVersion(nodeID int32) (BrokerVersion, error)
	Brokers() []Node
	Topics() []string
	PartitionsForTopic(topic string) []int32
	Close() error
}
