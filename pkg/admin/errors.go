package admin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/twmb/franz-go/pkg/kerr"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = fmt.Errorf("admin: client is closed")

// ConfigurationError reports an invalid or unrecognized configuration option
// or an argument that fails validation before anything is sent.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "admin: configuration error: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// IncompatibleBrokerVersionError reports a requested feature that the
// negotiated protocol version cannot express.
type IncompatibleBrokerVersionError struct {
	Feature  string
	Required string
	Got      string
}

func (e *IncompatibleBrokerVersionError) Error() string {
	return fmt.Sprintf("admin: %s requires %s, negotiated %s", e.Feature, e.Required, e.Got)
}

// UnrecognizedBrokerVersionError reports a broker too old to support
// controller discovery.
type UnrecognizedBrokerVersionError struct {
	Reason string
}

func (e *UnrecognizedBrokerVersionError) Error() string {
	return "admin: unrecognized broker version: " + e.Reason
}

// UnknownTopicOrPartitionError names every requested partition that the
// cluster metadata does not know about.
type UnknownTopicOrPartitionError struct {
	Partitions []TopicPartition
}

func (e *UnknownTopicOrPartitionError) Error() string {
	names := make([]string, len(e.Partitions))
	for i, tp := range e.Partitions {
		names[i] = tp.String()
	}
	sort.Strings(names)
	return "admin: the following partitions are not known: " + strings.Join(names, ", ")
}

// Unwrap lets errors.Is match the broker error code.
func (e *UnknownTopicOrPartitionError) Unwrap() error {
	return kerr.UnknownTopicOrPartition
}

// DeleteRecordsError aggregates the per-partition failures of a DeleteRecords
// call that failed for more than one partition.
type DeleteRecordsError struct {
	Errors map[TopicPartition]error
}

func (e *DeleteRecordsError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for tp, err := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", tp, err))
	}
	sort.Strings(parts)
	return "admin: errors while deleting records: " + strings.Join(parts, ", ")
}
