package admin

import "fmt"

// Client-side maximum supported version per api key. The negotiated version
// for a call is min(client max, broker max).
const (
	maxMetadataVersion         int16 = 8
	maxOffsetFetchVersion      int16 = 5
	maxFindCoordinatorVersion  int16 = 2
	maxDescribeGroupsVersion   int16 = 3
	maxListGroupsVersion       int16 = 2
	maxCreateTopicsVersion     int16 = 3
	maxDeleteTopicsVersion     int16 = 3
	maxDeleteRecordsVersion    int16 = 0
	maxDescribeAclsVersion     int16 = 1
	maxCreateAclsVersion       int16 = 1
	maxDeleteAclsVersion       int16 = 1
	maxDescribeConfigsVersion  int16 = 2
	maxAlterConfigsVersion     int16 = 1
	maxDescribeLogDirsVersion  int16 = 0
	maxCreatePartitionsVersion int16 = 1
	maxDeleteGroupsVersion     int16 = 1
	maxElectLeadersVersion     int16 = 1

	maxAlterPartitionReassignmentsVersion int16 = 0
	maxListPartitionReassignmentsVersion  int16 = 0
	maxDescribeClientQuotasVersion        int16 = 0
)

func incompatibleVersion(feature, required string, got int16) error {
	return &IncompatibleBrokerVersionError{
		Feature:  feature,
		Required: required,
		Got:      fmt.Sprintf("v%d", got),
	}
}
