package admin

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

func aclFilterBody(f AclFilter, version int16) []any {
	if version == 0 {
		return []any{
			int8(f.ResourceType),
			f.ResourceName,
			f.Principal,
			f.Host,
			int8(f.Operation),
			int8(f.PermissionType),
		}
	}
	return []any{
		int8(f.ResourceType),
		f.ResourceName,
		int8(f.PatternType),
		f.Principal,
		f.Host,
		int8(f.Operation),
		int8(f.PermissionType),
	}
}

func aclCreationBody(acl Acl, version int16) []any {
	if version == 0 {
		return []any{
			int8(acl.Pattern.ResourceType),
			acl.Pattern.Name,
			acl.Principal,
			acl.Host,
			int8(acl.Operation),
			int8(acl.PermissionType),
		}
	}
	return []any{
		int8(acl.Pattern.ResourceType),
		acl.Pattern.Name,
		int8(acl.Pattern.PatternType),
		acl.Principal,
		acl.Host,
		int8(acl.Operation),
		int8(acl.PermissionType),
	}
}

// parseAcl reads one (principal, host, operation, permission) entry under a
// resource. v0 responses predate pattern types; those ACLs are LITERAL.
func parseAcl(entry *protocol.Record, resourceType int8, resourceName string, patternType PatternType) Acl {
	return Acl{
		Principal:      entry.Str("principal"),
		Host:           entry.Str("host"),
		Operation:      AclOperation(entry.Int8("operation")),
		PermissionType: AclPermissionType(entry.Int8("permission_type")),
		Pattern: ResourcePattern{
			ResourceType: ResourceType(resourceType),
			Name:         resourceName,
			PatternType:  patternType,
		},
	}
}

// DescribeAcls returns every ACL matching the filter. The cluster must run an
// authorizer, otherwise the broker answers SecurityDisabled.
func (a *Admin) DescribeAcls(ctx context.Context, filter AclFilter) ([]Acl, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DescribeAcls, maxDescribeAclsVersion)
	if err != nil {
		return nil, err
	}
	req, err := a.newRequest(protocol.DescribeAcls, version, aclFilterBody(filter, version)...)
	if err != nil {
		return nil, err
	}
	resp, err := a.send(ctx, UnknownNodeID, req)
	if err != nil {
		return nil, err
	}
	if kafkaErr := kerr.ErrorForCode(resp.Int16("error_code")); kafkaErr != nil {
		return nil, errors.Wrapf(kafkaErr, "DescribeAcls v%d request failed with response %s", version, resp)
	}

	var acls []Acl
	for _, r := range resp.Array("resources") {
		resource := r.(*protocol.Record)
		patternType := PatternLiteral
		if resource.Has("resource_pattern_type") {
			patternType = PatternType(resource.Int8("resource_pattern_type"))
		}
		for _, e := range resource.Array("acls") {
			acls = append(acls, parseAcl(
				e.(*protocol.Record),
				resource.Int8("resource_type"),
				resource.Str("resource_name"),
				patternType,
			))
		}
	}
	return acls, nil
}

// CreateAcls creates the given ACLs and splits the outcome per input ACL; the
// broker's creation responses are index-aligned with the request.
func (a *Admin) CreateAcls(ctx context.Context, acls []Acl) (CreateAclsResult, error) {
	if err := a.checkOpen(); err != nil {
		return CreateAclsResult{}, err
	}
	version, err := a.client.APIVersion(protocol.CreateAcls, maxCreateAclsVersion)
	if err != nil {
		return CreateAclsResult{}, err
	}
	creations := make([]any, len(acls))
	for i, acl := range acls {
		creations[i] = aclCreationBody(acl, version)
	}
	req, err := a.newRequest(protocol.CreateAcls, version, creations)
	if err != nil {
		return CreateAclsResult{}, err
	}
	resp, err := a.send(ctx, UnknownNodeID, req)
	if err != nil {
		return CreateAclsResult{}, err
	}

	var result CreateAclsResult
	for i, e := range resp.Array("creation_responses") {
		entry := e.(*protocol.Record)
		if kafkaErr := kerr.ErrorForCode(entry.Int16("error_code")); kafkaErr != nil {
			result.Failed = append(result.Failed, AclFailure{Acl: acls[i], Err: kafkaErr})
		} else {
			result.Succeeded = append(result.Succeeded, acls[i])
		}
	}
	return result, nil
}

// DeleteAcls deletes every ACL matching each filter and reports, per filter,
// the matched ACLs with their individual outcomes.
func (a *Admin) DeleteAcls(ctx context.Context, filters []AclFilter) ([]DeleteAclsFilterResult, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DeleteAcls, maxDeleteAclsVersion)
	if err != nil {
		return nil, err
	}
	filterBodies := make([]any, len(filters))
	for i, f := range filters {
		filterBodies[i] = aclFilterBody(f, version)
	}
	req, err := a.newRequest(protocol.DeleteAcls, version, filterBodies)
	if err != nil {
		return nil, err
	}
	resp, err := a.send(ctx, UnknownNodeID, req)
	if err != nil {
		return nil, err
	}

	results := make([]DeleteAclsFilterResult, 0, len(filters))
	for i, fr := range resp.Array("filter_responses") {
		filterResp := fr.(*protocol.Record)
		result := DeleteAclsFilterResult{
			Filter: filters[i],
			Err:    kerr.ErrorForCode(filterResp.Int16("error_code")),
		}
		for _, m := range filterResp.Array("matching_acls") {
			match := m.(*protocol.Record)
			patternType := PatternLiteral
			if match.Has("resource_pattern_type") {
				patternType = PatternType(match.Int8("resource_pattern_type"))
			}
			result.Matching = append(result.Matching, MatchingAcl{
				Acl: parseAcl(match,
					match.Int8("resource_type"),
					match.Str("resource_name"),
					patternType,
				),
				Err: kerr.ErrorForCode(match.Int16("error_code")),
			})
		}
		results = append(results, result)
	}
	return results, nil
}
