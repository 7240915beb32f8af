package admin

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

// QuotaMatchType selects how a filter component matches quota entities.
type QuotaMatchType int8

const (
	QuotaMatchExact   QuotaMatchType = 0
	QuotaMatchDefault QuotaMatchType = 1
	QuotaMatchAny     QuotaMatchType = 2
)

// QuotaFilterComponent narrows a quota query to entities of one type. Match
// is only consulted for exact matching; leave it nil otherwise.
type QuotaFilterComponent struct {
	EntityType string
	MatchType  QuotaMatchType
	Match      *string
}

// QuotaEntity identifies the owner of a quota, e.g. a user, a client id, or
// the default for either. A nil name denotes the default entity.
type QuotaEntity struct {
	EntityType string
	EntityName *string
}

// QuotaEntry is one matched entity with its configured quota values.
type QuotaEntry struct {
	Entity []QuotaEntity
	Values map[string]float64
}

// DescribeClientQuotas returns the quota configurations matching the given
// filter components. strict excludes entities that only match implicitly
// through defaults.
func (a *Admin) DescribeClientQuotas(ctx context.Context, components []QuotaFilterComponent, strict bool) ([]QuotaEntry, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	version, err := a.client.APIVersion(protocol.DescribeClientQuotas, maxDescribeClientQuotasVersion)
	if err != nil {
		return nil, err
	}
	bodies := make([]any, len(components))
	for i, c := range components {
		bodies[i] = []any{c.EntityType, int8(c.MatchType), c.Match}
	}
	req, err := a.newRequest(protocol.DescribeClientQuotas, version, bodies, strict)
	if err != nil {
		return nil, err
	}
	resp, err := a.send(ctx, UnknownNodeID, req)
	if err != nil {
		return nil, err
	}
	if kafkaErr := kerr.ErrorForCode(resp.Int16("error_code")); kafkaErr != nil {
		return nil, errors.Wrapf(kafkaErr, "describing client quotas failed with response %s", resp)
	}

	var entries []QuotaEntry
	for _, e := range resp.Array("entries") {
		entry := e.(*protocol.Record)
		out := QuotaEntry{Values: map[string]float64{}}
		for _, en := range entry.Array("entity") {
			ent := en.(*protocol.Record)
			out.Entity = append(out.Entity, QuotaEntity{
				EntityType: ent.Str("entity_type"),
				EntityName: ent.StrPtr("entity_name"),
			})
		}
		for _, v := range entry.Array("values") {
			val := v.(*protocol.Record)
			out.Values[val.Str("name")] = val.Float64("value")
		}
		entries = append(entries, out)
	}
	return entries, nil
}
