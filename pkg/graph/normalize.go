package graph

import (
	"fmt"
	"strings"

	"github.com/linkscope/backend/internal/util"
	"github.com/linkscope/backend/pkg/common"
)

// EntityLookup resolves oracle-side references (working ids, labels, or
// already-canonical ids) to canonical entity ids. It is built by
// NormalizeEntities and consumed by the reconciliation pass.
type EntityLookup struct {
	byWorkingID map[string]string
	byLabel     map[string]string
	byID        map[string]bool
}

// Resolve maps a proposal endpoint reference to a canonical entity id.
// Working ids take precedence, then literal canonical ids (so re-running
// reconciliation on already-canonical output is a no-op), then labels.
func (l *EntityLookup) Resolve(ref string) (string, bool) {
	if l == nil {
		return "", false
	}
	if id, ok := l.byWorkingID[ref]; ok {
		return id, true
	}
	if l.byID[ref] {
		return ref, true
	}
	if id, ok := l.byLabel[ref]; ok {
		return id, true
	}
	return "", false
}

// Has reports whether the given canonical id exists in the entity set.
func (l *EntityLookup) Has(id string) bool {
	return l != nil && l.byID[id]
}

// NormalizeEntities converts oracle proposals into the canonical entity
// set. Each proposal's label is sanitized into an id base; the first
// occurrence of a base keeps the bare base, later occurrences get a
// "_N" suffix with N counting occurrences from 2. Generated ids are
// registered so a later label that literally sanitizes to an already
// assigned id skips ahead instead of colliding.
//
// Proposals with an empty label are dropped and counted, never fatal.
// Input order is preserved in the returned slice; suffix assignment
// depends on it.
func NormalizeEntities(proposed []ProposedEntity) ([]common.Entity, *EntityLookup, int) {
	entities := make([]common.Entity, 0, len(proposed))
	lookup := &EntityLookup{
		byWorkingID: make(map[string]string, len(proposed)),
		byLabel:     make(map[string]string, len(proposed)),
		byID:        make(map[string]bool, len(proposed)),
	}

	counters := make(map[string]int, len(proposed))
	dropped := 0

	for _, p := range proposed {
		label := p.Label
		if strings.TrimSpace(label) == "" {
			dropped++
			continue
		}

		base := util.SanitizeID(label)
		counters[base]++
		id := base
		if counters[base] > 1 {
			id = fmt.Sprintf("%s_%d", base, counters[base])
		}
		for lookup.byID[id] {
			counters[base]++
			id = fmt.Sprintf("%s_%d", base, counters[base])
		}

		entity := common.Entity{
			ID:         id,
			Label:      label,
			Type:       p.Type,
			Properties: propertiesFromPairs(p.Properties),
		}
		entities = append(entities, entity)

		lookup.byID[id] = true
		if p.WorkingID != "" {
			lookup.byWorkingID[p.WorkingID] = id
		}
		if _, exists := lookup.byLabel[label]; !exists {
			lookup.byLabel[label] = id
		}
	}

	return entities, lookup, dropped
}

func propertiesFromPairs(pairs []ProposedProperty) *common.Properties {
	if len(pairs) == 0 {
		return nil
	}
	props := common.NewProperties()
	for _, pair := range pairs {
		if strings.TrimSpace(pair.Key) == "" {
			continue
		}
		props.Set(pair.Key, pair.Value)
	}
	if props.Len() == 0 {
		return nil
	}
	return props
}
