package vaultprefs

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// usageCountRecord is one element of the persisted usage-count array:
// {"uuid": "<uuid>", "count": <int>}. Both fields are required on decode.
type usageCountRecord struct {
	UUID  *uuid.UUID `json:"uuid"`
	Count *int       `json:"count"`
}

// UsageCounts decodes the per-entry usage counts. A missing or malformed
// stored value yields an empty map; it is not repaired.
func (p *Preferences) UsageCounts() map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)

	raw := usageCount.get(p)
	if strings.TrimSpace(raw) == "" {
		return counts
	}

	var records []usageCountRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		p.config.logger.Debug("Ignoring malformed usage counts", "error", err)
		return counts
	}
	for _, r := range records {
		if r.UUID == nil || r.Count == nil {
			p.config.logger.Debug("Ignoring usage counts with incomplete record")
			return make(map[uuid.UUID]int)
		}
		counts[*r.UUID] = *r.Count
	}
	return counts
}

// UsageCount returns the count for id, or 0 if it has none.
func (p *Preferences) UsageCount(id uuid.UUID) int {
	return p.UsageCounts()[id]
}

// SetUsageCounts replaces all usage counts. An entry that fails to encode is
// skipped; the others are still written.
func (p *Preferences) SetUsageCounts(counts map[uuid.UUID]int) {
	ids := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	records := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		count := counts[id]
		data, err := json.Marshal(usageCountRecord{UUID: &id, Count: &count})
		if err != nil {
			p.config.logger.Warn("Skipping usage count that failed to encode", "uuid", id.String(), "error", err)
			continue
		}
		records = append(records, data)
	}

	data, err := json.Marshal(records)
	if err != nil {
		p.config.logger.Error("Failed to encode usage counts", "error", err)
		return
	}
	usageCount.set(p, string(data))
}

// IncrementUsageCount adds one to the count for id.
// Like every usage-count mutation this is a read-modify-write and not atomic.
func (p *Preferences) IncrementUsageCount(id uuid.UUID) {
	counts := p.UsageCounts()
	counts[id]++
	p.SetUsageCounts(counts)
}

// ResetUsageCount sets the count for id to 0, keeping the other counts.
// Not atomic with respect to concurrent writers.
func (p *Preferences) ResetUsageCount(id uuid.UUID) {
	counts := p.UsageCounts()
	counts[id] = 0
	p.SetUsageCounts(counts)
}

// ClearUsageCount removes all usage counts.
func (p *Preferences) ClearUsageCount() {
	p.remove(usageCount.key)
}

// Favorites returns the favorite entry ids in no particular order. Stored
// values that are not UUIDs are skipped.
func (p *Preferences) Favorites() []uuid.UUID {
	stored := favorites.get(p)
	out := make([]uuid.UUID, 0, len(stored))
	for _, s := range stored {
		id, err := uuid.Parse(s)
		if err != nil {
			p.config.logger.Debug("Ignoring malformed favorite", "value", s, "error", err)
			continue
		}
		out = append(out, id)
	}
	return out
}

// SetFavorites stores ids as a set; duplicates collapse.
func (p *Preferences) SetFavorites(ids []uuid.UUID) {
	seen := make(map[string]struct{}, len(ids))
	set := make([]string, 0, len(ids))
	for _, id := range ids {
		s := id.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		set = append(set, s)
	}
	sort.Strings(set)
	favorites.set(p, set)
}

// GroupFilter returns the selected group filter. A nil element stands for
// "entries without a group". Missing, blank or malformed values yield an
// empty, non-nil slice.
func (p *Preferences) GroupFilter() []*string {
	filter := []*string{}

	raw := groupFilter.get(p)
	if strings.TrimSpace(raw) == "" {
		return filter
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		p.config.logger.Debug("Ignoring malformed group filter", "error", err)
		return filter
	}

	for _, item := range items {
		if string(bytes.TrimSpace(item)) == "null" {
			filter = append(filter, nil)
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			// Non-string scalars keep their JSON text.
			s = string(bytes.TrimSpace(item))
		}
		filter = append(filter, &s)
	}
	return filter
}

// SetGroupFilter stores filter positionally; nil elements are kept as JSON null.
func (p *Preferences) SetGroupFilter(filter []*string) {
	if filter == nil {
		filter = []*string{}
	}

	data, err := json.Marshal(filter)
	if err != nil {
		p.config.logger.Error("Failed to encode group filter", "error", err)
		return
	}
	groupFilter.set(p, string(data))
}
