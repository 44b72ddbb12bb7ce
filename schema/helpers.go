package schema

import (
	"sort"
	"strings"
)

// DisplayName resolves the display name for an entity id, falling back to
// the raw id when the lookup has no entry or a blank name.
func DisplayName(id string, names map[string]EntityName) string {
	if n, ok := names[id]; ok {
		if name := strings.TrimSpace(n.Name); name != "" {
			return name
		}
	}
	return id
}

// RegionOf resolves the region for an entity id, falling back to
// FallbackRegion when the lookup has no entry or a blank region.
func RegionOf(id string, names map[string]EntityName) string {
	if n, ok := names[id]; ok {
		if region := strings.TrimSpace(n.Region); region != "" {
			return region
		}
	}
	return FallbackRegion
}

// GroupByRegion buckets entity ids by region for grouped pickers.
// Regions are returned in sorted order with FallbackRegion last, and ids
// within a region are sorted by display name.
func GroupByRegion(ids []string, names map[string]EntityName) ([]string, map[string][]string) {
	groups := make(map[string][]string)
	for _, id := range ids {
		region := RegionOf(id, names)
		groups[region] = append(groups[region], id)
	}

	regions := make([]string, 0, len(groups))
	for region := range groups {
		if region != FallbackRegion {
			regions = append(regions, region)
		}
	}
	sort.Strings(regions)
	if _, ok := groups[FallbackRegion]; ok {
		regions = append(regions, FallbackRegion)
	}

	for _, members := range groups {
		sort.Slice(members, func(i, j int) bool {
			return DisplayName(members[i], names) < DisplayName(members[j], names)
		})
	}
	return regions, groups
}
