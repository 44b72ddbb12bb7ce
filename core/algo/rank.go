package algo

import (
	"maps"
	"sort"

	"github.com/locusproject/locus/schema"
)

// AssembleRanking sorts score rows by score in descending order, breaking
// ties by entity id ascending, and resolves display names and regions from
// the lookup. Entities without a lookup entry keep their raw id as the
// name. The input slice is left untouched.
func AssembleRanking(rows []schema.ScoreRow, names map[string]schema.EntityName) []schema.RankedEntity {
	ranked := make([]schema.RankedEntity, len(rows))
	for i, row := range rows {
		ranked[i] = schema.RankedEntity{
			ID:     row.ID,
			Name:   schema.DisplayName(row.ID, names),
			Region: schema.RegionOf(row.ID, names),
			Score:  row.Score,
			Parts:  maps.Clone(row.Parts),
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// TopN returns the first 'limit' entities of a ranking. If limit is zero,
// negative, or greater than the ranking length, all entities are returned.
func TopN(ranked []schema.RankedEntity, limit int) []schema.RankedEntity {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
