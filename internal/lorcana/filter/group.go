package filter

import (
	"fmt"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards/consolidate"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
)

// GroupKey enumerates the dimensions a result set can be partitioned by.
type GroupKey string

const (
	GroupBySet       GroupKey = "set"
	GroupByColor     GroupKey = "color"
	GroupByRarity    GroupKey = "rarity"
	GroupByType      GroupKey = "type"
	GroupByFranchise GroupKey = "franchise"
	GroupByCost      GroupKey = "cost"
)

// Bucket is one named partition of a grouped result set.
type Bucket struct {
	Name  string                          `json:"name"`
	Cards []*consolidate.ConsolidatedCard `json:"cards"`
}

// Group partitions an already-sorted card list into named buckets. Bucket
// order follows first-encounter order over the input, not a predefined
// order, so a sorted input yields sorted buckets.
func Group(list []*consolidate.ConsolidatedCard, key GroupKey) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket

	for _, card := range list {
		name := bucketName(card, key)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, Bucket{Name: name})
		}
		buckets[i].Cards = append(buckets[i].Cards, card)
	}
	return buckets
}

func bucketName(card *consolidate.ConsolidatedCard, key GroupKey) string {
	base := card.BaseCard
	switch key {
	case GroupBySet:
		return catalog.SetName(base.SetCode)
	case GroupByColor:
		if base.Ink == "" {
			return "Colorless"
		}
		return base.Ink
	case GroupByRarity:
		return string(base.Rarity)
	case GroupByType:
		return string(base.Type)
	case GroupByFranchise:
		if base.Franchise == "" {
			return "Other"
		}
		return base.Franchise
	case GroupByCost:
		return fmt.Sprintf("Cost %d", base.Cost)
	default:
		return ""
	}
}
