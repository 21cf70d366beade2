package search

import "go.mongodb.org/mongo-driver/bson"

// Sort keys accepted by the search endpoint.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortRelevance = "relevance"
)

// SortSpec maps a sort key to a store sort document. The default (and the
// explicit "relevance" key) ranks by text score when a free-text term is
// present and by recency otherwise. The second return reports whether the
// text score projection must accompany the query.
func SortSpec(key string, hasTextSearch bool) (bson.D, bool) {
	switch key {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}, false
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}, false
	case SortNewest:
		return bson.D{{Key: "created_at", Value: -1}}, false
	case SortNameAsc:
		return bson.D{{Key: "name", Value: 1}}, false
	case SortNameDesc:
		return bson.D{{Key: "name", Value: -1}}, false
	default:
		if hasTextSearch {
			return bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}, true
		}
		return bson.D{{Key: "created_at", Value: -1}}, false
	}
}

// ScoreProjection is the projection that materializes the text match score
// for relevance sorting.
func ScoreProjection() bson.D {
	return bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}
}
