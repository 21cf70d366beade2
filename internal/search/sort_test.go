package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSortSpec(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		hasText   bool
		wantField string
		wantOrder int
		wantScore bool
	}{
		{"price ascending", SortPriceAsc, false, "price", 1, false},
		{"price descending", SortPriceDesc, false, "price", -1, false},
		{"newest", SortNewest, false, "created_at", -1, false},
		{"name ascending", SortNameAsc, false, "name", 1, false},
		{"name descending", SortNameDesc, false, "name", -1, false},
		{"default without text falls back to recency", "", false, "created_at", -1, false},
		{"unknown key with text ranks by score", "bogus", true, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, needsScore := SortSpec(tt.key, tt.hasText)
			require.Len(t, spec, 1)
			assert.Equal(t, tt.wantScore, needsScore)

			if tt.wantScore {
				assert.Equal(t, "score", spec[0].Key)
				return
			}
			assert.Equal(t, tt.wantField, spec[0].Key)
			assert.Equal(t, tt.wantOrder, spec[0].Value)
		})
	}
}

func TestSortSpec_RelevanceWithTextUsesScoreMeta(t *testing.T) {
	spec, needsScore := SortSpec(SortRelevance, true)

	require.True(t, needsScore)
	require.Len(t, spec, 1)
	assert.Equal(t, "score", spec[0].Key)
	assert.Equal(t, bson.D{{Key: "$meta", Value: "textScore"}}, spec[0].Value)
}

func TestSortSpec_RelevanceWithoutTextUsesRecency(t *testing.T) {
	spec, needsScore := SortSpec(SortRelevance, false)

	require.False(t, needsScore)
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, spec)
}

func TestScoreProjection(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}, ScoreProjection())
}
