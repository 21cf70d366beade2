package search

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSortSizes(t *testing.T) {
	tests := []struct {
		name  string
		sizes []string
		want  []string
	}{
		{"canonical order", []string{"M", "XS", "L"}, []string{"XS", "M", "L"}},
		{"full ladder", []string{"XXL", "L", "XS", "XL", "S", "M"}, []string{"XS", "S", "M", "L", "XL", "XXL"}},
		{"unknown labels sort first", []string{"M", "38", "XS"}, []string{"38", "XS", "M"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortSizes(tt.sizes)
			assert.Equal(t, tt.want, tt.sizes)
		})
	}
}

func TestSortSizes_StableForUnknownLabels(t *testing.T) {
	sizes := []string{"ONE-SIZE", "38", "40"}
	SortSizes(sizes)
	assert.Equal(t, []string{"ONE-SIZE", "38", "40"}, sizes)
}

func TestDetectColors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"synonym maps to base color", "Crimson evening dress", []string{"Red"}},
		{"multiple colors sorted", "Navy jacket with ivory trim", []string{"Blue", "White"}},
		{"grey spelling variant", "Grey wool sweater", []string{"Gray"}},
		{"case insensitive", "EMERALD green top", []string{"Green"}},
		{"no color words", "Plain cotton tee", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectColors(tt.text))
		})
	}
}

func TestProperty_DetectColorsIsSortedAndDeduplicated(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("output sorted with no duplicates", prop.ForAll(
		func(words []string) bool {
			text := ""
			for _, w := range words {
				text += w + " "
			}
			colors := DetectColors(text)
			for i := 1; i < len(colors); i++ {
				if colors[i-1] >= colors[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("red", "navy", "ivory", "plum", "khaki", "slate", "plain", "tee")),
	))

	properties.TestingRun(t)
}
