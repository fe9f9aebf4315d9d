package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplicitLimit(t *testing.T) {
	t.Run("extracts count from show me phrasing", func(t *testing.T) {
		limit, ok := ExplicitLimit("show me 5 houses in Austin")
		assert.True(t, ok)
		assert.Equal(t, 5, limit)
	})

	t.Run("extracts count from find phrasing", func(t *testing.T) {
		limit, ok := ExplicitLimit("find 3 properties near downtown Dallas")
		assert.True(t, ok)
		assert.Equal(t, 3, limit)
	})

	t.Run("case insensitive", func(t *testing.T) {
		limit, ok := ExplicitLimit("Show Me 2 Homes in Miami")
		assert.True(t, ok)
		assert.Equal(t, 2, limit)
	})

	t.Run("no count named", func(t *testing.T) {
		_, ok := ExplicitLimit("what is the housing market like in Texas?")
		assert.False(t, ok)
	})

	t.Run("number without real estate noun is not a count", func(t *testing.T) {
		_, ok := ExplicitLimit("show me 5 restaurants in Austin")
		assert.False(t, ok)
	})
}

func TestLimitOrDefault(t *testing.T) {
	assert.Equal(t, 2, LimitOrDefault("show me 2 houses", 15))
	assert.Equal(t, 15, LimitOrDefault("houses in Austin", 15))
}

func TestTrailingTitle(t *testing.T) {
	t.Run("takes the last exclamation fragment", func(t *testing.T) {
		text := "Here are the results. Great market! Would you like to see price trends for this area?!!!"
		assert.Equal(t, "Would you like to see price trends for this area?", TrailingTitle(text))
	})

	t.Run("keeps the trailing question mark", func(t *testing.T) {
		assert.Equal(t, "Shall we compare rents?", TrailingTitle("Done! Shall we compare rents?!"))
	})

	t.Run("no exclamation means no title", func(t *testing.T) {
		assert.Equal(t, "", TrailingTitle("A plain analysis without a follow-up."))
	})

	t.Run("strips punctuation around the title", func(t *testing.T) {
		assert.Equal(t, "Want more", TrailingTitle("Summary done! ...Want more!!!"))
	})
}

func TestStripCodeFences(t *testing.T) {
	t.Run("removes json fences", func(t *testing.T) {
		assert.Equal(t, `{"state":"TX"}`, StripCodeFences("```json\n{\"state\":\"TX\"}\n```"))
	})

	t.Run("plain text untouched", func(t *testing.T) {
		assert.Equal(t, `{"state":"TX"}`, StripCodeFences(`{"state":"TX"}`))
	})
}
