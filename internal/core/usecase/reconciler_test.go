package usecase

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func numberedListings(n int) []domain.ListingRecord {
	listings := make([]domain.ListingRecord, n)
	for i := range listings {
		listings[i] = domain.ListingRecord{
			StreetAddress: strconv.Itoa(i+1) + " Elm St",
			City:          "Austin",
			State:         "TX",
			Zipcode:       "78701",
			ZPID:          strconv.Itoa(1000 + i),
		}
	}
	return listings
}

func TestReconcileResults(t *testing.T) {
	t.Run("provider order preserved", func(t *testing.T) {
		results := ReconcileResults(numberedListings(5), 3)
		assert.Len(t, results, 3)
		assert.Equal(t, "1 Elm St", results[0].StreetAddress)
		assert.Equal(t, "2 Elm St", results[1].StreetAddress)
		assert.Equal(t, "3 Elm St", results[2].StreetAddress)
	})

	t.Run("never pads to the limit", func(t *testing.T) {
		results := ReconcileResults(numberedListings(5), 15)
		assert.Len(t, results, 5)
	})

	t.Run("negative limit yields empty", func(t *testing.T) {
		assert.Empty(t, ReconcileResults(numberedListings(5), -1))
	})

	t.Run("empty input yields empty", func(t *testing.T) {
		assert.Empty(t, ReconcileResults(nil, 15))
	})

	t.Run("projection carries the canonical url", func(t *testing.T) {
		results := ReconcileResults(numberedListings(1), 1)
		assert.Contains(t, results[0].ZillowURL, "1000_zpid")
	})
}
