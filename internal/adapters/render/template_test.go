package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func TestBuildReportHTML(t *testing.T) {
	listing := domain.ReportListing{
		StreetAddress: "123 Main St",
		City:          "Austin",
		State:         "TX",
		Zipcode:       "78701",
		Price:         450000,
		Bedrooms:      3,
		Bathrooms:     2,
		LivingArea:    1850,
	}
	generatedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("fills the printable view", func(t *testing.T) {
		html, err := BuildReportHTML(listing, "<h2>Overview</h2><p>Solid buy.</p>", generatedAt)
		require.NoError(t, err)

		assert.Contains(t, html, "123 Main St")
		assert.Contains(t, html, "Austin, TX 78701")
		assert.Contains(t, html, "$450,000")
		assert.Contains(t, html, "1,850")
		assert.Contains(t, html, "3/14/2026")
		assert.Contains(t, html, "<h2>Overview</h2>")
	})

	t.Run("narrative is sanitized before embedding", func(t *testing.T) {
		html, err := BuildReportHTML(listing, `<p>ok</p><script>alert(1)</script>`, generatedAt)
		require.NoError(t, err)
		assert.Contains(t, html, "<p>ok</p>")
		assert.NotContains(t, html, "alert(1)")
	})

	t.Run("missing optional fields degrade to placeholders", func(t *testing.T) {
		html, err := BuildReportHTML(domain.ReportListing{City: "Austin", State: "TX"}, "text", generatedAt)
		require.NoError(t, err)
		assert.Contains(t, html, "N/A")
		assert.Contains(t, html, "Property Analysis")
	})
}
