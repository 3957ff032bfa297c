package catalog_test

import (
	"testing"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func Test_DeriveKey_NormalizesPlayerAndDate(t *testing.T) {
	tests := []struct {
		name     string
		player   string
		date     string
		expected string
	}{
		{"spaces replaced with underscores", "Dom Stagliano", "2025-07-18", "Dom_Stagliano_2025-07-18.mp4"},
		{"slashes replaced with hyphens", "A", "2025/01/01", "A_2025-01-01.mp4"},
		{"both normalizations together", "Michael Kelly", "2025/07/26", "Michael_Kelly_2025-07-26.mp4"},
		{"missing player uses sentinel", "", "2025/01/01", "unknown_2025-01-01.mp4"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, catalog.DeriveKey(test.player, test.date))
		})
	}
}

// Key derivation must be stable across calls, since dedup against the
// object store relies on re-deriving the same key on every run.
func Test_DeriveKey_Idempotent(t *testing.T) {
	first := catalog.DeriveKey("Dom Stagliano", "2025/07/18")
	second := catalog.DeriveKey("Dom Stagliano", "2025/07/18")
	assert.Equal(t, first, second)
}

func Test_NewEntry_DateAndFilenameAgree(t *testing.T) {
	entry := catalog.NewEntry("A", "2025/01/01")

	assert.Equal(t, "A", entry.Player)
	assert.Equal(t, "2025-01-01", entry.Date)
	assert.Equal(t, "A_2025-01-01.mp4", entry.Filename)
}

func Test_Filter_CaseInsensitiveExactMatch(t *testing.T) {
	entries := []catalog.Entry{
		catalog.NewEntry("Dom Stagliano", "2025/07/18"),
		catalog.NewEntry("Michael Kelly", "2025/07/26"),
		catalog.NewEntry("Michael Kelly", "2025/07/27"),
	}

	filtered := catalog.Filter(entries, "michael kelly")

	assert.Len(t, filtered, 2)
	for _, entry := range filtered {
		assert.Equal(t, "Michael Kelly", entry.Player)
	}
}

func Test_Filter_EmptyFilterIsIdentity(t *testing.T) {
	entries := []catalog.Entry{
		catalog.NewEntry("Dom Stagliano", "2025/07/18"),
		catalog.NewEntry("Michael Kelly", "2025/07/26"),
	}

	assert.Equal(t, entries, catalog.Filter(entries, ""))
}

func Test_Filter_NoPartialMatches(t *testing.T) {
	entries := []catalog.Entry{catalog.NewEntry("Michael Kelly", "2025/07/26")}

	assert.Empty(t, catalog.Filter(entries, "michael"))
	assert.Empty(t, catalog.Filter(entries, "michael kelly jr"))
}

func Test_Filter_PreservesOrder(t *testing.T) {
	entries := []catalog.Entry{
		catalog.NewEntry("A", "2025/01/03"),
		catalog.NewEntry("B", "2025/01/02"),
		catalog.NewEntry("A", "2025/01/01"),
	}

	filtered := catalog.Filter(entries, "a")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "2025-01-03", filtered[0].Date)
	assert.Equal(t, "2025-01-01", filtered[1].Date)
}
