package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimbot/internal/claim"
	"claimbot/pkg/platform/sentinel"
)

func TestLookup(t *testing.T) {
	r := NewRegistry()

	for _, m := range r.Marketplaces() {
		e, err := r.Lookup(m)
		require.NoError(t, err, m)
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.TaxID)
		assert.NotEmpty(t, e.RegistrationNumber)
		assert.NotEmpty(t, e.Address)
	}

	_, err := r.Lookup(claim.Marketplace("AliExpress"))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestAddressee(t *testing.T) {
	r := NewRegistry()

	e, err := r.Lookup(claim.MarketplaceWB)
	require.NoError(t, err)

	got := e.Addressee()
	assert.Contains(t, got, "ООО «Вайлдберриз»")
	assert.Contains(t, got, "ИНН 7733545428")
	assert.Contains(t, got, "ОГРН 1067746062411")
	assert.Contains(t, got, "Коледино")
}
