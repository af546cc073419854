package request

import (
	"testing"

	"asset-custody/internal/domain/product"

	"github.com/stretchr/testify/assert"
)

func TestKindValid(t *testing.T) {
	for k := range kinds {
		assert.True(t, k.Valid(), k)
	}
	assert.Len(t, kinds, 11)
	assert.False(t, Kind("").Valid())
	assert.False(t, Kind("Maintenance").Valid())
}

func TestKindProductEffect(t *testing.T) {
	to, ok := KindMaintenance.ProductEffect()
	assert.True(t, ok)
	assert.Equal(t, product.StatusInMaintenance, to)

	to, ok = KindRepair.ProductEffect()
	assert.True(t, ok)
	assert.Equal(t, product.StatusAwaitingRepair, to)

	for _, k := range []Kind{KindCariAdd, KindCariDelete, KindLocationEdit, KindCategoryDelete} {
		_, ok := k.ProductEffect()
		assert.False(t, ok, k)
	}
}

func TestDecided(t *testing.T) {
	assert.False(t, (&Request{Status: StatusPending}).Decided())
	assert.True(t, (&Request{Status: StatusApproved}).Decided())
	assert.True(t, (&Request{Status: StatusRejected}).Decided())
}
