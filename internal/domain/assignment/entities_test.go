package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeSave_ActiveKeyFollowsStatus(t *testing.T) {
	a := &Assignment{ProductID: 5, Status: StatusActive}
	require.NoError(t, a.BeforeSave(nil))
	require.NotNil(t, a.ActiveProductID)
	assert.Equal(t, uint64(5), *a.ActiveProductID)

	// the key is a copy, not an alias of ProductID
	a.ProductID = 6
	assert.Equal(t, uint64(5), *a.ActiveProductID)

	for _, s := range []Status{StatusReturned, StatusLost} {
		a.Status = s
		require.NoError(t, a.BeforeSave(nil))
		assert.Nil(t, a.ActiveProductID, s)
	}
}

func TestHolderEmpty(t *testing.T) {
	id := uint64(3)
	assert.True(t, Holder{}.Empty())
	assert.False(t, Holder{PersonID: &id}.Empty())
	assert.False(t, Holder{LocationID: &id}.Empty())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusReturned.Valid())
	assert.True(t, StatusLost.Valid())
	assert.False(t, Status("borrowed").Valid())
}
