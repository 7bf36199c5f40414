package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateRingSize(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		cells, err := EnumerateRing(48.8566, 2.3522, n)
		require.NoError(t, err)
		assert.Equal(t, (2*n+1)*(2*n+1), len(cells))
	}
}

func TestEnumerateRingCenterCellFirst(t *testing.T) {
	cells, err := EnumerateRing(48.8566, 2.3522, 2)
	require.NoError(t, err)

	center, err := Resolve(48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, center.AreaX, cells[0].AreaX)
	assert.Equal(t, center.AreaY, cells[0].AreaY)
	assert.Equal(t, center.SubzoneLon, cells[0].SubzoneLon)
	assert.Equal(t, center.SubzoneLat, cells[0].SubzoneLat)
}

func TestEnumerateRingPropagatesDomainError(t *testing.T) {
	_, err := EnumerateRing(85.0, 0.0, 1)
	assert.Error(t, err)
}
