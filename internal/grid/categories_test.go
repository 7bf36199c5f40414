package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryBitIsUniquePerPosition(t *testing.T) {
	seen := uint64(0)
	for c := Category(0); int(c) < MaxCategories; c++ {
		bit := c.Bit()
		assert.Zero(t, seen&bit, "category %v bit collides with a previous category", c)
		seen |= bit
	}
}

func TestCategoryByNameRoundTrips(t *testing.T) {
	c, ok := CategoryByName("Food and Drink")
	assert.True(t, ok)
	assert.Equal(t, CategoryFoodAndDrink, c)
	assert.Equal(t, "Food and Drink", c.String())
}

func TestCategoryByNameUnknown(t *testing.T) {
	_, ok := CategoryByName("Not A Real Category")
	assert.False(t, ok)
}

func TestMaxCategoriesFitsInBitmap(t *testing.T) {
	assert.LessOrEqual(t, MaxCategories, 64)
}
