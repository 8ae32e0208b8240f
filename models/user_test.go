package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   Tier
	}{
		{0, TierBronze},
		{499, TierBronze},
		{500, TierSilver},
		{999, TierSilver},
		{1000, TierGold},
		{5000, TierGold},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []MenuCategory{CategoryDrink, CategoryFood, CategoryDessert, CategoryGoods} {
		assert.True(t, ValidCategory(c), "expected %s to be valid", c)
	}
	assert.False(t, ValidCategory("toys"))
}
