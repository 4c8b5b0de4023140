package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFeeBoundaries(t *testing.T) {
	s := NewShippingService()

	cases := []struct {
		subtotal float64
		fee      float64
		tier     string
	}{
		{0, 0, TierFree},
		{4_999_999, 0, TierFree},
		{5_000_000, 200_000, TierStandard},
		{9_999_999, 200_000, TierStandard},
		{10_000_000, 500_000, TierPremium},
		{19_999_999, 500_000, TierPremium},
		{20_000_000, 800_000, TierExpress},
		{50_000_000, 800_000, TierExpress},
	}

	for _, c := range cases {
		assert.Equal(t, c.fee, s.Fee(c.subtotal), "fee(%v)", c.subtotal)
		assert.Equal(t, c.tier, s.Tier(c.subtotal), "tier(%v)", c.subtotal)
	}
}

func TestShippingInfo(t *testing.T) {
	s := NewShippingService()

	info := s.Info(7_500_000)
	assert.Equal(t, ShippingInfo{
		Subtotal: 7_500_000,
		Fee:      200_000,
		Total:    7_700_000,
		IsFree:   false,
		Tier:     TierStandard,
	}, info)

	free := s.Info(1_000_000)
	assert.True(t, free.IsFree)
	assert.Equal(t, free.Subtotal, free.Total)
}

func TestAmountToFreeShipping(t *testing.T) {
	s := NewShippingService()

	remaining := s.AmountToFreeShipping(3_000_000)
	if assert.NotNil(t, remaining) {
		assert.Equal(t, float64(2_000_000), *remaining)
	}

	assert.Nil(t, s.AmountToFreeShipping(5_000_000))
	assert.Nil(t, s.AmountToFreeShipping(6_000_000))
}
