// Package services holds the business logic. Services depend on repository
// types from app/repositories (narrowed to interfaces where tests need to
// substitute fakes) and return apperr errors for every rule violation.
package services

// Shipping fee thresholds and amounts, in VND.
const (
	shippingStandardFrom = 5_000_000
	shippingPremiumFrom  = 10_000_000
	shippingExpressFrom  = 20_000_000

	feeStandard = 200_000
	feePremium  = 500_000
	feeExpress  = 800_000
)

// Shipping tier names, keyed to the thresholds above.
const (
	TierFree     = "free"
	TierStandard = "standard"
	TierPremium  = "premium"
	TierExpress  = "express"
)

// ShippingInfo is the full quote for a given subtotal.
type ShippingInfo struct {
	Subtotal float64 `json:"subtotal"`
	Fee      float64 `json:"fee"`
	Total    float64 `json:"total"`
	IsFree   bool    `json:"is_free"`
	Tier     string  `json:"tier"`
}

// ShippingService computes shipping fees from the order subtotal. Pure and
// deterministic; boundary values belong to the lower tier's upper bound, so
// exactly 5,000,000 already pays the standard fee.
type ShippingService struct{}

// NewShippingService builds a ShippingService.
func NewShippingService() *ShippingService { return &ShippingService{} }

// Fee returns the shipping fee for subtotal.
func (s *ShippingService) Fee(subtotal float64) float64 {
	switch {
	case subtotal >= shippingExpressFrom:
		return feeExpress
	case subtotal >= shippingPremiumFrom:
		return feePremium
	case subtotal >= shippingStandardFrom:
		return feeStandard
	default:
		return 0
	}
}

// Tier returns the tier name for subtotal.
func (s *ShippingService) Tier(subtotal float64) string {
	switch {
	case subtotal >= shippingExpressFrom:
		return TierExpress
	case subtotal >= shippingPremiumFrom:
		return TierPremium
	case subtotal >= shippingStandardFrom:
		return TierStandard
	default:
		return TierFree
	}
}

// Info returns the full quote for subtotal.
func (s *ShippingService) Info(subtotal float64) ShippingInfo {
	fee := s.Fee(subtotal)
	return ShippingInfo{
		Subtotal: subtotal,
		Fee:      fee,
		Total:    subtotal + fee,
		IsFree:   fee == 0,
		Tier:     s.Tier(subtotal),
	}
}

// AmountToFreeShipping returns how much more the cart can hold before it
// leaves the free tier, or nil once the subtotal is already at or past the
// first paid threshold.
func (s *ShippingService) AmountToFreeShipping(subtotal float64) *float64 {
	if subtotal >= shippingStandardFrom {
		return nil
	}
	remaining := shippingStandardFrom - subtotal
	return &remaining
}
