package controllers

import (
	"testing"

	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/router"
	"github.com/thanhvudev/furnimart/pkg/testkit"
)

// The quote endpoint only touches the shipping service, so the controller can
// be built without its repositories.
func TestShippingQuoteScenarios(t *testing.T) {
	cc := NewCatalogController(nil, nil, nil, services.NewShippingService())

	r := router.New()
	r.Get("/api/shipping/quote", "shipping.quote", ctx.Wrap(cc.ShippingQuote))

	testkit.RunDir(t, r.Handler(), "testdata")
}
