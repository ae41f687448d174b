package usecase

import (
	"go.uber.org/fx"

	"github.com/marukota/curiomart/internal/adapter/paypay"
	"github.com/marukota/curiomart/internal/config"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewAddressUseCase,
	newCheckoutUseCase,
	NewLotteryUseCase,
	NewAuctionUseCase,
	NewShipmentUseCase,
)

type checkoutParams struct {
	fx.In

	Addresses repository.AddressRepository
	Payments  repository.PaymentRepository
	Gateway   paypay.Client
	Config    *config.Config
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Addresses, p.Payments, p.Gateway, p.Config.Currency, p.Config.GatewayTimeout)
}
