package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/marukota/curiomart/internal/config"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.AddressRepository { return s.Addresses() },
		func(s *Storage) repository.PaymentRepository { return s.Payments() },
		func(s *Storage) repository.ShipmentRepository { return s.Shipments() },
		func(s *Storage) repository.LotteryRepository { return s.Lotteries() },
		func(s *Storage) repository.AuctionRepository { return s.Auctions() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
