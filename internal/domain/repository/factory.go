package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Addresses() AddressRepository
	Payments() PaymentRepository
	Shipments() ShipmentRepository
	Lotteries() LotteryRepository
	Auctions() AuctionRepository
}
