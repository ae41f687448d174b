package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Kept as an
// interface so tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type shipmentRepository struct {
	storage *Storage
}

type lotteryRepository struct {
	storage *Storage
}

type auctionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) Shipments() repository.ShipmentRepository {
	return &shipmentRepository{storage: s}
}

func (s *Storage) Lotteries() repository.LotteryRepository {
	return &lotteryRepository{storage: s}
}

func (s *Storage) Auctions() repository.AuctionRepository {
	return &auctionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            country TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            street TEXT NOT NULL,
            recipient_name TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS paypay_payments (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            merchant_payment_id TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shipments (
            id SERIAL PRIMARY KEY,
            payment_id BIGINT UNIQUE NOT NULL REFERENCES paypay_payments(id),
            delivery_address TEXT NOT NULL,
            shipped_at TIMESTAMPTZ,
            delivered_at TIMESTAMPTZ,
            cancelled_at TIMESTAMPTZ,
            payment_failed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS payment_products (
            id SERIAL PRIMARY KEY,
            payment_id BIGINT NOT NULL REFERENCES paypay_payments(id),
            product_id BIGINT NOT NULL,
            quantity INT NOT NULL,
            unit_price BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS lottery_events (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            status TEXT NOT NULL,
            start_at TIMESTAMPTZ NOT NULL,
            end_at TIMESTAMPTZ NOT NULL,
            result_at TIMESTAMPTZ NOT NULL,
            payment_deadline_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS lottery_products (
            id SERIAL PRIMARY KEY,
            lottery_event_id BIGINT NOT NULL REFERENCES lottery_events(id),
            product_id BIGINT NOT NULL,
            quantity_available INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS lottery_entries (
            id SERIAL PRIMARY KEY,
            lottery_event_id BIGINT NOT NULL REFERENCES lottery_events(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            lottery_product_id BIGINT NOT NULL REFERENCES lottery_products(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, lottery_product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS auctions (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL,
            minimum_bid BIGINT NOT NULL,
            status TEXT NOT NULL,
            is_sealed BOOLEAN NOT NULL DEFAULT TRUE,
            allow_bid_retraction BOOLEAN NOT NULL DEFAULT FALSE,
            require_payment_info BOOLEAN NOT NULL DEFAULT FALSE,
            end_at TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS sealed_bids (
            id SERIAL PRIMARY KEY,
            auction_id BIGINT NOT NULL REFERENCES auctions(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            amount BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user ON paypay_payments(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_products_payment ON payment_products(payment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user ON lottery_entries(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bids_auction ON sealed_bids(auction_id, amount DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- AddressRepository implementation ---

func (r *addressRepository) Upsert(ctx context.Context, address model.Address) (*model.Address, error) {
	const query = `INSERT INTO addresses (user_id, country, postal_code, street, recipient_name)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (user_id) DO UPDATE
                   SET country=EXCLUDED.country,
                       postal_code=EXCLUDED.postal_code,
                       street=EXCLUDED.street,
                       recipient_name=EXCLUDED.recipient_name,
                       updated_at=NOW()
                   RETURNING updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		address.UserID, address.Country, address.PostalCode, address.Street, address.RecipientName,
	).Scan(&address.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) GetByUserID(ctx context.Context, userID int64) (*model.Address, error) {
	const query = `SELECT user_id, country, postal_code, street, recipient_name, updated_at
                   FROM addresses WHERE user_id=$1`
	var a model.Address
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&a.UserID, &a.Country, &a.PostalCode, &a.Street, &a.RecipientName, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) CreateCheckout(ctx context.Context, userID int64, merchantPaymentID, deliveryAddress string, items []model.OrderItem, pay repository.PayFunc) (*model.Payment, string, error) {
	var payment model.Payment
	var payableURL string

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertPayment = `INSERT INTO paypay_payments (user_id, merchant_payment_id)
                               VALUES ($1, $2) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertPayment, userID, merchantPaymentID).Scan(&payment.ID, &payment.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrDuplicatePayment
			}
			return err
		}
		payment.UserID = userID
		payment.MerchantPaymentID = merchantPaymentID

		const insertShipment = `INSERT INTO shipments (payment_id, delivery_address) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insertShipment, payment.ID, deliveryAddress); err != nil {
			return err
		}

		const insertItem = `INSERT INTO payment_products (payment_id, product_id, quantity, unit_price)
                            VALUES ($1, $2, $3, $4)`
		for _, item := range items {
			if _, err := tx.Exec(ctx, insertItem, payment.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}

		// The gateway call runs inside the transaction: a declined or
		// unreachable gateway must leave no orphaned payment rows behind.
		url, err := pay(ctx, model.OrderTotal(items))
		if err != nil {
			return err
		}
		payableURL = url
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return &payment, payableURL, nil
}

func (r *paymentRepository) GetByMerchantID(ctx context.Context, merchantPaymentID string) (*model.Payment, error) {
	const query = `SELECT id, user_id, merchant_payment_id, created_at
                   FROM paypay_payments WHERE merchant_payment_id=$1`
	var p model.Payment
	err := r.storage.pool.QueryRow(ctx, query, merchantPaymentID).Scan(&p.ID, &p.UserID, &p.MerchantPaymentID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	const query = `SELECT id, user_id, merchant_payment_id, created_at
                   FROM paypay_payments WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.MerchantPaymentID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) ListLineItems(ctx context.Context, paymentID int64) ([]model.PurchasedLineItem, error) {
	const query = `SELECT id, payment_id, product_id, quantity, unit_price
                   FROM payment_products WHERE payment_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PurchasedLineItem
	for rows.Next() {
		var item model.PurchasedLineItem
		if err := rows.Scan(&item.ID, &item.PaymentID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) ListUnsettled(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	const query = `SELECT p.id, p.user_id, p.merchant_payment_id, p.created_at
                   FROM paypay_payments p
                   JOIN shipments s ON s.payment_id = p.id
                   WHERE s.shipped_at IS NULL
                     AND s.delivered_at IS NULL
                     AND s.cancelled_at IS NULL
                     AND s.payment_failed_at IS NULL
                     AND p.created_at < $1
                   ORDER BY p.created_at
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.MerchantPaymentID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ShipmentRepository implementation ---

const shipmentColumns = `id, payment_id, delivery_address, shipped_at, delivered_at, cancelled_at, payment_failed_at`

func scanShipment(row pgx.Row) (*model.Shipment, error) {
	var sh model.Shipment
	err := row.Scan(&sh.ID, &sh.PaymentID, &sh.DeliveryAddress, &sh.ShippedAt, &sh.DeliveredAt, &sh.CancelledAt, &sh.PaymentFailedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}

func (r *shipmentRepository) GetByID(ctx context.Context, id int64) (*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1`
	return scanShipment(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *shipmentRepository) GetByPaymentID(ctx context.Context, paymentID int64) (*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE payment_id=$1`
	return scanShipment(r.storage.pool.QueryRow(ctx, query, paymentID))
}

func (r *shipmentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Shipment, error) {
	const query = `SELECT s.id, s.payment_id, s.delivery_address, s.shipped_at, s.delivered_at, s.cancelled_at, s.payment_failed_at
                   FROM shipments s
                   JOIN paypay_payments p ON p.id = s.payment_id
                   WHERE p.user_id=$1 ORDER BY s.id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Shipment
	for rows.Next() {
		var sh model.Shipment
		if err := rows.Scan(&sh.ID, &sh.PaymentID, &sh.DeliveryAddress, &sh.ShippedAt, &sh.DeliveredAt, &sh.CancelledAt, &sh.PaymentFailedAt); err != nil {
			return nil, err
		}
		result = append(result, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *shipmentRepository) ApplyTransition(ctx context.Context, shipmentID int64, target model.ShipmentStatus) (*model.Shipment, error) {
	column := model.MilestoneColumn(target)
	if column == "" {
		return nil, domainErrors.ErrInvalidTransition
	}

	var updated *model.Shipment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1 FOR UPDATE`
		current, err := scanShipment(tx.QueryRow(ctx, lockQuery, shipmentID))
		if err != nil {
			return err
		}
		if !current.CanTransition(target) {
			return domainErrors.ErrInvalidTransition
		}

		// column comes from a fixed enum mapping, never from caller input.
		updateQuery := fmt.Sprintf(`UPDATE shipments SET %s=NOW() WHERE id=$1 RETURNING `+shipmentColumns, column)
		updated, err = scanShipment(tx.QueryRow(ctx, updateQuery, shipmentID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// --- LotteryRepository implementation ---

func (r *lotteryRepository) GetEvent(ctx context.Context, id int64) (*model.LotteryEvent, error) {
	const query = `SELECT id, title, status, start_at, end_at, result_at, payment_deadline_at
                   FROM lottery_events WHERE id=$1`
	var e model.LotteryEvent
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Title, &e.Status, &e.StartAt, &e.EndAt, &e.ResultAt, &e.PaymentDeadlineAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *lotteryRepository) ListOpenEvents(ctx context.Context) ([]model.LotteryEvent, error) {
	const query = `SELECT id, title, status, start_at, end_at, result_at, payment_deadline_at
                   FROM lottery_events
                   WHERE status=$1 AND start_at <= NOW() AND end_at > NOW()
                   ORDER BY end_at`
	rows, err := r.storage.pool.Query(ctx, query, model.LotteryEventActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LotteryEvent
	for rows.Next() {
		var e model.LotteryEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Status, &e.StartAt, &e.EndAt, &e.ResultAt, &e.PaymentDeadlineAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *lotteryRepository) GetProduct(ctx context.Context, id int64) (*model.LotteryProduct, error) {
	const query = `SELECT id, lottery_event_id, product_id, quantity_available
                   FROM lottery_products WHERE id=$1`
	var p model.LotteryProduct
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.LotteryEventID, &p.ProductID, &p.QuantityAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *lotteryRepository) CreateEntry(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error) {
	var entry model.LotteryEntry

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Lock the allocation row so concurrent entries serialize on the
		// capacity check.
		const lockQuery = `SELECT quantity_available FROM lottery_products
                           WHERE id=$1 AND lottery_event_id=$2 FOR UPDATE`
		var capacity int32
		if err := tx.QueryRow(ctx, lockQuery, productID, eventID).Scan(&capacity); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const countQuery = `SELECT COUNT(*) FROM lottery_entries WHERE lottery_product_id=$1`
		var taken int64
		if err := tx.QueryRow(ctx, countQuery, productID).Scan(&taken); err != nil {
			return err
		}
		if taken >= int64(capacity) {
			return domainErrors.ErrAllocationExhausted
		}

		const insertQuery = `INSERT INTO lottery_entries (lottery_event_id, user_id, lottery_product_id)
                             VALUES ($1, $2, $3) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertQuery, eventID, userID, productID).Scan(&entry.ID, &entry.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrDuplicateEntry
			}
			return err
		}
		entry.LotteryEventID = eventID
		entry.UserID = userID
		entry.LotteryProductID = productID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *lotteryRepository) ListEntriesByUser(ctx context.Context, userID int64) ([]model.LotteryEntry, error) {
	const query = `SELECT id, lottery_event_id, user_id, lottery_product_id, created_at
                   FROM lottery_entries WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LotteryEntry
	for rows.Next() {
		var e model.LotteryEntry
		if err := rows.Scan(&e.ID, &e.LotteryEventID, &e.UserID, &e.LotteryProductID, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AuctionRepository implementation ---

func (r *auctionRepository) GetAuction(ctx context.Context, id int64) (*model.Auction, error) {
	const query = `SELECT id, product_id, minimum_bid, status, is_sealed, allow_bid_retraction, require_payment_info, end_at, created_at
                   FROM auctions WHERE id=$1`
	var a model.Auction
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.ProductID, &a.MinimumBid, &a.Status, &a.IsSealed, &a.AllowBidRetraction, &a.RequirePaymentInfo, &a.EndAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *auctionRepository) CreateBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error) {
	const query = `INSERT INTO sealed_bids (auction_id, user_id, amount)
                   VALUES ($1, $2, $3) RETURNING id, created_at`
	bid := model.SealedBid{AuctionID: auctionID, UserID: userID, Amount: amount}
	if err := r.storage.pool.QueryRow(ctx, query, auctionID, userID, amount).Scan(&bid.ID, &bid.CreatedAt); err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *auctionRepository) ListBidsByAuction(ctx context.Context, auctionID int64) ([]model.SealedBid, error) {
	const query = `SELECT id, auction_id, user_id, amount, created_at
                   FROM sealed_bids WHERE auction_id=$1 ORDER BY amount DESC, created_at`
	return r.listBids(ctx, query, auctionID)
}

func (r *auctionRepository) ListBidsByAuctionUser(ctx context.Context, auctionID, userID int64) ([]model.SealedBid, error) {
	const query = `SELECT id, auction_id, user_id, amount, created_at
                   FROM sealed_bids WHERE auction_id=$1 AND user_id=$2 ORDER BY created_at`
	return r.listBids(ctx, query, auctionID, userID)
}

func (r *auctionRepository) listBids(ctx context.Context, query string, args ...any) ([]model.SealedBid, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SealedBid
	for rows.Next() {
		var b model.SealedBid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *auctionRepository) DeleteBidsByUser(ctx context.Context, auctionID, userID int64) (int64, error) {
	const query = `DELETE FROM sealed_bids WHERE auction_id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, auctionID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
