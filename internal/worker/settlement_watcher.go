package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/marukota/curiomart/internal/adapter/paypay"
	"github.com/marukota/curiomart/internal/domain/model"
)

// SettlementFacade exposes the subset of application functionality required by the watcher.
type SettlementFacade interface {
	UnsettledPayments(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error)
	GatewayPaymentDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error)
	MarkPaymentFailed(ctx context.Context, paymentID int64) (*model.Shipment, error)
}

// SettlementWatcher polls the payment gateway for unsettled payments and
// marks shipments payment_failed when the gateway reports the payment dead.
type SettlementWatcher struct {
	facade       SettlementFacade
	pollInterval time.Duration
	grace        time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSettlementWatcher constructs the settlement watcher worker pool.
func NewSettlementWatcher(facade SettlementFacade, pollInterval, grace time.Duration, batchSize, workers int, logger *slog.Logger) *SettlementWatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SettlementWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		grace:        grace,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (w *SettlementWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (w *SettlementWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *SettlementWatcher) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

func (w *SettlementWatcher) fetchAndDispatch(ctx context.Context) {
	payments, err := w.facade.UnsettledPayments(ctx, w.grace, w.batchSize)
	if err != nil {
		w.logger.Error("fetch unsettled payments failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- payment:
		}
	}
}

func (w *SettlementWatcher) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handlePayment(ctx, payment)
		}
	}
}

func (w *SettlementWatcher) handlePayment(ctx context.Context, payment model.Payment) {
	details, err := w.facade.GatewayPaymentDetails(ctx, payment.MerchantPaymentID)
	if err != nil {
		switch e := err.(type) {
		case paypay.TooManyRequestsError:
			w.logger.Warn("gateway rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, paypay.ErrPaymentNotFound) {
				// the QR code was never scanned; leave it to age out
				return
			}
			w.logger.Error("gateway status fetch failed",
				slog.String("merchant_payment_id", payment.MerchantPaymentID),
				slog.String("error", err.Error()))
		}
		return
	}

	if !details.Status.SettledUnpaid() {
		return
	}

	if _, err := w.facade.MarkPaymentFailed(ctx, payment.ID); err != nil {
		w.logger.Error("mark payment failed",
			slog.String("merchant_payment_id", payment.MerchantPaymentID),
			slog.String("error", err.Error()))
	}
}
