package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	testhelpers "github.com/marukota/curiomart/internal/test"
)

func activeEvent(id int64) model.LotteryEvent {
	now := time.Now()
	return model.LotteryEvent{
		ID:      id,
		Title:   "summer drop",
		Status:  model.LotteryEventActive,
		StartAt: now.Add(-time.Hour),
		EndAt:   now.Add(time.Hour),
	}
}

func TestLotteryEnterClosedEvent(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		event model.LotteryEvent
	}{
		{"draft", model.LotteryEvent{ID: 1, Status: model.LotteryEventDraft, StartAt: now.Add(-time.Hour), EndAt: now.Add(time.Hour)}},
		{"not started", model.LotteryEvent{ID: 1, Status: model.LotteryEventActive, StartAt: now.Add(time.Hour), EndAt: now.Add(2 * time.Hour)}},
		{"ended", model.LotteryEvent{ID: 1, Status: model.LotteryEventActive, StartAt: now.Add(-2 * time.Hour), EndAt: now.Add(-time.Hour)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &testhelpers.LotteryRepositoryStub{Events: []model.LotteryEvent{tc.event}}
			uc := NewLotteryUseCase(repo)

			_, err := uc.Enter(context.Background(), 1, 7, 10)
			if !errors.Is(err, domainErrors.ErrLotteryClosed) {
				t.Fatalf("expected lottery closed error, got %v", err)
			}
			if len(repo.Created) != 0 {
				t.Fatal("expected no entry for closed event")
			}
		})
	}
}

func TestLotteryEnterWrongEventProduct(t *testing.T) {
	repo := &testhelpers.LotteryRepositoryStub{
		Events:   []model.LotteryEvent{activeEvent(1)},
		Products: []model.LotteryProduct{{ID: 10, LotteryEventID: 2, ProductID: 100, QuantityAvailable: 5}},
	}
	uc := NewLotteryUseCase(repo)

	_, err := uc.Enter(context.Background(), 1, 7, 10)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign allocation, got %v", err)
	}
}

func TestLotteryEnterSuccessAndDuplicate(t *testing.T) {
	repo := &testhelpers.LotteryRepositoryStub{
		Events:   []model.LotteryEvent{activeEvent(1)},
		Products: []model.LotteryProduct{{ID: 10, LotteryEventID: 1, ProductID: 100, QuantityAvailable: 5}},
	}
	uc := NewLotteryUseCase(repo)

	entry, err := uc.Enter(context.Background(), 1, 7, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.UserID != 7 || entry.LotteryProductID != 10 || entry.LotteryEventID != 1 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, err := uc.Enter(context.Background(), 1, 7, 10); !errors.Is(err, domainErrors.ErrDuplicateEntry) {
		t.Fatalf("expected duplicate entry error, got %v", err)
	}
}

func TestLotteryEnterExhaustedAllocation(t *testing.T) {
	repo := &testhelpers.LotteryRepositoryStub{
		Events:   []model.LotteryEvent{activeEvent(1)},
		Products: []model.LotteryProduct{{ID: 10, LotteryEventID: 1, ProductID: 100, QuantityAvailable: 1}},
		CreateEntryFn: func(context.Context, int64, int64, int64) (*model.LotteryEntry, error) {
			return nil, domainErrors.ErrAllocationExhausted
		},
	}
	uc := NewLotteryUseCase(repo)

	if _, err := uc.Enter(context.Background(), 1, 7, 10); !errors.Is(err, domainErrors.ErrAllocationExhausted) {
		t.Fatalf("expected exhausted allocation error, got %v", err)
	}
}

func TestLotteryEntriesByUser(t *testing.T) {
	repo := &testhelpers.LotteryRepositoryStub{Entries: []model.LotteryEntry{
		{ID: 1, LotteryEventID: 1, UserID: 7, LotteryProductID: 10},
		{ID: 2, LotteryEventID: 1, UserID: 8, LotteryProductID: 10},
	}}
	uc := NewLotteryUseCase(repo)

	entries, err := uc.Entries(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != 7 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
