package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/server/http/dto"
	"github.com/marukota/curiomart/internal/server/http/middleware"
	testhelpers "github.com/marukota/curiomart/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterScenarioMatchesE2E(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	authHeader := resp.Header().Get("Authorization")
	if authHeader != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "curiomart_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named curiomart_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			facade: testhelpers.AuthFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "invalid credentials",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			body:   validBody,
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrAlreadyExists
			}},
			body:   validBody,
			status: http.StatusConflict,
		},
		{
			name: "internal error",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", errors.New("boom")
			}},
			body:   validBody,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			facade: testhelpers.AuthFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			body:   validBody,
			status: http.StatusUnauthorized,
		},
		{
			name: "internal error",
			facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
				return "", errors.New("boom")
			}},
			body:   validBody,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAddressHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/address", NewAddressHandler(testhelpers.AddressFacadeStub{}).Get, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got dto.AddressResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Country != "JP" || got.PostalCode != "100-0001" {
		t.Fatalf("unexpected address response: %+v", got)
	}

	missing := testhelpers.AddressFacadeStub{AddressFn: func(context.Context, int64) (*model.Address, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/address", NewAddressHandler(missing).Get, asUser(7), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for missing address, got %d", resp.Code)
	}
}

func TestAddressHandlerSave(t *testing.T) {
	body, _ := json.Marshal(dto.AddressRequest{Country: "JP", PostalCode: "100-0001", Street: "Chiyoda 1-1", RecipientName: "Taro"})
	var saved model.Address
	facade := testhelpers.AddressFacadeStub{SaveFn: func(ctx context.Context, address model.Address) (*model.Address, error) {
		saved = address
		return &address, nil
	}}
	resp := performRequest(t, http.MethodPut, "/address", NewAddressHandler(facade).Save, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if saved.UserID != 7 || saved.Street != "Chiyoda 1-1" {
		t.Fatalf("unexpected address passed to facade: %+v", saved)
	}
}

func TestAddressHandlerSaveFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.AddressRequest{Country: "JP", PostalCode: "100-0001", Street: "Chiyoda 1-1", RecipientName: "Taro"})
	tests := []struct {
		name   string
		facade testhelpers.AddressFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			facade: testhelpers.AddressFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "invalid address",
			facade: testhelpers.AddressFacadeStub{SaveFn: func(context.Context, model.Address) (*model.Address, error) {
				return nil, domainErrors.ErrInvalidAddress
			}},
			body:   validBody,
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "internal error",
			facade: testhelpers.AddressFacadeStub{SaveFn: func(context.Context, model.Address) (*model.Address, error) {
				return nil, errors.New("boom")
			}},
			body:   validBody,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPut, "/address", NewAddressHandler(tt.facade).Save, asUser(7), tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCheckoutHandlerCheckout(t *testing.T) {
	body, _ := json.Marshal(dto.CheckoutRequest{
		MerchantPaymentID: "mp-1",
		Items:             []dto.CheckoutItem{{ProductID: 11, Quantity: 2, UnitPrice: 500}},
	})
	var gotUserID int64
	var gotItems []model.OrderItem
	facade := testhelpers.CheckoutFacadeStub{CheckoutFn: func(ctx context.Context, userID int64, merchantPaymentID string, items []model.OrderItem) (string, error) {
		gotUserID = userID
		gotItems = items
		return "https://qr.example/p/" + merchantPaymentID, nil
	}}
	resp := performRequest(t, http.MethodPost, "/checkout", NewCheckoutHandler(facade).Checkout, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotUserID != 7 {
		t.Fatalf("expected user 7, got %d", gotUserID)
	}
	if len(gotItems) != 1 || gotItems[0].ProductID != 11 || gotItems[0].Quantity != 2 {
		t.Fatalf("unexpected items passed to facade: %+v", gotItems)
	}
	var got dto.CheckoutResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MerchantPaymentID != "mp-1" || got.PaymentURL != "https://qr.example/p/mp-1" {
		t.Fatalf("unexpected checkout response: %+v", got)
	}
}

func TestCheckoutHandlerCheckoutFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.CheckoutRequest{
		MerchantPaymentID: "mp-1",
		Items:             []dto.CheckoutItem{{ProductID: 11, Quantity: 1, UnitPrice: 500}},
	})
	fail := func(err error) testhelpers.CheckoutFacadeStub {
		return testhelpers.CheckoutFacadeStub{CheckoutFn: func(context.Context, int64, string, []model.OrderItem) (string, error) {
			return "", err
		}}
	}
	emptyItems, _ := json.Marshal(map[string]any{"merchant_payment_id": "mp-1", "items": []any{}})

	tests := []struct {
		name   string
		facade testhelpers.CheckoutFacadeStub
		body   []byte
		status int
	}{
		{"malformed body", testhelpers.CheckoutFacadeStub{}, []byte("{"), http.StatusBadRequest},
		{"empty items", testhelpers.CheckoutFacadeStub{}, emptyItems, http.StatusBadRequest},
		{"invalid order", fail(domainErrors.ErrInvalidOrder), validBody, http.StatusUnprocessableEntity},
		{"no shipping address", fail(domainErrors.ErrNoShippingAddress), validBody, http.StatusUnprocessableEntity},
		{"duplicate payment", fail(domainErrors.ErrDuplicatePayment), validBody, http.StatusConflict},
		{"gateway rejected", fail(domainErrors.ErrGatewayRejected), validBody, http.StatusBadGateway},
		{"internal error", fail(errors.New("boom")), validBody, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/checkout", NewCheckoutHandler(tt.facade).Checkout, asUser(7), tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCheckoutHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/payments", NewCheckoutHandler(testhelpers.CheckoutFacadeStub{}).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got []dto.PaymentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].MerchantPaymentID != "mp-1" {
		t.Fatalf("unexpected payments response: %+v", got)
	}

	empty := testhelpers.CheckoutFacadeStub{PaymentsFn: func(context.Context, int64) ([]model.Payment, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/payments", NewCheckoutHandler(empty).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty history, got %d", resp.Code)
	}
}

func TestCheckoutHandlerStatus(t *testing.T) {
	accepted := time.Unix(100, 0)
	facade := testhelpers.CheckoutFacadeStub{StatusFn: func(ctx context.Context, userID int64, merchantPaymentID string) (*model.PaymentDetails, error) {
		return &model.PaymentDetails{
			MerchantPaymentID: merchantPaymentID,
			Status:            model.GatewayStatusCompleted,
			Amount:            1300,
			RequestedAt:       time.Unix(0, 0),
			AcceptedAt:        &accepted,
		}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/payments/:merchantPaymentID", NewCheckoutHandler(facade).Status, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got dto.PaymentStatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != string(model.GatewayStatusCompleted) || got.Amount != 1300 {
		t.Fatalf("unexpected status response: %+v", got)
	}
	if got.AcceptedAt == nil || !got.AcceptedAt.Equal(accepted) {
		t.Fatalf("unexpected acceptedAt: %v", got.AcceptedAt)
	}
}

func TestCheckoutHandlerStatusFailures(t *testing.T) {
	fail := func(err error) testhelpers.CheckoutFacadeStub {
		return testhelpers.CheckoutFacadeStub{StatusFn: func(context.Context, int64, string) (*model.PaymentDetails, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.CheckoutFacadeStub
		status int
	}{
		{"unknown payment", fail(domainErrors.ErrNotFound), http.StatusNotFound},
		{"gateway failure", fail(domainErrors.ErrGatewayRejected), http.StatusBadGateway},
		{"internal error", fail(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/payments/:merchantPaymentID", NewCheckoutHandler(tt.facade).Status, asUser(7), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestLotteryHandlerEvents(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/lottery/events", NewLotteryHandler(testhelpers.LotteryFacadeStub{}).Events, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got []dto.LotteryEventResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Title != "drop" {
		t.Fatalf("unexpected events response: %+v", got)
	}

	empty := testhelpers.LotteryFacadeStub{OpenFn: func(context.Context) ([]model.LotteryEvent, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/lottery/events", NewLotteryHandler(empty).Events, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for no open events, got %d", resp.Code)
	}
}

func TestLotteryHandlerEnter(t *testing.T) {
	body, _ := json.Marshal(dto.LotteryEntryRequest{LotteryProductID: 3})
	var gotEvent, gotUser, gotProduct int64
	facade := testhelpers.LotteryFacadeStub{EnterFn: func(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error) {
		gotEvent, gotUser, gotProduct = eventID, userID, productID
		return &model.LotteryEntry{ID: 9, LotteryEventID: eventID, UserID: userID, LotteryProductID: productID}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/lottery/events/5/entries", func(c *gin.Context) {
		c.Params = gin.Params{{Key: "eventID", Value: "5"}}
		NewLotteryHandler(facade).Enter(c)
	}, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotEvent != 5 || gotUser != 7 || gotProduct != 3 {
		t.Fatalf("unexpected arguments: event=%d user=%d product=%d", gotEvent, gotUser, gotProduct)
	}
}

func TestLotteryHandlerEnterFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.LotteryEntryRequest{LotteryProductID: 3})
	fail := func(err error) testhelpers.LotteryFacadeStub {
		return testhelpers.LotteryFacadeStub{EnterFn: func(context.Context, int64, int64, int64) (*model.LotteryEntry, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name    string
		eventID string
		facade  testhelpers.LotteryFacadeStub
		body    []byte
		status  int
	}{
		{"bad event id", "abc", testhelpers.LotteryFacadeStub{}, validBody, http.StatusBadRequest},
		{"malformed body", "5", testhelpers.LotteryFacadeStub{}, []byte("{"), http.StatusBadRequest},
		{"unknown event", "5", fail(domainErrors.ErrNotFound), validBody, http.StatusNotFound},
		{"closed event", "5", fail(domainErrors.ErrLotteryClosed), validBody, http.StatusConflict},
		{"duplicate entry", "5", fail(domainErrors.ErrDuplicateEntry), validBody, http.StatusConflict},
		{"allocation exhausted", "5", fail(domainErrors.ErrAllocationExhausted), validBody, http.StatusConflict},
		{"internal error", "5", fail(errors.New("boom")), validBody, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/entries", func(c *gin.Context) {
				c.Params = gin.Params{{Key: "eventID", Value: tt.eventID}}
				NewLotteryHandler(tt.facade).Enter(c)
			}, asUser(7), tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestLotteryHandlerEntries(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/lottery/entries", NewLotteryHandler(testhelpers.LotteryFacadeStub{}).Entries, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	empty := testhelpers.LotteryFacadeStub{EntriesFn: func(context.Context, int64) ([]model.LotteryEntry, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/lottery/entries", NewLotteryHandler(empty).Entries, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for no entries, got %d", resp.Code)
	}
}

func TestAuctionHandlerBid(t *testing.T) {
	body, _ := json.Marshal(dto.BidRequest{Amount: 2500})
	var gotAuction, gotUser, gotAmount int64
	facade := testhelpers.AuctionFacadeStub{PlaceFn: func(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error) {
		gotAuction, gotUser, gotAmount = auctionID, userID, amount
		return &model.SealedBid{ID: 1, AuctionID: auctionID, UserID: userID, Amount: amount}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/bids", func(c *gin.Context) {
		c.Params = gin.Params{{Key: "auctionID", Value: "4"}}
		NewAuctionHandler(facade).Bid(c)
	}, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotAuction != 4 || gotUser != 7 || gotAmount != 2500 {
		t.Fatalf("unexpected arguments: auction=%d user=%d amount=%d", gotAuction, gotUser, gotAmount)
	}
}

func TestAuctionHandlerBidFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.BidRequest{Amount: 2500})
	fail := func(err error) testhelpers.AuctionFacadeStub {
		return testhelpers.AuctionFacadeStub{PlaceFn: func(context.Context, int64, int64, int64) (*model.SealedBid, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name      string
		auctionID string
		facade    testhelpers.AuctionFacadeStub
		body      []byte
		status    int
	}{
		{"bad auction id", "zero", testhelpers.AuctionFacadeStub{}, validBody, http.StatusBadRequest},
		{"malformed body", "4", testhelpers.AuctionFacadeStub{}, []byte("{"), http.StatusBadRequest},
		{"unknown auction", "4", fail(domainErrors.ErrNotFound), validBody, http.StatusNotFound},
		{"closed auction", "4", fail(domainErrors.ErrAuctionClosed), validBody, http.StatusConflict},
		{"bid too low", "4", fail(domainErrors.ErrBidTooLow), validBody, http.StatusUnprocessableEntity},
		{"internal error", "4", fail(errors.New("boom")), validBody, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/bids", func(c *gin.Context) {
				c.Params = gin.Params{{Key: "auctionID", Value: tt.auctionID}}
				NewAuctionHandler(tt.facade).Bid(c)
			}, asUser(7), tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuctionHandlerRetract(t *testing.T) {
	var gotAuction, gotUser int64
	facade := testhelpers.AuctionFacadeStub{RetractFn: func(ctx context.Context, auctionID, userID int64) error {
		gotAuction, gotUser = auctionID, userID
		return nil
	}}
	resp := performRequest(t, http.MethodDelete, "/bids", func(c *gin.Context) {
		c.Params = gin.Params{{Key: "auctionID", Value: "4"}}
		NewAuctionHandler(facade).Retract(c)
	}, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotAuction != 4 || gotUser != 7 {
		t.Fatalf("unexpected arguments: auction=%d user=%d", gotAuction, gotUser)
	}
}

func TestAuctionHandlerRetractFailures(t *testing.T) {
	fail := func(err error) testhelpers.AuctionFacadeStub {
		return testhelpers.AuctionFacadeStub{RetractFn: func(context.Context, int64, int64) error {
			return err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.AuctionFacadeStub
		status int
	}{
		{"no bids", fail(domainErrors.ErrNotFound), http.StatusNotFound},
		{"closed auction", fail(domainErrors.ErrAuctionClosed), http.StatusConflict},
		{"retraction disabled", fail(domainErrors.ErrRetractionNotAllowed), http.StatusConflict},
		{"internal error", fail(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodDelete, "/bids", func(c *gin.Context) {
				c.Params = gin.Params{{Key: "auctionID", Value: "4"}}
				NewAuctionHandler(tt.facade).Retract(c)
			}, asUser(7), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuctionHandlerBids(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/bids", func(c *gin.Context) {
		c.Params = gin.Params{{Key: "auctionID", Value: "4"}}
		NewAuctionHandler(testhelpers.AuctionFacadeStub{}).Bids(c)
	}, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got []dto.BidResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 500 {
		t.Fatalf("unexpected bids response: %+v", got)
	}

	empty := testhelpers.AuctionFacadeStub{BidsFn: func(context.Context, int64, int64) ([]model.SealedBid, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/bids", func(c *gin.Context) {
		c.Params = gin.Params{{Key: "auctionID", Value: "4"}}
		NewAuctionHandler(empty).Bids(c)
	}, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for no visible bids, got %d", resp.Code)
	}
}

func TestShipmentHandlerList(t *testing.T) {
	shipped := time.Unix(10, 0)
	facade := testhelpers.ShipmentFacadeStub{ShipmentsFn: func(ctx context.Context, userID int64) ([]model.Shipment, error) {
		return []model.Shipment{{ID: 1, PaymentID: 2, DeliveryAddress: "JP 100-0001 Chiyoda 1-1", ShippedAt: &shipped}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/shipments", NewShipmentHandler(facade).List, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got []dto.ShipmentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Status != string(model.ShipmentStatusShipped) {
		t.Fatalf("unexpected shipments response: %+v", got)
	}

	empty := testhelpers.ShipmentFacadeStub{ShipmentsFn: func(context.Context, int64) ([]model.Shipment, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/shipments", NewShipmentHandler(empty).List, asUser(7), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for no shipments, got %d", resp.Code)
	}
}

func TestShipmentHandlerUpdateStatus(t *testing.T) {
	body, _ := json.Marshal(dto.ShipmentStatusRequest{Status: "shipped"})
	shipped := time.Unix(10, 0)
	facade := testhelpers.ShipmentFacadeStub{UpdateFn: func(ctx context.Context, shipmentID int64, target string) (*model.Shipment, error) {
		if target != "shipped" {
			t.Fatalf("unexpected target status %q", target)
		}
		return &model.Shipment{ID: shipmentID, PaymentID: 2, ShippedAt: &shipped}, nil
	}}
	resp := performRequest(t, http.MethodPatch, "/status", func(c *gin.Context) {
		c.Params = gin.Params{{Key: "shipmentID", Value: "6"}}
		NewShipmentHandler(facade).UpdateStatus(c)
	}, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got dto.ShipmentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 6 || got.Status != string(model.ShipmentStatusShipped) {
		t.Fatalf("unexpected shipment response: %+v", got)
	}
}

func TestShipmentHandlerUpdateStatusFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.ShipmentStatusRequest{Status: "delivered"})
	fail := func(err error) testhelpers.ShipmentFacadeStub {
		return testhelpers.ShipmentFacadeStub{UpdateFn: func(context.Context, int64, string) (*model.Shipment, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name       string
		shipmentID string
		facade     testhelpers.ShipmentFacadeStub
		body       []byte
		status     int
	}{
		{"bad shipment id", "-1", testhelpers.ShipmentFacadeStub{}, validBody, http.StatusBadRequest},
		{"malformed body", "6", testhelpers.ShipmentFacadeStub{}, []byte("{"), http.StatusBadRequest},
		{"unknown shipment", "6", fail(domainErrors.ErrNotFound), validBody, http.StatusNotFound},
		{"terminal shipment", "6", fail(domainErrors.ErrInvalidTransition), validBody, http.StatusConflict},
		{"internal error", "6", fail(errors.New("boom")), validBody, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPatch, "/status", func(c *gin.Context) {
				c.Params = gin.Params{{Key: "shipmentID", Value: tt.shipmentID}}
				NewShipmentHandler(tt.facade).UpdateStatus(c)
			}, nil, tt.body, jsonHeaders())
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "eventID", Value: "12"}}
	if id, ok := PathID(c, "eventID"); !ok || id != 12 {
		t.Fatalf("expected 12, got %d ok=%v", id, ok)
	}
	c.Params = gin.Params{{Key: "eventID", Value: "0"}}
	if _, ok := PathID(c, "eventID"); ok {
		t.Fatal("expected zero id to be rejected")
	}
	c.Params = gin.Params{{Key: "eventID", Value: "abc"}}
	if _, ok := PathID(c, "eventID"); ok {
		t.Fatal("expected non-numeric id to be rejected")
	}
}
