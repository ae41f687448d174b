package paypay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/marukota/curiomart/internal/domain/model"
)

// ErrPaymentNotFound indicates PayPay doesn't know the merchant payment yet.
var ErrPaymentNotFound = errors.New("payment not found at gateway")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// CodeItem is one order line forwarded to the gateway.
type CodeItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice int64
}

// CodeRequest describes a payable QR code to create.
type CodeRequest struct {
	MerchantPaymentID string
	Amount            int64
	Currency          string
	Description       string
	Items             []CodeItem
}

// CodeResponse carries the payable artifact. An empty URL means the gateway
// declined the code without a transport failure.
type CodeResponse struct {
	CodeID string
	URL    string
}

// Client exposes payment gateway operations.
type Client interface {
	CreatePayableCode(ctx context.Context, req CodeRequest) (*CodeResponse, error)
	GetPaymentDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error)
}

// HTTPClient implements Client via the PayPay HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	merchantID string
	httpClient *http.Client
	logger     *slog.Logger
}

type resultInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type codePayload struct {
	MerchantPaymentID string        `json:"merchantPaymentId"`
	Amount            amountPayload `json:"amount"`
	CodeType          string        `json:"codeType"`
	OrderDescription  string        `json:"orderDescription,omitempty"`
	OrderItems        []itemPayload `json:"orderItems,omitempty"`
}

type amountPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type itemPayload struct {
	Name      string        `json:"name"`
	Quantity  int32         `json:"quantity"`
	UnitPrice amountPayload `json:"unitPrice"`
}

type codeResponseBody struct {
	ResultInfo resultInfo `json:"resultInfo"`
	Data       struct {
		CodeID string `json:"codeId"`
		URL    string `json:"url"`
	} `json:"data"`
}

type paymentDetailsBody struct {
	ResultInfo resultInfo `json:"resultInfo"`
	Data       struct {
		Status      string        `json:"status"`
		Amount      amountPayload `json:"amount"`
		RequestedAt int64         `json:"requestedAt"`
		AcceptedAt  *int64        `json:"acceptedAt,omitempty"`
	} `json:"data"`
}

// NewHTTPClient creates a gateway client with default timeout.
func NewHTTPClient(baseURL, apiKey, merchantID string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		apiKey:     apiKey,
		merchantID: merchantID,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreatePayableCode registers a QR code for the merchant payment and returns
// the URL the buyer redeems to pay.
func (c *HTTPClient) CreatePayableCode(ctx context.Context, req CodeRequest) (*CodeResponse, error) {
	payload := codePayload{
		MerchantPaymentID: req.MerchantPaymentID,
		Amount:            amountPayload{Amount: req.Amount, Currency: req.Currency},
		CodeType:          "ORDER_QR",
		OrderDescription:  req.Description,
	}
	for _, item := range req.Items {
		payload.OrderItems = append(payload.OrderItems, itemPayload{
			Name:      fmt.Sprintf("product-%d", item.ProductID),
			Quantity:  item.Quantity,
			UnitPrice: amountPayload{Amount: item.UnitPrice, Currency: req.Currency},
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/v2/codes", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		var data codeResponseBody
		if err := decodeBody(resp.Body, &data); err != nil {
			return nil, err
		}
		if data.ResultInfo.Code != "SUCCESS" {
			c.logger.Warn("gateway declined code",
				slog.String("merchant_payment_id", req.MerchantPaymentID),
				slog.String("result", data.ResultInfo.Code),
			)
			return &CodeResponse{}, nil
		}
		return &CodeResponse{CodeID: data.Data.CodeID, URL: data.Data.URL}, nil
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway code request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

// GetPaymentDetails queries the settlement state of a merchant payment.
func (c *HTTPClient) GetPaymentDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error) {
	resp, err := c.do(ctx, http.MethodGet, path.Join("/v2/codes/payments", merchantPaymentID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data paymentDetailsBody
		if err := decodeBody(resp.Body, &data); err != nil {
			return nil, err
		}
		details := &model.PaymentDetails{
			MerchantPaymentID: merchantPaymentID,
			Status:            model.PaymentGatewayStatus(data.Data.Status),
			Amount:            data.Data.Amount.Amount,
			RequestedAt:       time.Unix(data.Data.RequestedAt, 0),
		}
		if data.Data.AcceptedAt != nil {
			accepted := time.Unix(*data.Data.AcceptedAt, 0)
			details.AcceptedAt = &accepted
		}
		return details, nil
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway details request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Assume-Merchant", c.merchantID)

	return c.httpClient.Do(req)
}

func decodeBody(r io.Reader, v any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
