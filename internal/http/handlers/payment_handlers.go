package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/meridianadvisory/site-backend/internal/http/response"
	"github.com/meridianadvisory/site-backend/internal/platform/payments"
	"github.com/meridianadvisory/site-backend/pkg/events"
	"github.com/meridianadvisory/site-backend/pkg/logger"
)

type createOrderReq struct {
	Amount      *float64 `json:"amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
}

// CreateOrder handles POST /api/create-razorpay-order. The order lives only at
// the gateway; nothing is persisted here.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Amount == nil || *req.Amount <= 0 {
		response.BadRequest(w, "A positive amount is required")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.config.Payments.DefaultCurrency
	}

	order, err := h.gateway.CreateOrder(r.Context(), &payments.OrderRequest{
		Amount:      toMinorUnits(*req.Amount),
		Currency:    currency,
		Receipt:     fmt.Sprintf("rcpt_%d", time.Now().Unix()),
		Description: req.Description,
	})
	if err != nil {
		var gwErr *payments.GatewayError
		if errors.As(err, &gwErr) {
			response.UpstreamError(w, gwErr.Body)
			return
		}
		response.InternalError(w, "Failed to create payment order")
		return
	}

	if h.bus != nil {
		if err := h.bus.Publish(r.Context(), events.PaymentOrderCreated, events.PaymentOrderCreatedEvent{
			OrderID:  order.ID,
			Amount:   order.Amount,
			Currency: order.Currency,
			Status:   order.Status,
		}); err != nil {
			logger.ErrorContext(r.Context(), "Failed to publish order event", "error", err, "order_id", order.ID)
		}
	}

	writeJSON(w, http.StatusOK, order)
}

// toMinorUnits converts a major-unit amount to minor units, exact for two
// decimal places (100.50 -> 10050).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
