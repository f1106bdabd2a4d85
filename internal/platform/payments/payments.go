package payments

import "context"

// OrderRequest is a payment-intent creation request in minor currency units.
type OrderRequest struct {
	Amount      int64
	Currency    string
	Receipt     string
	Description string
}

// Order is the gateway's view of a created order. Nothing is persisted locally;
// the gateway owns this object.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
}

// GatewayError carries the raw upstream error body so handlers can surface it.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return e.Body
}
