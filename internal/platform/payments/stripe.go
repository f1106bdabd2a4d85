package payments

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway is the alternate provider behind the same Gateway interface.
// Stripe payment intents map onto the order shape the checkout flow expects.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.Receipt != "" {
		params.AddMetadata("receipt", req.Receipt)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok {
			return nil, &GatewayError{StatusCode: stripeErr.HTTPStatusCode, Body: stripeErr.Msg}
		}
		return nil, err
	}

	return &Order{
		ID:       intent.ID,
		Amount:   intent.Amount,
		Currency: strings.ToUpper(string(intent.Currency)),
		Status:   string(intent.Status),
	}, nil
}
