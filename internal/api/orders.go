package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order request, priced at the unit price the
// cart snapshotted at add-time.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

type OrderRequest struct {
	// Reference is a client-generated idempotency key so a retried submit
	// cannot create a second order.
	Reference string          `json:"reference"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

type Order struct {
	ID        string          `json:"id"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

type OrdersClient struct {
	client *Client
}

func NewOrdersClient(client *Client) *OrdersClient {
	return &OrdersClient{client: client}
}

// NewOrderReference generates the idempotency key for an order submission.
func NewOrderReference() string {
	return uuid.NewString()
}

// Create submits the order to the backend.
func (o *OrdersClient) Create(ctx context.Context, req OrderRequest) (Order, error) {
	var order Order
	if err := o.client.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}
