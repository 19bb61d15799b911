// Package checkout turns the session cart into a backend order.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shopfront/internal/api"
	"shopfront/internal/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

type Service struct {
	manager *cart.Manager
	orders  *api.OrdersClient
	log     *zap.Logger
}

func NewService(manager *cart.Manager, orders *api.OrdersClient, log *zap.Logger) *Service {
	return &Service{manager: manager, orders: orders, log: log}
}

// Submit builds an order from the current cart, sends it to the backend and
// clears the cart on success. The cart is left untouched on any failure so
// the user can retry.
func (s *Service) Submit(ctx context.Context) (api.Order, error) {
	snapshot := s.manager.Snapshot()
	if len(snapshot.Entries) == 0 {
		return api.Order{}, ErrEmptyCart
	}

	req := api.OrderRequest{
		Reference: api.NewOrderReference(),
		Items:     make([]api.OrderItem, 0, len(snapshot.Entries)),
		Total:     snapshot.Subtotal(),
	}
	for _, e := range snapshot.Entries {
		req.Items = append(req.Items, api.OrderItem{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			UnitPrice: e.Product.Price,
			Quantity:  e.Quantity,
		})
	}

	order, err := s.orders.Create(ctx, req)
	if err != nil {
		return api.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("reference", order.Reference),
		zap.String("total", order.Total.String()))

	s.manager.Clear()
	return order, nil
}
