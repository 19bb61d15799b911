package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/domain"
	"shopfront/internal/store"
	"shopfront/pkg/logger"
)

func newManager(t *testing.T) *cart.Manager {
	t.Helper()
	return cart.New(store.NewMemoryStore(), logger.NewNop())
}

func product(id, price string) domain.Product {
	return domain.Product{ID: id, Name: "product " + id, Price: decimal.RequireFromString(price)}
}

func TestSubmit_CreatesOrderAndClearsCart(t *testing.T) {
	var got api.OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"o-1","reference":"` + got.Reference + `","status":"pending","total":25}}`))
	}))
	defer srv.Close()

	manager := newManager(t)
	manager.Add(product("p1", "10.00"), 2)
	manager.Add(product("p2", "5.00"), 1)

	svc := NewService(manager, api.NewOrdersClient(api.NewClient(srv.URL, time.Second)), logger.NewNop())

	order, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("25.00")), "got %s", got.Total)
	assert.NotEmpty(t, got.Reference)

	assert.Equal(t, 0, manager.ItemCount(), "cart must be cleared after a successful order")
}

func TestSubmit_EmptyCart(t *testing.T) {
	manager := newManager(t)
	svc := NewService(manager, api.NewOrdersClient(api.NewClient("http://localhost:0", time.Second)), logger.NewNop())

	_, err := svc.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_BackendFailureLeavesCartIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"orders are down"}`))
	}))
	defer srv.Close()

	manager := newManager(t)
	manager.Add(product("p1", "10.00"), 2)

	svc := NewService(manager, api.NewOrdersClient(api.NewClient(srv.URL, time.Second)), logger.NewNop())

	_, err := svc.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, manager.ItemCount(), "a failed submit must not clear the cart")
}
