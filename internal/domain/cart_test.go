package domain

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProduct(price string) Product {
	return Product{
		ID:       gofakeit.UUID(),
		Name:     gofakeit.ProductName(),
		Price:    decimal.RequireFromString(price),
		ImageURL: gofakeit.URL(),
	}
}

func TestCart_ItemCount(t *testing.T) {
	cart := Empty()
	assert.Equal(t, 0, cart.ItemCount())

	cart.Entries = []CartEntry{
		{Product: fakeProduct("10.00"), Quantity: 2},
		{Product: fakeProduct("5.00"), Quantity: 3},
	}
	assert.Equal(t, 5, cart.ItemCount())
}

func TestCart_Subtotal(t *testing.T) {
	cart := Cart{Entries: []CartEntry{
		{Product: fakeProduct("10.00"), Quantity: 2},
		{Product: fakeProduct("5.50"), Quantity: 4},
	}}

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("42.00")),
		"got %s", cart.Subtotal())
}

func TestCart_Subtotal_MissingPriceContributesZero(t *testing.T) {
	noPrice := Product{ID: "p-free", Name: "mystery item"}
	cart := Cart{Entries: []CartEntry{
		{Product: noPrice, Quantity: 3},
		{Product: fakeProduct("2.00"), Quantity: 1},
	}}

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("2.00")),
		"got %s", cart.Subtotal())
}

func TestCart_Entry(t *testing.T) {
	p := fakeProduct("1.00")
	cart := Cart{Entries: []CartEntry{{Product: p, Quantity: 7}}}

	e, ok := cart.Entry(p.ID)
	require.True(t, ok)
	assert.Equal(t, 7, e.Quantity)
	assert.True(t, cart.Contains(p.ID))

	_, ok = cart.Entry("absent")
	assert.False(t, ok)
	assert.False(t, cart.Contains("absent"))
}

func TestCart_Clone_IsIndependent(t *testing.T) {
	p := fakeProduct("3.00")
	cart := Cart{Entries: []CartEntry{{Product: p, Quantity: 1}}}

	clone := cart.Clone()
	clone.Entries[0].Quantity = 99

	assert.Equal(t, 1, cart.Entries[0].Quantity)
}

func TestCartEntry_LineTotal(t *testing.T) {
	e := CartEntry{Product: fakeProduct("9.99"), Quantity: 3}
	assert.True(t, e.LineTotal().Equal(decimal.RequireFromString("29.97")))
}
