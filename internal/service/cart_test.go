package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/shopmobile/internal/domain"
)

func newTestCart() *CartService {
	return NewCartService(testEvents(), testLogger(), "demo@shop.com")
}

func TestCartAdd_RepeatedAddIncrementsQuantity(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	p := domain.Product{ID: "p-1", Title: "Sneakers", Price: 59.99}
	_, err := svc.Add(ctx, p)
	require.NoError(t, err)
	cart, err := svc.Add(ctx, p)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, 2, svc.ItemCount())
}

func TestCartAdd_RejectsInvalidProduct(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.Product{Title: "no id"})
	assert.Error(t, err)

	_, err = svc.Add(ctx, domain.Product{ID: "p-1", Price: -1})
	assert.Error(t, err)

	assert.True(t, svc.Cart().IsEmpty())
}

func TestCartTotal_RecomputedPerMutation(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	a := domain.Product{ID: "A", Title: "Product A", Price: 10.00}
	b := domain.Product{ID: "B", Title: "Product B", Price: 5.50}

	_, err := svc.Add(ctx, a)
	require.NoError(t, err)
	assert.InDelta(t, 10.00, svc.Total(), 1e-9)

	_, err = svc.Add(ctx, a)
	require.NoError(t, err)
	_, err = svc.Add(ctx, b)
	require.NoError(t, err)

	assert.InDelta(t, 25.50, svc.Total(), 1e-9)
	assert.Equal(t, 3, svc.ItemCount())
}

func TestCartSnapshot_IsACopy(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.Product{ID: "p-1", Title: "Sneakers", Price: 59.99})
	require.NoError(t, err)

	snapshot := svc.Cart()
	snapshot.Lines[0].Quantity = 99

	assert.Equal(t, 1, svc.Cart().Lines[0].Quantity)
}

func TestCartClear(t *testing.T) {
	svc := newTestCart()
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.Product{ID: "p-1", Title: "Sneakers", Price: 59.99})
	require.NoError(t, err)

	svc.Clear(ctx)

	assert.True(t, svc.Cart().IsEmpty())
	assert.Zero(t, svc.Total())
}
