package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skirsanov/gadgetshop/internal/models"
	"github.com/skirsanov/gadgetshop/internal/repo"
)

func newCartService(t *testing.T) *CartService {
	return &CartService{Repo: newTestRepo(t)}
}

func createProduct(t *testing.T, r *repo.GormRepo, name, price string) *models.Product {
	p := &models.Product{
		ID:           uuid.New(),
		ProductName:  name,
		ProductDesc:  name + " description",
		ProductPrice: price,
		ImageURL:     "http://images/" + name + ".png",
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func TestAddToCartTwiceIncrements(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	cart, err := svc.AddToCart(ctx, userID, productID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.AddToCart(ctx, userID, productID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddToCartAppendsNewProduct(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddToCart(ctx, userID, uuid.New())
	require.NoError(t, err)

	cart, err := svc.AddToCart(ctx, userID, uuid.New())
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestDecreaseHasNoFloorAtZero(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	_, err := svc.AddToCart(ctx, userID, productID)
	require.NoError(t, err)

	cart, err := svc.Decrease(ctx, userID, productID)
	require.NoError(t, err)
	require.Equal(t, 0, cart.Items[0].Quantity)

	// observed production behavior: the quantity keeps going down
	cart, err = svc.Decrease(ctx, userID, productID)
	require.NoError(t, err)
	require.Equal(t, -1, cart.Items[0].Quantity)
}

func TestDecreaseMissingCartAndItem(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Decrease(ctx, userID, uuid.New())
	require.ErrorIs(t, err, ErrCartNotFound)

	_, err = svc.AddToCart(ctx, userID, uuid.New())
	require.NoError(t, err)

	_, err = svc.Decrease(ctx, userID, uuid.New())
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	_, err := svc.AddToCart(ctx, userID, productID)
	require.NoError(t, err)

	// removing an absent item returns the unchanged cart, not an error
	cart, err := svc.Remove(ctx, userID, uuid.New())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.Remove(ctx, userID, productID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	cart, err = svc.Remove(ctx, userID, productID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearEmptiesButKeepsCart(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	require.ErrorIs(t, svc.Clear(ctx, userID), ErrCartNotFound)

	_, err := svc.AddToCart(ctx, userID, uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, userID))

	cart, err := svc.Repo.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// the emptied cart still exists, so clearing again succeeds
	require.NoError(t, svc.Clear(ctx, userID))
}

func TestHydrateJoinsProducts(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	phone := createProduct(t, svc.Repo, "phone", "799.99")

	_, err := svc.AddToCart(ctx, userID, phone.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, userID, phone.ID)
	require.NoError(t, err)

	items, err := svc.Hydrate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, phone.ID, items[0].ProductID)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, "phone", items[0].ProductName)
	require.InDelta(t, 799.99, items[0].ProductPrice, 0.001)
}

func TestHydrateDropsDeletedProducts(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	phone := createProduct(t, svc.Repo, "phone", "799.99")
	tablet := createProduct(t, svc.Repo, "tablet", "349")

	_, err := svc.AddToCart(ctx, userID, phone.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, userID, tablet.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DeleteProduct(ctx, tablet.ID))

	items, err := svc.Hydrate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, phone.ID, items[0].ProductID)
}

func TestHydrateAbsentCartIsEmptyList(t *testing.T) {
	svc := newCartService(t)

	items, err := svc.Hydrate(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestQuantitiesProjection(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	phone := createProduct(t, svc.Repo, "phone", "799.99")
	_, err := svc.AddToCart(ctx, userID, phone.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, userID, phone.ID)
	require.NoError(t, err)

	items, err := svc.Quantities(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, QuantityItem{ProductID: phone.ID, Quantity: 2}, items[0])
}
