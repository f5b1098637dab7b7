package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/models"
	"github.com/skirsanov/gadgetshop/internal/repo"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

type CartService struct {
	Repo *repo.GormRepo
}

// DetailedItem is a cart entry joined with its product.
type DetailedItem struct {
	ProductID    uuid.UUID `json:"productId"`
	Quantity     int       `json:"quantity"`
	ProductName  string    `json:"productName"`
	ProductDesc  string    `json:"productDesc"`
	ImageURL     string    `json:"imageURL"`
	ProductPrice float64   `json:"productPrice"`
}

type QuantityItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// AddToCart creates the cart lazily on first add, then either increments the
// existing item or appends a fresh one with quantity 1. Returns the full cart.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID)

	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		cart = &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartItem{
				{ProductID: productID, Quantity: 1, OrderStatus: false},
			},
		}
		if err := s.Repo.CreateCart(ctx, cart); err != nil {
			return nil, err
		}
		l.Info("cart_created")
		return s.Repo.GetCart(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	adjusted, err := s.Repo.AdjustItemQuantity(ctx, cart.ID, productID, 1)
	if err != nil {
		return nil, err
	}
	if !adjusted {
		item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: 1}
		if err := s.Repo.AppendItem(ctx, &item); err != nil {
			return nil, err
		}
	}

	return s.Repo.GetCart(ctx, userID)
}

// Decrease lowers the quantity by one. There is no floor at zero: repeated
// calls drive the stored quantity negative.
func (s *CartService) Decrease(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	adjusted, err := s.Repo.AdjustItemQuantity(ctx, cart.ID, productID, -1)
	if err != nil {
		return nil, err
	}
	if !adjusted {
		return nil, ErrItemNotFound
	}

	return s.Repo.GetCart(ctx, userID)
}

// Remove filters the item out. Removing an absent item returns the unchanged
// cart, not an error.
func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}

	return s.Repo.GetCart(ctx, userID)
}

// Clear empties the items. The cart row stays, just emptied.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCartNotFound
	}
	if err != nil {
		return err
	}
	return s.Repo.ClearItems(ctx, cart.ID)
}

// Hydrate joins cart entries with their products. Entries whose product no
// longer exists are dropped. An absent or empty cart yields an empty list,
// never an error.
func (s *CartService) Hydrate(ctx context.Context, userID uuid.UUID) ([]DetailedItem, error) {
	cart, products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]DetailedItem, 0, len(cart))
	for _, entry := range cart {
		product, ok := products[entry.ProductID]
		if !ok {
			continue
		}
		price, _ := strconv.ParseFloat(product.ProductPrice, 64)
		items = append(items, DetailedItem{
			ProductID:    entry.ProductID,
			Quantity:     entry.Quantity,
			ProductName:  product.ProductName,
			ProductDesc:  product.ProductDesc,
			ImageURL:     product.ImageURL,
			ProductPrice: price,
		})
	}
	return items, nil
}

// Quantities is the same join projected to id and quantity.
func (s *CartService) Quantities(ctx context.Context, userID uuid.UUID) ([]QuantityItem, error) {
	cart, products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]QuantityItem, 0, len(cart))
	for _, entry := range cart {
		if _, ok := products[entry.ProductID]; !ok {
			continue
		}
		items = append(items, QuantityItem{ProductID: entry.ProductID, Quantity: entry.Quantity})
	}
	return items, nil
}

func (s *CartService) load(ctx context.Context, userID uuid.UUID) ([]models.CartItem, map[uuid.UUID]models.Product, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(cart.Items) == 0 {
		return nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.Repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return cart.Items, byID, nil
}
