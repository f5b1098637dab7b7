package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skirsanov/gadgetshop/internal/models"
	"github.com/skirsanov/gadgetshop/internal/repo"
)

var ErrValidation = errors.New("validation")

type OrderService struct {
	Repo *repo.GormRepo
}

type OrderItemInput struct {
	ProductID    uuid.UUID `json:"productId"`
	Quantity     int       `json:"quantity"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	ImageURL     string    `json:"imageURL"`
}

// PlaceOrder persists a write-once snapshot of the submitted items. The copied
// product fields stay as submitted, independent of later product mutation.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
	}
	for _, in := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    in.ProductID,
			Quantity:     in.Quantity,
			ProductName:  in.ProductName,
			ProductPrice: in.ProductPrice,
			ImageURL:     in.ImageURL,
		})
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) History(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}
