package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	// 新しい順で返す
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	FindOwned(ctx context.Context, orderID int64, userID int64) (model.Order, error)
	DeleteByID(ctx context.Context, orderID int64) error
}
