package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	// 所有者つき検索（他人の明細は存在しない扱い）
	FindOwned(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64, total float64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// 注文確定時にまとめて消す
	DeleteByUserID(ctx context.Context, userID int64) error
}
