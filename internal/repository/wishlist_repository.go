package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.WishlistItem, error)
	FindOwned(ctx context.Context, wishlistID int64, userID int64) (model.WishlistItem, error)
	Create(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error)
	DeleteByID(ctx context.Context, wishlistID int64) error
}
