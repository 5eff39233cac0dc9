package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

// WishlistMetrics はお気に入り系の業務メトリクス。
type WishlistMetrics interface {
	RecordWishlistAdd(ctx context.Context)
}

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
	metrics      WishlistMetrics
}

// DI
func NewWishlistUsecase(
	wishlistRepo repo.WishlistRepository,
	productRepo repo.ProductRepository,
	metrics WishlistMetrics,
) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		metrics:      metrics,
	}
}

type WishlistEntry struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type WishlistResponse struct {
	Wishlist []WishlistEntry `json:"wishlist"`
}

// Add はお気に入りに追加する。同じ商品の二重追加は拒否。
func (u *WishlistUsecase) Add(ctx context.Context, userID int64, productID int64) (SuccessResponse, error) {
	if userID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.wishlistRepo.FindByUserAndProduct(ctx, userID, productID); err == nil {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "The product is already on your wishlist")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.wishlistRepo.Create(ctx, model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.metrics != nil {
		u.metrics.RecordWishlistAdd(ctx)
	}

	return SuccessResponse{Message: "Product added to your wishlist"}, nil
}

// List は商品名つきで返す。空でも正常。
func (u *WishlistUsecase) List(ctx context.Context, userID int64) (WishlistResponse, error) {
	if userID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, it := range items {
		entry := WishlistEntry{
			ID:        it.ID,
			ProductID: it.ProductID,
			CreatedAt: it.CreatedAt,
		}
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			entry.ProductName = p.Name
		}
		entries = append(entries, entry)
	}

	return WishlistResponse{Wishlist: entries}, nil
}

// Remove はお気に入りから削除する（所有チェックあり）。
func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, wishlistID int64) (SuccessResponse, error) {
	if userID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if wishlistID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.wishlistRepo.FindOwned(ctx, wishlistID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Wishlist item not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.wishlistRepo.DeleteByID(ctx, wishlistID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Wishlist item not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: "Product removed from wishlist"}, nil
}
