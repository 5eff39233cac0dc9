package usecase

import (
	"context"
	"errors"
	"net/http"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

// CartMetrics はカート系の業務メトリクス。nil実装でも動く。
type CartMetrics interface {
	RecordCartAdd(ctx context.Context, productID int64)
}

// CartUsecase は /carts の業務ロジック。
// 明細は (user_id, product_id) で一意、1商品につき1行。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	metrics      CartMetrics
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	metrics CartMetrics,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		metrics:      metrics,
	}
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// PUT /carts/{id} は数量の増分（delta）を受ける。
type UpdateCartInput struct {
	ProductID int64
	Quantity  int64
}

// CartLineResponse は1明細分の返却形。
type CartLineResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

type CartMutationResponse struct {
	Message string           `json:"message"`
	Item    CartLineResponse `json:"item"`
}

// 一覧は商品名と画像で補完して返す。
type CartListEntry struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductImg  string  `json:"product_img"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type CartListResponse struct {
	Data []CartListEntry `json:"data"`
}

// Add はカートに追加する。既存明細がある場合は数量を増やさず
// 現状をそのまま返す（重複追加は冪等）。
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (CartMutationResponse, error) {
	if userID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫上限チェック（追加時点のみ）
	if in.Quantity > p.Stock {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "Quantity exceeds available stock")
	}

	//既存明細があれば数量は足さずに現状を返す
	existing, err := u.cartItemRepo.FindByUserAndProduct(ctx, userID, in.ProductID)
	if err == nil {
		return CartMutationResponse{
			Message: "Product already in cart",
			Item:    toCartLine(existing),
		}, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//unit_price は追加時点の価格スナップショット
	created, err := u.cartItemRepo.Create(ctx, model.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: p.Price,
		Total:     p.Price * float64(in.Quantity),
	})
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.metrics != nil {
		u.metrics.RecordCartAdd(ctx, in.ProductID)
	}

	return CartMutationResponse{
		Message: "Product added to cart",
		Item:    toCartLine(created),
	}, nil
}

// List はユーザーの明細を商品名つきで返す。空でも正常。
func (u *CartUsecase) List(ctx context.Context, userID int64) (CartListResponse, error) {
	if userID <= 0 {
		return CartListResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartListResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entries := make([]CartListEntry, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		entries = append(entries, CartListEntry{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: p.Name,
			ProductImg:  p.ImageURL,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
			Total:       it.Total,
		})
	}

	return CartListResponse{Data: entries}, nil
}

// UpdateQuantity は数量を増分で更新する（所有チェック＋在庫チェック）。
// 合計は保存済みのスナップショット価格で再計算する。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, in UpdateCartInput) (CartMutationResponse, error) {
	if userID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity <= 0 {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	item, err := u.cartItemRepo.FindOwned(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//明細の商品と食い違う指定は拒否
	if in.ProductID != item.ProductID {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "product_id does not match cart item")
	}

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQty := item.Quantity + in.Quantity
	if newQty > p.Stock {
		return CartMutationResponse{}, NewHTTPError(http.StatusBadRequest, "Quantity exceeds available stock")
	}

	newTotal := item.UnitPrice * float64(newQty)
	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, newQty, newTotal); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartMutationResponse{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return CartMutationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Quantity = newQty
	item.Total = newTotal

	return CartMutationResponse{
		Message: "Cart item quantity updated successfully",
		Item:    toCartLine(item),
	}, nil
}

// Remove は明細を削除する（所有チェックあり）。
func (u *CartUsecase) Remove(ctx context.Context, userID int64, cartItemID int64) (SuccessResponse, error) {
	if userID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.cartItemRepo.FindOwned(ctx, cartItemID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: "Product removed from cart successfully"}, nil
}

func toCartLine(it model.CartItem) CartLineResponse {
	return CartLineResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Price:     it.UnitPrice,
		Total:     it.Total,
	}
}
