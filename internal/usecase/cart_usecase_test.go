package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindOwned(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID, userID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64, total float64) error {
	args := m.Called(ctx, cartItemID, qty, total)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) FindByName(ctx context.Context, name string) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) DeleteByID(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, status, he.Status)
	assert.Equal(t, message, he.Message)
}

// =====================
// Add
// =====================

func TestCartUsecase_Add_InvalidProductID(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartItemRepoMock), new(CartProductRepoMock), nil)

	_, err := uc.Add(context.Background(), 1, usecase.AddCartInput{ProductID: 0, Quantity: 1})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product_id")
}

func TestCartUsecase_Add_InvalidQuantity(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartItemRepoMock), new(CartProductRepoMock), nil)

	_, err := uc.Add(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 0})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid quantity")
}

func TestCartUsecase_Add_ProductNotFound(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	productRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Add(context.Background(), 1, usecase.AddCartInput{ProductID: 999, Quantity: 1})
	assertHTTPError(t, err, http.StatusNotFound, "Product not found")

	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 在庫超過は追加時点で拒否、何も保存しない
func TestCartUsecase_Add_ExceedsStock(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	productRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Stock: 5}, nil)

	_, err := uc.Add(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 6})
	assertHTTPError(t, err, http.StatusBadRequest, "Quantity exceeds available stock")

	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 重複追加は冪等：既存明細をそのまま返し、数量も増やさない
func TestCartUsecase_Add_AlreadyInCart(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	productRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Price: 100, Stock: 10}, nil)
	existing := model.CartItem{ID: 7, UserID: 1, ProductID: 101, Quantity: 2, UnitPrice: 100, Total: 200}
	cartRepo.On("FindByUserAndProduct", mock.Anything, int64(1), int64(101)).Return(existing, nil)

	out, err := uc.Add(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, "Product already in cart", out.Message)
	assert.Equal(t, int64(2), out.Item.Quantity)

	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 新規追加は追加時点の価格をスナップショットする
func TestCartUsecase_Add_Success(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	productRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Price: 100, Stock: 10}, nil)
	cartRepo.On("FindByUserAndProduct", mock.Anything, int64(1), int64(101)).Return(model.CartItem{}, repo.ErrNotFound)

	want := model.CartItem{UserID: 1, ProductID: 101, Quantity: 3, UnitPrice: 100, Total: 300}
	cartRepo.On("Create", mock.Anything, want).Return(model.CartItem{ID: 8, UserID: 1, ProductID: 101, Quantity: 3, UnitPrice: 100, Total: 300}, nil)

	out, err := uc.Add(context.Background(), 1, usecase.AddCartInput{ProductID: 101, Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, "Product added to cart", out.Message)
	assert.Equal(t, float64(300), out.Item.Total)

	cartRepo.AssertExpectations(t)
}

// =====================
// UpdateQuantity
// =====================

// PUT は増分更新：既存2 + 指定1 = 3、合計はスナップショット価格で再計算
func TestCartUsecase_UpdateQuantity_Delta(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	item := model.CartItem{ID: 7, UserID: 1, ProductID: 101, Quantity: 2, UnitPrice: 100, Total: 200}
	cartRepo.On("FindOwned", mock.Anything, int64(7), int64(1)).Return(item, nil)
	productRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Price: 120, Stock: 10}, nil)
	cartRepo.On("UpdateQuantity", mock.Anything, int64(7), int64(3), float64(300)).Return(nil)

	out, err := uc.UpdateQuantity(context.Background(), 1, 7, usecase.UpdateCartInput{ProductID: 101, Quantity: 1})
	assert.NoError(t, err)
	assert.Equal(t, "Cart item quantity updated successfully", out.Message)
	assert.Equal(t, int64(3), out.Item.Quantity)
	assert.Equal(t, float64(300), out.Item.Total)

	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_UpdateQuantity_ExceedsStock(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	item := model.CartItem{ID: 7, UserID: 1, ProductID: 101, Quantity: 4, UnitPrice: 100, Total: 400}
	cartRepo.On("FindOwned", mock.Anything, int64(7), int64(1)).Return(item, nil)
	productRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Stock: 5}, nil)

	_, err := uc.UpdateQuantity(context.Background(), 1, 7, usecase.UpdateCartInput{ProductID: 101, Quantity: 2})
	assertHTTPError(t, err, http.StatusBadRequest, "Quantity exceeds available stock")

	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateQuantity_ProductMismatch(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, new(CartProductRepoMock), nil)

	item := model.CartItem{ID: 7, UserID: 1, ProductID: 101, Quantity: 2, UnitPrice: 100, Total: 200}
	cartRepo.On("FindOwned", mock.Anything, int64(7), int64(1)).Return(item, nil)

	_, err := uc.UpdateQuantity(context.Background(), 1, 7, usecase.UpdateCartInput{ProductID: 999, Quantity: 1})
	assertHTTPError(t, err, http.StatusBadRequest, "product_id does not match cart item")
}

// 他人の明細は存在しない扱い
func TestCartUsecase_UpdateQuantity_NotOwned(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, new(CartProductRepoMock), nil)

	cartRepo.On("FindOwned", mock.Anything, int64(7), int64(2)).Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.UpdateQuantity(context.Background(), 2, 7, usecase.UpdateCartInput{ProductID: 101, Quantity: 1})
	assertHTTPError(t, err, http.StatusNotFound, "Cart item not found")
}

// =====================
// Remove
// =====================

func TestCartUsecase_Remove_Success(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, new(CartProductRepoMock), nil)

	item := model.CartItem{ID: 7, UserID: 1, ProductID: 101}
	cartRepo.On("FindOwned", mock.Anything, int64(7), int64(1)).Return(item, nil)
	cartRepo.On("DeleteByID", mock.Anything, int64(7)).Return(nil)

	out, err := uc.Remove(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Product removed from cart successfully", out.Message)

	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_Remove_NotOwned(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, new(CartProductRepoMock), nil)

	cartRepo.On("FindOwned", mock.Anything, int64(7), int64(2)).Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.Remove(context.Background(), 2, 7)
	assertHTTPError(t, err, http.StatusNotFound, "Cart item not found")

	cartRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

// =====================
// List
// =====================

// 消えた商品の明細は一覧から落とす
func TestCartUsecase_List_SkipsMissingProducts(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo, nil)

	items := []model.CartItem{
		{ID: 1, UserID: 1, ProductID: 101, Quantity: 2, UnitPrice: 100, Total: 200},
		{ID: 2, UserID: 1, ProductID: 102, Quantity: 1, UnitPrice: 50, Total: 50},
	}
	cartRepo.On("ListByUserID", mock.Anything, int64(1)).Return(items, nil)
	productRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Name: "Coffee"}, nil)
	productRepo.On("FindByID", mock.Anything, int64(102)).Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.List(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, out.Data, 1)
	assert.Equal(t, "Coffee", out.Data[0].ProductName)
}
