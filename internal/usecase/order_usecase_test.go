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
// Tx用の偽物（commit/rollbackはエラー有無で代用）
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) FindOwned(ctx context.Context, orderID int64, userID int64) (model.Order, error) {
	args := m.Called(ctx, orderID, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) DeleteByID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type txReposFake struct {
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	cartItems  *CartItemRepoMock
	products   *CartProductRepoMock
}

func (f *txReposFake) Orders() repo.OrderRepository         { return f.orders }
func (f *txReposFake) OrderItems() repo.OrderItemRepository { return f.orderItems }
func (f *txReposFake) CartItems() repo.CartItemRepository   { return f.cartItems }
func (f *txReposFake) Products() repo.ProductRepository     { return f.products }

type txManagerFake struct {
	repos *txReposFake
}

func (t *txManagerFake) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

func newTxFake() (*txManagerFake, *txReposFake) {
	r := &txReposFake{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(CartProductRepoMock),
	}
	return &txManagerFake{repos: r}, r
}

// =====================
// Checkout
// =====================

// 空カートの注文は400、注文は作られない
func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	tx, r := newTxFake()
	uc := usecase.NewOrderUsecase(tx, nil)

	r.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(context.Background(), 1)
	assertHTTPError(t, err, http.StatusBadRequest, "Your cart is empty")

	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.cartItems.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
}

// 合計は保存済み明細合計の総和、明細はスナップショット価格を引き継ぐ
func TestOrderUsecase_Checkout_Success(t *testing.T) {
	tx, r := newTxFake()
	uc := usecase.NewOrderUsecase(tx, nil)

	cartItems := []model.CartItem{
		{ID: 1, UserID: 1, ProductID: 101, Quantity: 3, UnitPrice: 100, Total: 300},
		{ID: 2, UserID: 1, ProductID: 102, Quantity: 1, UnitPrice: 50, Total: 50},
	}
	r.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return(cartItems, nil)

	r.orders.On("Create", mock.Anything, model.Order{UserID: 1, TotalAmount: 350}).
		Return(model.Order{ID: 10, UserID: 1, TotalAmount: 350}, nil)

	wantItems := []model.OrderItem{
		{ProductID: 101, Quantity: 3, UnitPrice: 100},
		{ProductID: 102, Quantity: 1, UnitPrice: 50},
	}
	r.orderItems.On("CreateBulk", mock.Anything, int64(10), wantItems).Return(nil)
	r.cartItems.On("DeleteByUserID", mock.Anything, int64(1)).Return(nil)

	out, err := uc.Checkout(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Order created successfully", out.Message)
	assert.Equal(t, int64(10), out.OrderID)
	assert.Equal(t, float64(350), out.TotalAmount)

	r.orders.AssertExpectations(t)
	r.orderItems.AssertExpectations(t)
	r.cartItems.AssertExpectations(t)
}

// 明細の書き込みが失敗したらカートは消さない（同一Txで巻き戻し）
func TestOrderUsecase_Checkout_BulkInsertFails(t *testing.T) {
	tx, r := newTxFake()
	uc := usecase.NewOrderUsecase(tx, nil)

	cartItems := []model.CartItem{
		{ID: 1, UserID: 1, ProductID: 101, Quantity: 1, UnitPrice: 100, Total: 100},
	}
	r.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return(cartItems, nil)
	r.orders.On("Create", mock.Anything, mock.Anything).Return(model.Order{ID: 10}, nil)
	r.orderItems.On("CreateBulk", mock.Anything, int64(10), mock.Anything).Return(assert.AnError)

	_, err := uc.Checkout(context.Background(), 1)
	assert.Error(t, err)

	r.cartItems.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
}

// =====================
// List
// =====================

func TestOrderUsecase_List_WithItems(t *testing.T) {
	tx, r := newTxFake()
	uc := usecase.NewOrderUsecase(tx, nil)

	orders := []model.Order{
		{ID: 11, UserID: 1, TotalAmount: 50},
		{ID: 10, UserID: 1, TotalAmount: 350},
	}
	r.orders.On("ListByUserID", mock.Anything, int64(1)).Return(orders, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{
		{OrderID: 11, ProductID: 102, Quantity: 1, UnitPrice: 50},
	}, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		{OrderID: 10, ProductID: 101, Quantity: 3, UnitPrice: 100},
	}, nil)

	out, err := uc.List(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, out.Data, 2)

	//新しい順（repositoryの並び）を保つ
	assert.Equal(t, int64(11), out.Data[0].ID)
	assert.Equal(t, int64(10), out.Data[1].ID)
	assert.Equal(t, float64(100), out.Data[1].Items[0].Price)
}

// =====================
// Delete
// =====================

func TestOrderUsecase_Delete_Success(t *testing.T) {
	tx, r := newTxFake()
	uc := usecase.NewOrderUsecase(tx, nil)

	r.orders.On("FindOwned", mock.Anything, int64(10), int64(1)).Return(model.Order{ID: 10, UserID: 1}, nil)
	r.orders.On("DeleteByID", mock.Anything, int64(10)).Return(nil)

	out, err := uc.Delete(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, "Order deleted successfully", out.Message)

	r.orders.AssertExpectations(t)
}

// 他人の注文は存在しない扱い
func TestOrderUsecase_Delete_NotOwned(t *testing.T) {
	tx, r := newTxFake()
	uc := usecase.NewOrderUsecase(tx, nil)

	r.orders.On("FindOwned", mock.Anything, int64(10), int64(2)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Delete(context.Background(), 2, 10)
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")

	r.orders.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}
