package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

// OrderMetrics は注文系の業務メトリクス。
type OrderMetrics interface {
	RecordOrder(ctx context.Context, totalAmount float64)
}

// OrderUsecase は /orders の業務ロジック。
// 注文確定（checkout）は「注文作成＋明細スナップショット＋カート全削除」を
// 1トランザクションで行う。途中で失敗したら全て巻き戻す。
type OrderUsecase struct {
	tx      repo.TransactionManager
	metrics OrderMetrics
}

func NewOrderUsecase(tx repo.TransactionManager, metrics OrderMetrics) *OrderUsecase {
	return &OrderUsecase{tx: tx, metrics: metrics}
}

type CheckoutResponse struct {
	Message     string  `json:"message"`
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

type OrderItemView struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderView struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	TotalAmount float64         `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItemView `json:"items"`
}

type OrderListResponse struct {
	Data []OrderView `json:"data"`
}

// Checkout はカート全明細を1注文に変換する。
// 合計は保存済みの明細合計の総和そのまま（在庫・現価格の再検証はしない）。
// 在庫の減算もしない。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (CheckoutResponse, error) {
	if userID <= 0 {
		return CheckoutResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CheckoutResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Your cart is empty")
		}

		var total float64
		orderItems := make([]model.OrderItem, 0, len(items))
		for _, it := range items {
			total += it.Total
			orderItems = append(orderItems, model.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}

		order, err := r.Orders().Create(ctx, model.Order{
			UserID:      userID,
			TotalAmount: total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//消費した明細を全削除（注文作成と同一Tx）
		if err := r.CartItems().DeleteByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = CheckoutResponse{
			Message:     "Order created successfully",
			OrderID:     order.ID,
			TotalAmount: total,
		}
		return nil
	})

	if err != nil {
		return CheckoutResponse{}, err
	}

	if u.metrics != nil {
		u.metrics.RecordOrder(ctx, out.TotalAmount)
	}

	return out, nil
}

// List はユーザーの注文を新しい順で返す。
func (u *OrderUsecase) List(ctx context.Context, userID int64) (OrderListResponse, error) {
	if userID <= 0 {
		return OrderListResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderView, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderView(o, items))
		}
		return nil
	})

	if err != nil {
		return OrderListResponse{}, err
	}
	return OrderListResponse{Data: outs}, nil
}

// Delete は注文を削除する（所有チェックあり）。
// 在庫の戻しやカート再作成などの補償処理はしない。
func (u *OrderUsecase) Delete(ctx context.Context, userID int64, orderID int64) (SuccessResponse, error) {
	if userID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindOwned(ctx, orderID, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().DeleteByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return SuccessResponse{}, err
	}
	return SuccessResponse{Message: "Order deleted successfully"}, nil
}

func toOrderView(o model.Order, items []model.OrderItem) OrderView {
	views := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		views = append(views, OrderItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}

	return OrderView{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Items:       views,
	}
}
