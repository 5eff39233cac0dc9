package e2e

import (
	"context"
	"net/http"
	"testing"
)

type checkoutResponse struct {
	Message     string  `json:"message"`
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

type orderList struct {
	Data []struct {
		ID          int64   `json:"id"`
		TotalAmount float64 `json:"total_amount"`
		Items       []struct {
			ProductID int64   `json:"product_id"`
			Quantity  int64   `json:"quantity"`
			Price     float64 `json:"price"`
		} `json:"items"`
	} `json:"data"`
}

func TestCheckoutEmptyCart(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	userToken := registerAndLogin(ctx, t, c, 0)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/orders", userToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d %s", resp.StatusCode, string(body))
	}

	var out ErrorResponse
	decodeJSON(t, body, &out)
	if out.Error != "Your cart is empty" {
		t.Fatalf("unexpected error: %q", out.Error)
	}
}

// checkoutは注文を作り、カートを空にする。合計は明細合計の総和。
func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	adminToken := registerAndLogin(ctx, t, c, 1)
	userToken := registerAndLogin(ctx, t, c, 0)
	productID := createProduct(ctx, t, c, adminToken, uniqueName("Order Coffee"), 100, 10)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/carts", userToken, map[string]int64{
		"product_id": productID,
		"quantity":   3,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add to cart: want 200, got %d %s", resp.StatusCode, string(body))
	}

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/orders", userToken, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: want 201, got %d %s", resp.StatusCode, string(body))
	}

	var out checkoutResponse
	decodeJSON(t, body, &out)
	if out.Message != "Order created successfully" {
		t.Fatalf("unexpected message: %q", out.Message)
	}
	if out.TotalAmount != 300 {
		t.Fatalf("want total 300, got %v", out.TotalAmount)
	}

	//カートは空になっている
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/carts", userToken, nil)
	var cart cartList
	decodeJSON(t, body, &cart)
	if len(cart.Data) != 0 {
		t.Fatalf("cart not cleared after checkout: %s", string(body))
	}

	//注文一覧に明細つきで現れる
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list orders: want 200, got %d %s", resp.StatusCode, string(body))
	}
	var orders orderList
	decodeJSON(t, body, &orders)
	if len(orders.Data) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders.Data))
	}
	if len(orders.Data[0].Items) != 1 || orders.Data[0].Items[0].Quantity != 3 {
		t.Fatalf("unexpected order items: %s", string(body))
	}
}

// 注文一覧は新しい順
func TestOrdersListedNewestFirst(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	adminToken := registerAndLogin(ctx, t, c, 1)
	userToken := registerAndLogin(ctx, t, c, 0)
	firstProduct := createProduct(ctx, t, c, adminToken, uniqueName("First"), 10, 10)
	secondProduct := createProduct(ctx, t, c, adminToken, uniqueName("Second"), 20, 10)

	for _, pid := range []int64{firstProduct, secondProduct} {
		resp, body := c.doJSON(ctx, t, http.MethodPost, "/carts", userToken, map[string]int64{
			"product_id": pid,
			"quantity":   1,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add: want 200, got %d %s", resp.StatusCode, string(body))
		}
		resp, body = c.doJSON(ctx, t, http.MethodPost, "/orders", userToken, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("checkout: want 201, got %d %s", resp.StatusCode, string(body))
		}
	}

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/orders", userToken, nil)
	var orders orderList
	decodeJSON(t, body, &orders)
	if resp.StatusCode != http.StatusOK || len(orders.Data) != 2 {
		t.Fatalf("want 2 orders, got %d (%s)", len(orders.Data), string(body))
	}
	if orders.Data[0].TotalAmount != 20 || orders.Data[1].TotalAmount != 10 {
		t.Fatalf("orders not newest first: %s", string(body))
	}
}

func TestDeleteOrderOwnership(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	adminToken := registerAndLogin(ctx, t, c, 1)
	ownerToken := registerAndLogin(ctx, t, c, 0)
	otherToken := registerAndLogin(ctx, t, c, 0)
	productID := createProduct(ctx, t, c, adminToken, uniqueName("Deletable"), 30, 10)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/carts", ownerToken, map[string]int64{
		"product_id": productID,
		"quantity":   1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add: want 200, got %d %s", resp.StatusCode, string(body))
	}
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/orders", ownerToken, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: want 201, got %d %s", resp.StatusCode, string(body))
	}
	var out checkoutResponse
	decodeJSON(t, body, &out)

	//他人は消せない
	resp, _ = c.doJSON(ctx, t, http.MethodDelete, "/orders/"+itoa(out.OrderID), otherToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete: want 404, got %d", resp.StatusCode)
	}

	//本人は消せる
	resp, body = c.doJSON(ctx, t, http.MethodDelete, "/orders/"+itoa(out.OrderID), ownerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: want 200, got %d %s", resp.StatusCode, string(body))
	}

	var msg SuccessResponse
	decodeJSON(t, body, &msg)
	if msg.Message != "Order deleted successfully" {
		t.Fatalf("unexpected message: %q", msg.Message)
	}
}
