package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// BASE_URL未設定ならe2eはスキップ（起動済みサーバが前提のため）。
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; skipping e2e")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	body interface{},
) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, respBody
}

func decodeJSON(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("unmarshal %q: %v", string(body), err)
	}
}

// registerAndLogin は使い捨てユーザーを作ってアクセストークンを返す。
func registerAndLogin(ctx context.Context, t *testing.T, c *TestClient, role int) string {
	t.Helper()

	email := fmt.Sprintf("e2e_%d_%d@example.com", time.Now().UnixNano(), rand.Intn(10000))
	password := "secret123"

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"name":             "E2E",
		"lstF":             "Tester",
		"lstM":             "Bot",
		"address":          "Av. Siempre Viva 742",
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"phone":            "+5215512345678",
		"payment":          "credit_card",
		"role":             role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed: %d %s", resp.StatusCode, string(body))
	}

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.StatusCode, string(body))
	}

	var login LoginResponse
	decodeJSON(t, body, &login)
	if login.AccessToken == "" {
		t.Fatal("empty access token")
	}
	return login.AccessToken
}

// createProduct は管理者トークンで商品を1つ作り、そのIDを返す。
func createProduct(ctx context.Context, t *testing.T, c *TestClient, adminToken string, name string, price float64, stock int64) int64 {
	t.Helper()

	//カテゴリとブランドは使い回し前提で毎回作る（重複は既存を使う）
	categoryID := ensureCategory(ctx, t, c, adminToken, "E2E Category")
	brandID := ensureBrand(ctx, t, c, adminToken, "e2e-brand")

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/products", adminToken, map[string]interface{}{
		"name":        name,
		"price":       price,
		"description": "e2e fixture",
		"stock":       stock,
		"category_id": categoryID,
		"brand_id":    brandID,
		"img":         "https://example.com/p.png",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product failed: %d %s", resp.StatusCode, string(body))
	}

	var created struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, body, &created)
	return created.ID
}

func ensureCategory(ctx context.Context, t *testing.T, c *TestClient, adminToken string, name string) int64 {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/categories", adminToken, map[string]string{
		"name":        name,
		"description": "e2e fixture",
	})
	if resp.StatusCode == http.StatusCreated {
		var created struct {
			ID int64 `json:"id"`
		}
		decodeJSON(t, body, &created)
		return created.ID
	}

	//既にある場合は一覧から探す
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/categories", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list categories failed: %d %s", resp.StatusCode, string(body))
	}
	var categories []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decodeJSON(t, body, &categories)
	for _, cat := range categories {
		if cat.Name == name {
			return cat.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return 0
}

func ensureBrand(ctx context.Context, t *testing.T, c *TestClient, adminToken string, username string) int64 {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/brands", adminToken, map[string]string{
		"username": username,
		"address":  "Av. Marca 1",
		"phone":    "+5215598765432",
	})
	if resp.StatusCode == http.StatusCreated {
		var created struct {
			ID int64 `json:"id"`
		}
		decodeJSON(t, body, &created)
		return created.ID
	}

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/brands", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list brands failed: %d %s", resp.StatusCode, string(body))
	}
	var brands []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeJSON(t, body, &brands)
	for _, b := range brands {
		if b.Username == username {
			return b.ID
		}
	}
	t.Fatalf("brand %q not found", username)
	return 0
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
