package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Supermili365/expirapp/internal/domain"
)

// Client talks to the Expirapp backend REST API. The base URL and the
// orders path are centralized here; nothing else in the codebase builds
// backend URLs.
type Client struct {
	BaseURL    string
	OrdersPath string
	HTTP       *http.Client
}

func New(baseURL, ordersPath string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		OrdersPath: ordersPath,
		HTTP:       &http.Client{Timeout: 15 * time.Second},
	}
}

// do sends one JSON request. A non-2xx answer becomes a *StatusError with
// the response body attached; transport failures come back unchanged.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// dataEnvelope is the {"data": ...} wrapper most backend answers use.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	in := map[string]string{"correo": email, "contrasena": password}
	var env dataEnvelope[Credentials]
	if err := c.do(ctx, http.MethodPost, "/users/login", "", in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) RegisterUser(ctx context.Context, in RegisterUserInput) error {
	return c.do(ctx, http.MethodPost, "/users/", "", in, nil)
}

func (c *Client) RegisterStore(ctx context.Context, in RegisterStoreInput) error {
	return c.do(ctx, http.MethodPost, "/stores/", "", in.wire(), nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	in := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", in, nil)
}

func (c *Client) GetUser(ctx context.Context, token string, id int) (*domain.User, error) {
	var env dataEnvelope[domain.User]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), token, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int, in UpdateUserInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, in, nil)
}

func (c *Client) GetStore(ctx context.Context, token string, id int) (*Store, error) {
	var env dataEnvelope[Store]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stores/%d", id), token, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) UpdateStore(ctx context.Context, token string, id int, in UpdateStoreInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/stores/%d", id), token, in, nil)
}

func (c *Client) StoreProducts(ctx context.Context, token string, storeID int) ([]domain.Product, error) {
	var env dataEnvelope[[]domain.Product]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stores/%d/products", storeID), token, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// productList tolerates both answer shapes the catalog endpoint has used:
// a bare array or {"productos": [...]}.
type productList []domain.Product

func (l *productList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, (*[]domain.Product)(l))
	}
	var wrapped struct {
		Products []domain.Product `json:"productos"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Products
	return nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var list productList
	if err := c.do(ctx, http.MethodGet, "/products/", "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, in CreateProductInput) error {
	return c.do(ctx, http.MethodPost, "/products/", token, in, nil)
}

func (c *Client) ToggleProductVisibility(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/toggle-visibility", id), token, nil, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}

// PlaceOrder submits one per-store order. A 2xx with a non-JSON body still
// counts as success; the receipt is just empty then.
func (c *Client) PlaceOrder(ctx context.Context, token string, req OrderRequest) (*OrderReceipt, error) {
	var body io.Reader
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	body = bytes.NewReader(b)

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+c.OrdersPath, body)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	if token != "" {
		hreq.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := c.HTTP.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		rb, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return nil, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(rb))}
	}

	receipt := &OrderReceipt{}
	if err := json.NewDecoder(res.Body).Decode(receipt); err != nil {
		// Order was accepted; the confirmation body just wasn't JSON.
		return &OrderReceipt{Message: "order created, no JSON confirmation received"}, nil
	}
	return receipt, nil
}
